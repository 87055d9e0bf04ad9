package repo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient wraps the Redis client with connection diagnostics.
type RedisClient struct {
	*redis.Client
	log *zap.Logger
}

// NewRedisClient creates a Redis client and logs whether it can connect.
// A failed ping is not fatal; commands retry on their own.
func NewRedisClient(addr string, db int, log *zap.Logger) *RedisClient {
	if log == nil {
		log = zap.NewNop()
	}
	opts := &redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
	}

	client := &RedisClient{
		Client: redis.NewClient(opts),
		log:    log.Named("redis"),
	}
	client.Ping(context.TODO())
	return client
}

// Ping logs connection diagnostics and reports the result.
func (c *RedisClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	opts := c.Options()
	log := c.log.With(
		zap.String("addr", opts.Addr),
		zap.Int("db", opts.DB),
	)

	start := time.Now()
	err := c.Client.Ping(ctx).Err()
	elapsed := time.Since(start)

	if err != nil {
		log.Warn("connection failed", zap.Error(err), zap.Duration("ping_rtt", elapsed))
	} else {
		log.Info("connection established", zap.Duration("ping_rtt", elapsed))
	}
	return err
}
