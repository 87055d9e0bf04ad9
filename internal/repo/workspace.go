package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/edirooss/streamforge/internal/domain/settings"
	"github.com/edirooss/streamforge/pkg/forge"
)

// ErrNotSaved means the workspace has no document under the key yet.
var ErrNotSaved = errors.New("not saved")

const workspaceKeyPrefix = "streamforge:ws:"

// WorkspaceKeyPrefix is the root of everything one workspace owns.
func WorkspaceKeyPrefix(workspace string) string { return workspaceKeyPrefix + workspace + ":" }

func configKey(workspace string) string   { return WorkspaceKeyPrefix(workspace) + "config" }
func settingsKey(workspace string) string { return WorkspaceKeyPrefix(workspace) + "settings" }

// WorkspaceRepository stores the per-workspace stream config and bot
// settings as JSON documents.
type WorkspaceRepository struct {
	log    *zap.Logger
	client *RedisClient
}

func newWorkspaceRepository(log *zap.Logger, client *RedisClient) *WorkspaceRepository {
	return &WorkspaceRepository{
		log:    log.Named("workspaces"),
		client: client,
	}
}

// GetConfig returns the saved config, or ErrNotSaved.
func (r *WorkspaceRepository) GetConfig(ctx context.Context, workspace string) (forge.Config, error) {
	var cfg forge.Config
	err := r.get(ctx, configKey(workspace), &cfg)
	return cfg, err
}

// PutConfig replaces the saved config.
func (r *WorkspaceRepository) PutConfig(ctx context.Context, workspace string, cfg forge.Config) error {
	return r.put(ctx, configKey(workspace), cfg)
}

// GetSettings returns the saved bot settings, or ErrNotSaved.
func (r *WorkspaceRepository) GetSettings(ctx context.Context, workspace string) (settings.BotSettings, error) {
	var s settings.BotSettings
	err := r.get(ctx, settingsKey(workspace), &s)
	return s, err
}

// PutSettings replaces the saved bot settings.
func (r *WorkspaceRepository) PutSettings(ctx context.Context, workspace string, s settings.BotSettings) error {
	return r.put(ctx, settingsKey(workspace), s)
}

func (r *WorkspaceRepository) get(ctx context.Context, key string, v any) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotSaved
		}
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		r.log.Warn("undecodable document", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *WorkspaceRepository) put(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := r.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
