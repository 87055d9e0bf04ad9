package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/edirooss/streamforge/internal/domain/project"
	"github.com/edirooss/streamforge/internal/repo"
	"github.com/edirooss/streamforge/internal/repo/store"
)

const (
	DefaultMaxOpenStores = 1024
	DefaultStoreIdleTTL  = 15 * time.Minute
)

// ProjectService owns one ProjectStore per workspace, opened on first use.
// At most MaxOpen stores stay materialized; the least recently used one is
// dropped first, and a store idle longer than IdleTTL is reopened from Redis.
type ProjectService struct {
	log *zap.Logger
	rdb *redis.Client
	now func() time.Time

	idleTTL time.Duration

	mu     sync.Mutex
	stores *lru.Cache         // workspace -> *openStore
	opens  singleflight.Group // coalesces concurrent first opens
}

type openStore struct {
	st       *store.ProjectStore
	lastUsed time.Time
}

// ProjectServiceOptions configures NewProjectService. Zero values pick the
// defaults.
type ProjectServiceOptions struct {
	MaxOpen int
	IdleTTL time.Duration
}

func NewProjectService(log *zap.Logger, rdb *redis.Client, opts ProjectServiceOptions) *ProjectService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxOpen <= 0 {
		opts.MaxOpen = DefaultMaxOpenStores
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = DefaultStoreIdleTTL
	}
	s := &ProjectService{
		log:     log.Named("project-service"),
		rdb:     rdb,
		now:     time.Now,
		idleTTL: opts.IdleTTL,
		stores:  lru.New(opts.MaxOpen),
	}
	s.stores.OnEvicted = func(key lru.Key, _ any) {
		s.log.Debug("project store released", zap.Any("workspace", key))
	}
	return s
}

// cached returns the workspace's open store, dropping it when idle too long.
func (s *ProjectService) cached(workspace string) (*store.ProjectStore, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.stores.Get(workspace)
	if !ok {
		return nil, false
	}
	e := v.(*openStore)
	now := s.now()
	if now.Sub(e.lastUsed) > s.idleTTL {
		s.stores.Remove(workspace)
		return nil, false
	}
	e.lastUsed = now
	return e.st, true
}

func (s *ProjectService) store(ctx context.Context, workspace string) (*store.ProjectStore, error) {
	if st, ok := s.cached(workspace); ok {
		return st, nil
	}

	v, err, _ := s.opens.Do(workspace, func() (any, error) {
		if st, ok := s.cached(workspace); ok {
			return st, nil
		}

		// shared by every waiter; one caller's cancellation must not fail the rest
		st, err := store.NewProjectStore(context.WithoutCancel(ctx), s.log.With(zap.String("workspace", workspace)),
			s.rdb, repo.WorkspaceKeyPrefix(workspace)+"project:")
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.stores.Add(workspace, &openStore{st: st, lastUsed: s.now()})
		s.mu.Unlock()
		return st, nil
	})
	if err != nil {
		return nil, fmt.Errorf("open project store: %w", err)
	}
	return v.(*store.ProjectStore), nil
}

// Release drops the workspace's materialized store. Saved projects stay in
// Redis.
func (s *ProjectService) Release(workspace string) {
	s.mu.Lock()
	s.stores.Remove(workspace)
	s.mu.Unlock()
}

// OpenStores reports how many workspace stores are materialized.
func (s *ProjectService) OpenStores() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stores.Len()
}

// Create validates and saves a project.
func (s *ProjectService) Create(ctx context.Context, workspace string, r project.Resource) (project.BotProject, error) {
	if err := r.Validate(); err != nil {
		return project.BotProject{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	st, err := s.store(ctx, workspace)
	if err != nil {
		return project.BotProject{}, err
	}
	p, err := st.Create(ctx, r)
	if err != nil {
		return project.BotProject{}, err
	}
	s.log.Info("project saved", zap.String("workspace", workspace), zap.String("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// List returns the workspace's projects, oldest first.
func (s *ProjectService) List(ctx context.Context, workspace string) ([]project.BotProject, error) {
	st, err := s.store(ctx, workspace)
	if err != nil {
		return nil, err
	}
	return st.GetList(), nil
}

func (s *ProjectService) Get(ctx context.Context, workspace, id string) (project.BotProject, error) {
	st, err := s.store(ctx, workspace)
	if err != nil {
		return project.BotProject{}, err
	}
	return st.GetOne(id)
}

func (s *ProjectService) Delete(ctx context.Context, workspace, id string) error {
	st, err := s.store(ctx, workspace)
	if err != nil {
		return err
	}
	if _, err := st.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("project deleted", zap.String("workspace", workspace), zap.String("id", id))
	return nil
}
