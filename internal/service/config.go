package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/edirooss/streamforge/internal/domain/settings"
	"github.com/edirooss/streamforge/internal/repo"
	"github.com/edirooss/streamforge/pkg/forge"
)

// WorkspaceRepo is the persistence ConfigService needs.
type WorkspaceRepo interface {
	GetConfig(ctx context.Context, workspace string) (forge.Config, error)
	PutConfig(ctx context.Context, workspace string, cfg forge.Config) error
	GetSettings(ctx context.Context, workspace string) (settings.BotSettings, error)
	PutSettings(ctx context.Context, workspace string, s settings.BotSettings) error
}

// ConfigService holds the workspace's stream config and bot settings.
type ConfigService struct {
	log  *zap.Logger
	repo WorkspaceRepo
}

func NewConfigService(log *zap.Logger, r WorkspaceRepo) *ConfigService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConfigService{log: log.Named("config-service"), repo: r}
}

// Config returns the saved config, or the defaults when none was saved.
func (s *ConfigService) Config(ctx context.Context, workspace string) (forge.Config, error) {
	cfg, err := s.repo.GetConfig(ctx, workspace)
	if errors.Is(err, repo.ErrNotSaved) {
		return forge.DefaultConfig(), nil
	}
	return cfg, err
}

// SaveConfig replaces the config. Values are stored verbatim; the returned
// issues are advisory.
func (s *ConfigService) SaveConfig(ctx context.Context, workspace string, cfg forge.Config) ([]forge.Issue, error) {
	if err := s.repo.PutConfig(ctx, workspace, cfg); err != nil {
		return nil, err
	}
	issues := forge.Check(cfg)
	s.log.Debug("config saved", zap.String("workspace", workspace), zap.Int("issues", len(issues)))
	return issues, nil
}

// Settings returns the saved bot settings, empty when none were saved.
func (s *ConfigService) Settings(ctx context.Context, workspace string) (settings.BotSettings, error) {
	st, err := s.repo.GetSettings(ctx, workspace)
	if errors.Is(err, repo.ErrNotSaved) {
		return settings.BotSettings{}, nil
	}
	return st, err
}

func (s *ConfigService) SaveSettings(ctx context.Context, workspace string, st settings.BotSettings) error {
	return s.repo.PutSettings(ctx, workspace, st)
}
