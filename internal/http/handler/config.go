package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edirooss/streamforge/internal/domain/settings"
	"github.com/edirooss/streamforge/pkg/forge"
)

// ConfigStore is the workspace config and settings persistence.
type ConfigStore interface {
	ConfigReader
	SaveConfig(ctx context.Context, workspace string, cfg forge.Config) ([]forge.Issue, error)
	Settings(ctx context.Context, workspace string) (settings.BotSettings, error)
	SaveSettings(ctx context.Context, workspace string, s settings.BotSettings) error
}

// ConfigHandler serves GET/PUT /api/config and GET/PUT /api/settings.
type ConfigHandler struct {
	svc ConfigStore
}

func NewConfigHandler(svc ConfigStore) *ConfigHandler { return &ConfigHandler{svc: svc} }

func (h *ConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.svc.Config(c.Request.Context(), workspace(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PutConfig stores the config verbatim and answers with its issues.
func (h *ConfigHandler) PutConfig(c *gin.Context) {
	var cfg forge.Config
	if err := bind(c.Request, &cfg); err != nil {
		badRequest(c, err)
		return
	}
	issues, err := h.svc.SaveConfig(c.Request.Context(), workspace(c), cfg)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, checkResponse{Issues: nonNil(issues), Ready: forge.Ready(issues)})
}

func (h *ConfigHandler) GetSettings(c *gin.Context) {
	s, err := h.svc.Settings(c.Request.Context(), workspace(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *ConfigHandler) PutSettings(c *gin.Context) {
	var s settings.BotSettings
	if err := bind(c.Request, &s); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.SaveSettings(c.Request.Context(), workspace(c), s); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
