package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edirooss/streamforge/internal/domain/settings"
	"github.com/edirooss/streamforge/internal/service"
)

// SettingsReader yields the workspace's bot settings.
type SettingsReader interface {
	Settings(ctx context.Context, workspace string) (settings.BotSettings, error)
}

// BotsHandler serves POST /api/bots/generate.
type BotsHandler struct {
	settings SettingsReader
	gen      service.BotGenerator
}

func NewBotsHandler(s SettingsReader) *BotsHandler { return &BotsHandler{settings: s} }

// Generate builds a bot. Token and owner id fall back to the saved
// settings when the request leaves them empty.
func (h *BotsHandler) Generate(c *gin.Context) {
	var req struct {
		Prompt  string `json:"prompt"`
		Token   string `json:"token"`
		OwnerID string `json:"ownerId"`
	}
	if err := bind(c.Request, &req); err != nil {
		badRequest(c, err)
		return
	}

	saved, err := h.settings.Settings(c.Request.Context(), workspace(c))
	if err != nil {
		fail(c, err)
		return
	}
	if req.Token != "" {
		saved.Token = req.Token
	}
	if req.OwnerID != "" {
		saved.OwnerID = req.OwnerID
	}

	bot, err := h.gen.Generate(req.Prompt, saved)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bot)
}
