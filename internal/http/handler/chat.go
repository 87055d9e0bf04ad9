package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edirooss/streamforge/internal/chat"
	"github.com/edirooss/streamforge/internal/service"
)

// Chatter answers chat messages for a workspace.
type Chatter interface {
	Welcome() service.ChatReply
	Send(ctx context.Context, workspace string, history []chat.Turn, message string) (service.ChatReply, error)
}

type ChatHandler struct {
	svc Chatter
}

func NewChatHandler(svc Chatter) *ChatHandler { return &ChatHandler{svc: svc} }

// GET /api/chat/welcome
func (h *ChatHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Welcome())
}

// POST /api/chat
//
// Status Codes:
//   - 200 OK → reply; a failed upstream call is a reply with error=true
//   - 400 Bad Request → malformed body or empty message
//   - 409 Conflict → the workspace already has a request in flight
func (h *ChatHandler) Send(c *gin.Context) {
	var req struct {
		History []chat.Turn `json:"history"`
		Message string      `json:"message"`
	}
	if err := bind(c.Request, &req); err != nil {
		badRequest(c, err)
		return
	}
	reply, err := h.svc.Send(c.Request.Context(), workspace(c), req.History, req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}
