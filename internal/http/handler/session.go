package handler

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	mw "github.com/edirooss/streamforge/internal/http/middleware"
)

// SessionResetter drops a session's workspace binding.
type SessionResetter interface {
	Reset(session sessions.Session) error
}

type SessionHandler struct {
	svc SessionResetter
}

func NewSessionHandler(svc SessionResetter) *SessionHandler { return &SessionHandler{svc: svc} }

// GET /api/workspace
func (h *SessionHandler) Workspace(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"id": workspace(c)})
}

// POST /api/workspace/reset
func (h *SessionHandler) Reset(c *gin.Context) {
	if err := h.svc.Reset(sessions.Default(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// IssueSessionCSRF returns the session's CSRF token, creating it on first
// use. Mutating requests must echo it in X-CSRF-Token.
func (h *SessionHandler) IssueSessionCSRF(c *gin.Context) {
	sess := sessions.Default(c)
	token, _ := sess.Get(mw.CSRFSessionKey).(string)
	if token == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			fail(c, fmt.Errorf("csrf token: %w", err))
			return
		}
		token = hex.EncodeToString(b)
		sess.Set(mw.CSRFSessionKey, token)
		if err := sess.Save(); err != nil {
			fail(c, fmt.Errorf("save session: %w", err))
			return
		}
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.JSON(http.StatusOK, gin.H{"csrf": token})
}
