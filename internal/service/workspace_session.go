package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkspaceSessionService binds each browser to a workspace id through a
// Redis backed cookie session. The workspace scopes the saved config, the
// bot settings and the project store.
type WorkspaceSessionService struct {
	store         redis.Store
	cookieOptions sessions.Options
	release       WorkspaceReleaser
}

// WorkspaceReleaser drops in-memory state held for a workspace.
type WorkspaceReleaser interface {
	Release(workspace string)
}

// sessionKeyWorkspace is the session key holding the workspace id.
const sessionKeyWorkspace = "ws"

// WorkspaceSessionOptions configures NewWorkspaceSessionService.
type WorkspaceSessionOptions struct {
	IsDev     bool // cookies are Secure unless dev
	RedisAddr string
	RedisDB   int
	Secret    string // cookie signing key
	MaxAge    int    // seconds

	Release WorkspaceReleaser // optional; told about reset workspaces
}

func NewWorkspaceSessionService(opts WorkspaceSessionOptions) (*WorkspaceSessionService, error) {
	if len(opts.Secret) < 32 {
		return nil, errors.New("session secret must be at least 32 bytes")
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 30 * 24 * 3600
	}

	store, err := redis.NewStoreWithDB(10, "tcp", opts.RedisAddr, "", "", fmt.Sprint(opts.RedisDB), []byte(opts.Secret))
	if err != nil {
		return nil, fmt.Errorf("new store: %w", err)
	}

	cookieOptions := sessions.Options{
		Path:     "/api",
		MaxAge:   opts.MaxAge,
		Secure:   !opts.IsDev,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	store.Options(cookieOptions)

	return &WorkspaceSessionService{store: store, cookieOptions: cookieOptions, release: opts.Release}, nil
}

// Middleware attaches session handling.
func (s *WorkspaceSessionService) Middleware() gin.HandlerFunc {
	return sessions.Sessions("sfsid", s.store)
}

// Workspace returns the session's workspace id, creating and saving a new
// one on first use.
func (s *WorkspaceSessionService) Workspace(session sessions.Session) (string, error) {
	if ws, ok := session.Get(sessionKeyWorkspace).(string); ok {
		if _, err := uuid.Parse(ws); err == nil {
			return ws, nil
		}
	}
	ws := uuid.NewString()
	session.Set(sessionKeyWorkspace, ws)
	if err := session.Save(); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return ws, nil
}

// Reset drops the session so the next request starts a fresh workspace.
// The old workspace's in-memory state is released.
func (s *WorkspaceSessionService) Reset(session sessions.Session) error {
	old, _ := session.Get(sessionKeyWorkspace).(string)
	session.Clear()

	opts := s.cookieOptions
	opts.MaxAge = -1
	session.Options(opts)

	if err := session.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if old != "" && s.release != nil {
		s.release.Release(old)
	}
	return nil
}
