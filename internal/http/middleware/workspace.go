package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const WorkspaceKey = "workspace"

// WorkspaceResolver yields the workspace bound to a session.
type WorkspaceResolver interface {
	Workspace(session sessions.Session) (string, error)
}

// Workspace resolves the caller's workspace and stores it in the Gin
// context. It must run after the sessions middleware.
func Workspace(r WorkspaceResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := r.Workspace(sessions.Default(c))
		if err != nil {
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "session unavailable"})
			return
		}
		c.Set(WorkspaceKey, ws)
		c.Next()
	}
}

// GetWorkspace returns the workspace id, or "" outside Workspace.
func GetWorkspace(c *gin.Context) string {
	ws, _ := c.Get(WorkspaceKey)
	s, _ := ws.(string)
	return s
}
