package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
)

type recordingReleaser struct {
	mu       sync.Mutex
	released []string
}

func (r *recordingReleaser) Release(workspace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = append(r.released, workspace)
}

func newSessionRouter(t *testing.T, rel WorkspaceReleaser) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	svc, err := NewWorkspaceSessionService(WorkspaceSessionOptions{
		IsDev:     true,
		RedisAddr: mr.Addr(),
		Secret:    strings.Repeat("k", 32),
		Release:   rel,
	})
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.Use(svc.Middleware())
	r.GET("/api/workspace", func(c *gin.Context) {
		ws, err := svc.Workspace(sessions.Default(c))
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, ws)
	})
	r.POST("/api/workspace/reset", func(c *gin.Context) {
		if err := svc.Reset(sessions.Default(c)); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func serve(r http.Handler, method, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWorkspaceSessionIsSticky(t *testing.T) {
	r := newSessionRouter(t, nil)

	first := serve(r, http.MethodGet, "/api/workspace", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status %d", first.Code)
	}
	again := serve(r, http.MethodGet, "/api/workspace", first.Result().Cookies())
	if again.Body.String() != first.Body.String() {
		t.Fatalf("workspace changed: %q then %q", first.Body.String(), again.Body.String())
	}
	if other := serve(r, http.MethodGet, "/api/workspace", nil); other.Body.String() == first.Body.String() {
		t.Fatal("new browser got the same workspace")
	}
}

func TestResetReleasesWorkspace(t *testing.T) {
	rel := &recordingReleaser{}
	r := newSessionRouter(t, rel)

	w := serve(r, http.MethodGet, "/api/workspace", nil)
	ws := w.Body.String()
	cookies := w.Result().Cookies()

	if w := serve(r, http.MethodPost, "/api/workspace/reset", cookies); w.Code != http.StatusNoContent {
		t.Fatalf("reset status %d", w.Code)
	}
	if diff := cmp.Diff([]string{ws}, rel.released); diff != "" {
		t.Fatalf("released (-want +got):\n%s", diff)
	}

	if w := serve(r, http.MethodGet, "/api/workspace", cookies); w.Body.String() == ws {
		t.Fatal("reset session still bound to the old workspace")
	}
}

func TestResetWithoutWorkspaceReleasesNothing(t *testing.T) {
	rel := &recordingReleaser{}
	r := newSessionRouter(t, rel)

	if w := serve(r, http.MethodPost, "/api/workspace/reset", nil); w.Code != http.StatusNoContent {
		t.Fatalf("reset status %d", w.Code)
	}
	if len(rel.released) != 0 {
		t.Fatalf("released %v", rel.released)
	}
}
