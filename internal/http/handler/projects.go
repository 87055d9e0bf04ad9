package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edirooss/streamforge/internal/domain/project"
)

// ProjectStore is the workspace project persistence.
type ProjectStore interface {
	Create(ctx context.Context, workspace string, r project.Resource) (project.BotProject, error)
	List(ctx context.Context, workspace string) ([]project.BotProject, error)
	Get(ctx context.Context, workspace, id string) (project.BotProject, error)
	Delete(ctx context.Context, workspace, id string) error
}

// ProjectsHandler provides the saved bot projects.
//
//   - GET    /api/projects      → list, oldest first; X-Total-Count header
//   - POST   /api/projects      → save one (201)
//   - GET    /api/projects/:id  → get one
//   - DELETE /api/projects/:id  → delete one (204)
type ProjectsHandler struct {
	svc ProjectStore
}

func NewProjectsHandler(svc ProjectStore) *ProjectsHandler { return &ProjectsHandler{svc: svc} }

func (h *ProjectsHandler) GetList(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), workspace(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(len(list)))
	c.JSON(http.StatusOK, list)
}

func (h *ProjectsHandler) Create(c *gin.Context) {
	var req project.Resource
	if err := bind(c.Request, &req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.Create(c.Request.Context(), workspace(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Location", "/api/projects/"+p.ID)
	c.JSON(http.StatusCreated, p)
}

func (h *ProjectsHandler) GetOne(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), workspace(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), workspace(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
