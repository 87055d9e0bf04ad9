package handler

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/edirooss/streamforge/pkg/forge"
)

// ConfigReader yields the workspace's saved stream config.
type ConfigReader interface {
	Config(ctx context.Context, workspace string) (forge.Config, error)
}

// RenderHandler serves the generated documents.
//
//   - POST /api/render        → all documents plus issues, for the posted config
//   - POST /api/render/:doc   → one document as a text/plain attachment
//   - GET  /api/render/:doc   → one document for the saved config
//   - POST /api/check         → issues only
//   - GET  /api/config/defaults
type RenderHandler struct {
	configs ConfigReader
}

func NewRenderHandler(configs ConfigReader) *RenderHandler {
	return &RenderHandler{configs: configs}
}

type renderResponse struct {
	Artifacts []forge.Artifact `json:"artifacts"`
	Issues    []forge.Issue    `json:"issues"`
	Ready     bool             `json:"ready"`
}

type checkResponse struct {
	Issues []forge.Issue `json:"issues"`
	Ready  bool          `json:"ready"`
}

func (h *RenderHandler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, forge.DefaultConfig())
}

func (h *RenderHandler) RenderAll(c *gin.Context) {
	var cfg forge.Config
	if err := bind(c.Request, &cfg); err != nil {
		badRequest(c, err)
		return
	}
	issues := forge.Check(cfg)
	c.JSON(http.StatusOK, renderResponse{
		Artifacts: forge.RenderAll(cfg),
		Issues:    nonNil(issues),
		Ready:     forge.Ready(issues),
	})
}

func (h *RenderHandler) RenderOne(c *gin.Context) {
	doc, err := forge.ParseDocument(c.Param("doc"))
	if err != nil {
		fail(c, err)
		return
	}
	var cfg forge.Config
	if err := bind(c.Request, &cfg); err != nil {
		badRequest(c, err)
		return
	}
	h.attach(c, doc, cfg)
}

func (h *RenderHandler) RenderSaved(c *gin.Context) {
	doc, err := forge.ParseDocument(c.Param("doc"))
	if err != nil {
		fail(c, err)
		return
	}
	cfg, err := h.configs.Config(c.Request.Context(), workspace(c))
	if err != nil {
		fail(c, fmt.Errorf("load config: %w", err))
		return
	}
	h.attach(c, doc, cfg)
}

func (h *RenderHandler) Check(c *gin.Context) {
	var cfg forge.Config
	if err := bind(c.Request, &cfg); err != nil {
		badRequest(c, err)
		return
	}
	issues := forge.Check(cfg)
	c.JSON(http.StatusOK, checkResponse{Issues: nonNil(issues), Ready: forge.Ready(issues)})
}

func (h *RenderHandler) attach(c *gin.Context, doc forge.Document, cfg forge.Config) {
	content, err := forge.Render(doc, cfg)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(doc.FileName())))
	c.Header("X-Document-Language", doc.Language())
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

func nonNil(issues []forge.Issue) []forge.Issue {
	if issues == nil {
		return []forge.Issue{}
	}
	return issues
}
