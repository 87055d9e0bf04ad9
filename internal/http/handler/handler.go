// Package handler holds the HTTP handlers of the StreamForge API.
// Every error body is {"message": "..."}; errors are also recorded on the
// Gin context for the access log.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/edirooss/streamforge/internal/http/middleware"
	"github.com/edirooss/streamforge/internal/service"
	"github.com/edirooss/streamforge/pkg/forge"
	"github.com/edirooss/streamforge/pkg/jsonx"
)

func bind[T any](req *http.Request, obj *T) error {
	return jsonx.ParseStrictJSONBody(req, obj)
}

// fail records err and writes it with the status it maps to.
func fail(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(statusOf(err), gin.H{"message": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound), errors.Is(err, forge.ErrUnknownDocument):
		return http.StatusNotFound
	case errors.Is(err, service.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func workspace(c *gin.Context) string { return mw.GetWorkspace(c) }
