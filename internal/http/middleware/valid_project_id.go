package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequireValidProjectID ensures the path param ":id" is a UUIDv4.
func RequireValidProjectID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil || id.Version() != 4 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid project id"})
			return
		}
		c.Next()
	}
}
