package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LimitConcurrentRequests caps how many requests run the remaining chain at
// once. Requests over the cap are rejected with 429 without waiting.
//
// Used in front of the chat route, whose upstream latency is seconds.
func LimitConcurrentRequests(maxConcurrent int) gin.HandlerFunc {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	semaphore := make(chan struct{}, maxConcurrent)

	return func(c *gin.Context) {
		select {
		case semaphore <- struct{}{}:
			defer func() { <-semaphore }()
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "too many concurrent requests",
			})
		}
	}
}
