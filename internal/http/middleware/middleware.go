package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Recovery converts panics into 500 responses and logs them with the
// request's trace context.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		slog.ErrorContext(c.Request.Context(), "panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path)
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	})
}

// Logger emits one structured access log line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
