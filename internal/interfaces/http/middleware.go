package http

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// cors mirrors the teacher's middleware/cors.go shape but checks the
// request origin against the configured allow-list instead of a
// hardcoded slice, since subconv's ServerConfig carries its own
// AllowedOrigins.
func cors(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
		} else if len(allowed) == 0 {
			c.Header("Access-Control-Allow-Origin", "*")
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// recovery mirrors the teacher's middleware/recovery.go panic-recovery
// shape, logging through the context-scoped slog.Logger instead of zap.
func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", recovered,
			"stack", string(debug.Stack()))
		c.JSON(http.StatusInternalServerError, apiResponse{
			Success: false,
			Error:   &errorInfo{Type: "internal_error", Message: "internal server error"},
		})
		c.Abort()
	})
}

// requestLogging mirrors the teacher's middleware/logging.go shape: one
// line per request at Info, method/path/status/latency.
func requestLogging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}
