package middleware

import (
	"time"

	"reporting-service/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog writes one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		entry := logger.GetLogger().WithFields(map[string]interface{}{
			"requestId": ctx.GetString(RequestIDKey),
			"method":    ctx.Request.Method,
			"path":      ctx.Request.URL.Path,
			"status":    ctx.Writer.Status(),
			"latencyMs": time.Since(start).Milliseconds(),
			"clientIp":  ctx.ClientIP(),
		})
		if ctx.Writer.Status() >= 500 {
			entry.Error("Request completed")
			return
		}
		entry.Info("Request completed")
	}
}
