package middleware

import (
	"time"

	"user-crud-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestID accepts an incoming X-Request-ID or generates one, stores it in
// the request context for downstream loggers and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, id := logger.ContextWithRequestID(c.Request.Context(), c.GetHeader(logger.RequestIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(logger.RequestIDHeader, id)
		c.Next()
	}
}

// Logger writes one access log entry per request.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("size", c.Writer.Size()),
		}

		l := logger.WithContext(c.Request.Context(), log)
		switch {
		case status >= 500:
			l.Error("http request", fields...)
		case status >= 400:
			l.Warn("http request", fields...)
		default:
			l.Info("http request", fields...)
		}
	}
}
