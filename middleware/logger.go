package middleware

import (
	"log/slog"
	"time"

	"gallery-store/pkg/ctxmanage"
	"gallery-store/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceIDHeader echoes the request's trace id back to the caller.
const TraceIDHeader = "X-Trace-Id"

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// an outer Logger already tagged this request
		if _, ok := c.Request.Context().Value(ctxmanage.TraceIdKey).(string); ok {
			c.Next()
			return
		}

		traceId := uuid.NewString()
		ctx := ctxmanage.AddTraceIdToCtx(c.Request.Context(), traceId)
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceIDHeader, traceId)

		start := time.Now()
		slog.Info("started", slog.String(logkey.TraceID, traceId),
			slog.String("Method", c.Request.Method), slog.String("URL Path", c.Request.URL.Path))

		c.Next()

		slog.Info("completed", slog.String(logkey.TraceID, traceId),
			slog.String("Method", c.Request.Method), slog.String("URL Path", c.Request.URL.Path),
			slog.Int("Status Code", c.Writer.Status()), slog.Duration("Latency", time.Since(start)))
	}
}
