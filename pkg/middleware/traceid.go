package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freiplatz/internal/logging"
	"freiplatz/internal/services"
)

const TraceHeader = "X-Trace-ID"

// TraceIDMiddleware reuses a valid incoming X-Trace-ID or creates one, and
// stores it with the client address on the request context.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Set("trace_id", traceID)
		c.Writer.Header().Set(TraceHeader, traceID)

		ctx := logging.WithTraceID(c.Request.Context(), traceID)
		ctx = services.WithRequestMeta(ctx, services.RequestMeta{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
