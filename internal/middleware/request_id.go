package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"adspace-chat/internal/observability"
)

const RequestIDKey = "request_id"

// RequestID reuses the inbound X-Request-ID or generates one, echoes it in
// the response and carries it on the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(observability.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(observability.RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
