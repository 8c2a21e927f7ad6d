package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"adspace-chat/internal/middleware"
	"adspace-chat/internal/observability"
	"adspace-chat/internal/services"
)

func requestIDFromContext(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}

	requestID := observability.RequestIDFromRequest(c.Request)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(middleware.RequestIDKey, requestID)
	return requestID
}

// callerFromContext returns the user stored by the auth middleware. ID is 0
// on public routes.
func callerFromContext(c *gin.Context) services.Caller {
	return services.Caller{
		ID:   c.GetInt(middleware.UserIDKey),
		Name: c.GetString(middleware.UserNameKey),
	}
}
