package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"adspace-chat/internal/telemetry"
)

// RegisterDebugRoutes wires debug-only endpoints. Mount it behind the auth
// middleware so the test record names the calling user.
func RegisterDebugRoutes(router gin.IRouter, emitter *telemetry.AuditEmitter, enabled bool) {
	if !enabled {
		return
	}

	router.POST("/debug/audit", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit emitter not configured"})
			return
		}
		caller := callerFromContext(c)
		requestID := requestIDFromContext(c)
		emitter.Emit(c.Request.Context(), "INFO", fmt.Sprintf("debug audit record from %s", caller.Name), requestID, caller.ID)
		c.JSON(http.StatusAccepted, gin.H{"request_id": requestID})
	})
}
