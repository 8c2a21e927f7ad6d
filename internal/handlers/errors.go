package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adspace-chat/internal/services"
)

const (
	msgNotFound         = "Nie znaleziono zasobu"
	msgForbidden        = "Brak dostępu"
	msgInvalidOperation = "Niedozwolona operacja"
	msgValidation       = "Nieprawidłowe dane"
	msgInvalidState     = "Błąd spójności danych"
	msgInternal         = "Wystąpił błąd serwera"
	msgInvalidID        = "Nieprawidłowy identyfikator"
)

// statusFor maps a service error to an HTTP status and a short message
// safe to show to users.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, services.ErrInvalidOperation):
		return http.StatusBadRequest, msgInvalidOperation
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, msgValidation
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusInternalServerError, msgInvalidState
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("request failed: method=%s path=%s request_id=%s err=%v", c.Request.Method, c.FullPath(), requestIDFromContext(c), err)
	}
	c.JSON(status, gin.H{"error": message})
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
		return 0, false
	}
	return id, true
}
