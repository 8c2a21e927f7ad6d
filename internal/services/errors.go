package services

import "errors"

// Sentinel errors returned by services. Handlers map them to HTTP status
// codes with errors.Is; the wrapped message is never shown to clients.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidState     = errors.New("invalid state")
	ErrValidation       = errors.New("validation failed")
)
