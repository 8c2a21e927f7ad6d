// Package services holds the chat and catalog use cases. Every operation
// takes the authenticated Caller explicitly and returns DTOs.
package services

import (
	"context"

	"go.opentelemetry.io/otel"

	"adspace-chat/internal/dto"
)

var tracer = otel.Tracer("adspace-chat/services")

// Caller is the authenticated user on whose behalf an operation runs.
type Caller struct {
	ID   int
	Name string
}

// EventPublisher publishes domain events. Implementations are best effort.
type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey, name string, payload any) error
}

// BusinessCache stores rendered business details. Get reports a miss with
// cache.ErrMiss.
type BusinessCache interface {
	Get(ctx context.Context, businessID int) (dto.BusinessDetail, error)
	Set(ctx context.Context, businessID int, detail dto.BusinessDetail) error
	Delete(ctx context.Context, businessID int) error
}

const (
	RoutingKeyMessageSent = "chat.message_sent"
	RoutingKeyChatCreated = "chat.created"
)
