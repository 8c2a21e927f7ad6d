package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const chatEventType = "chat_events"

// EventEnvelope wraps every domain event published to the exchange.
type EventEnvelope struct {
	EventType  string `json:"event_type"`
	EventName  string `json:"event_name"`
	OccurredAt string `json:"occurred_at"`
	Payload    any    `json:"payload"`
}

// NewEventEnvelope stamps a chat event with the current UTC time.
func NewEventEnvelope(name string, payload any) EventEnvelope {
	return EventEnvelope{
		EventType:  chatEventType,
		EventName:  name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
		Payload:    payload,
	}
}

// EventHeaders returns the correlation ids carried by ctx: the request id
// and, inside a sampled or remote span, the trace id.
func EventHeaders(ctx context.Context) map[string]string {
	headers := map[string]string{}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		headers["x-request-id"] = requestID
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		headers["trace_id"] = sc.TraceID().String()
	}
	return headers
}
