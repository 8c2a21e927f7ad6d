package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestEventHeadersEmpty(t *testing.T) {
	assert.Empty(t, EventHeaders(context.Background()))
}

func TestEventHeadersCarriesIDs(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID}))

	assert.Equal(t, map[string]string{
		"x-request-id": "req-1",
		"trace_id":     "4bf92f3577b34da6a3ce929d0e0e4736",
	}, EventHeaders(ctx))
}

func TestNewEventEnvelope(t *testing.T) {
	env := NewEventEnvelope("message_sent", map[string]int{"chat_id": 3})

	assert.Equal(t, "chat_events", env.EventType)
	assert.Equal(t, "message_sent", env.EventName)
	assert.NotEmpty(t, env.OccurredAt)
}
