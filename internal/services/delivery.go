package services

import (
	"context"
	"fmt"
	"log"

	"adspace-chat/internal/models"
	"adspace-chat/internal/queue"
	"adspace-chat/internal/repositories"
)

// AutoReplyDelivery writes scheduled auto-replies. It is the queue's
// DeliverFunc; retry and drop policy belong to the scheduler.
type AutoReplyDelivery struct {
	messages repositories.MessageRepository
	events   EventPublisher
}

func NewAutoReplyDelivery(messages repositories.MessageRepository, events EventPublisher) *AutoReplyDelivery {
	return &AutoReplyDelivery{messages: messages, events: events}
}

func (d *AutoReplyDelivery) Deliver(ctx context.Context, reply queue.AutoReply) error {
	ctx, span := tracer.Start(ctx, "AutoReplyDelivery.Deliver")
	defer span.End()

	msg, err := d.messages.CreateChatMessage(ctx, reply.ChatID, reply.SenderID, reply.Content)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("persist auto reply: %w", err)
	}

	if d.events != nil {
		// Event failures do not undo a persisted reply.
		if err := d.events.PublishEvent(ctx, RoutingKeyMessageSent, "message_sent", models.MessageEvent{
			Type:     "message",
			ChatID:   reply.ChatID,
			Message:  msg,
			AutoSent: true,
		}); err != nil {
			log.Printf("event publish failed: routing_key=%s chat_id=%d err=%v", RoutingKeyMessageSent, reply.ChatID, err)
		}
	}
	return nil
}
