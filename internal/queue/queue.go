// Package queue schedules deferred auto-replies.
//
// Delivery is at-most-once and best effort: a scheduled reply is attempted a
// single time after its delay, and a failed attempt is logged and dropped.
// Nothing waits for it and nothing retries it.
package queue

import (
	"context"
	"errors"
	"time"
)

var ErrSchedulerClosed = errors.New("scheduler closed")

// AutoReply is a synthetic message to be written on behalf of SenderID.
type AutoReply struct {
	ChatID   int    `json:"chat_id"`
	SenderID int    `json:"sender_id"`
	Content  string `json:"content"`
}

// DeliverFunc persists a scheduled reply.
type DeliverFunc func(ctx context.Context, reply AutoReply) error

// Scheduler submits replies for deferred delivery. Schedule returns once the
// reply is accepted; it never waits for the delay to elapse.
type Scheduler interface {
	Schedule(ctx context.Context, reply AutoReply, delay time.Duration) error
	Close() error
}
