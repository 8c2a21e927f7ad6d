package queue

import (
	"context"
	"log"
	"sync"
	"time"

	"adspace-chat/internal/observability"
)

const deliveryTimeout = 10 * time.Second

// TimerScheduler delivers replies in-process with time.AfterFunc. It is used
// when no Redis is configured; pending replies do not survive a restart.
type TimerScheduler struct {
	deliver DeliverFunc

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// NewTimerScheduler builds a scheduler that calls deliver after each delay.
func NewTimerScheduler(deliver DeliverFunc) *TimerScheduler {
	return &TimerScheduler{deliver: deliver}
}

var _ Scheduler = (*TimerScheduler)(nil)

func (s *TimerScheduler) Schedule(_ context.Context, reply AutoReply, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSchedulerClosed
	}

	s.pending.Add(1)
	time.AfterFunc(delay, func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		runDelivery(ctx, s.deliver, reply)
	})
	observability.IncAutoReply("scheduled")
	return nil
}

// Close stops accepting replies and waits for timers already fired or pending.
func (s *TimerScheduler) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.pending.Wait()
	return nil
}

// runDelivery executes one attempt and drops failures.
func runDelivery(ctx context.Context, deliver DeliverFunc, reply AutoReply) error {
	if err := deliver(ctx, reply); err != nil {
		log.Printf("auto reply dropped: chat_id=%d sender_id=%d err=%v", reply.ChatID, reply.SenderID, err)
		observability.IncAutoReply("dropped")
		return err
	}
	observability.IncAutoReply("delivered")
	return nil
}
