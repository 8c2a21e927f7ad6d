package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"adspace-chat/internal/observability"
)

const (
	// AutoReplyTaskType is the asynq task name for deferred auto-replies.
	AutoReplyTaskType = "chat:auto_reply"
	autoReplyQueue    = "chat"
)

// AsynqScheduler enqueues replies into Redis through asynq. Tasks are created
// with MaxRetry(0) so a failed delivery is archived instead of retried.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler constructs a scheduler from a redis:// URL.
func NewAsynqScheduler(redisURL string) (*AsynqScheduler, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("asynq: parse redis url: %w", err)
	}
	return &AsynqScheduler{client: asynq.NewClient(opt)}, nil
}

var _ Scheduler = (*AsynqScheduler)(nil)

func (s *AsynqScheduler) Schedule(ctx context.Context, reply AutoReply, delay time.Duration) error {
	payload, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	task := asynq.NewTask(AutoReplyTaskType, payload)
	info, err := s.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(delay),
		asynq.MaxRetry(0),
		asynq.Queue(autoReplyQueue),
		asynq.Timeout(deliveryTimeout),
	)
	if err != nil {
		return fmt.Errorf("asynq: enqueue auto reply: %w", err)
	}
	log.Printf("auto reply scheduled: task_id=%s chat_id=%d delay=%s", info.ID, reply.ChatID, delay)
	observability.IncAutoReply("scheduled")
	return nil
}

func (s *AsynqScheduler) Close() error {
	return s.client.Close()
}

// Worker runs the asynq server that delivers scheduled replies.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker builds a worker consuming the auto-reply queue.
func NewWorker(redisURL string, concurrency int, deliver DeliverFunc) (*Worker, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("asynq: parse redis url: %w", err)
	}
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{autoReplyQueue: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Printf("asynq error: type=%s err=%v", task.Type(), err)
		}),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(AutoReplyTaskType, AutoReplyHandler(deliver))
	return &Worker{server: srv, mux: mux}, nil
}

// AutoReplyHandler decodes the task payload and performs the single delivery
// attempt. Errors are wrapped with asynq.SkipRetry.
func AutoReplyHandler(deliver DeliverFunc) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var reply AutoReply
		if err := json.Unmarshal(t.Payload(), &reply); err != nil {
			observability.IncAutoReply("dropped")
			return fmt.Errorf("decode auto reply: %v: %w", err, asynq.SkipRetry)
		}
		if err := runDelivery(ctx, deliver, reply); err != nil {
			return fmt.Errorf("deliver auto reply: %v: %w", err, asynq.SkipRetry)
		}
		return nil
	}
}

// Run starts the server and blocks until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
