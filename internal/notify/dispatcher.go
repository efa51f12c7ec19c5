package notify

import (
	"context"
	"log/slog"

	"github.com/husseinbouik/task-manager-app-backend/internal/domain"
	"github.com/husseinbouik/task-manager-app-backend/internal/platform/logger"
)

// Dispatcher is the producer side of the notification pipeline. It turns
// domain events into jobs and submits them to the queue without blocking.
// Submission failures are logged and dropped: a notification must never
// affect the outcome of the request that triggered it.
type Dispatcher struct {
	queue  QueueWriter
	logger *slog.Logger
}

// NewDispatcher creates a new Dispatcher writing to the given queue.
func NewDispatcher(queue QueueWriter, logger *slog.Logger) *Dispatcher {
	if queue == nil {
		panic("queue cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		queue:  queue,
		logger: logger.With(slog.String("component", "notify_dispatcher")),
	}
}

// TaskCreated enqueues a fire-and-forget notification job for a newly
// created task. It returns immediately; the job runs later on a worker.
func (d *Dispatcher) TaskCreated(ctx context.Context, task *domain.Task) {
	log := logger.FromContextOrDefault(ctx, d.logger)

	job := NewTaskCreatedJob(task, d.logger)
	if err := d.queue.Enqueue(job); err != nil {
		// Dropped notification; the task itself was already persisted and
		// the request path must not observe this failure.
		log.Error("failed to enqueue task notification",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("job_id", job.ID().String()))
		return
	}

	log.Debug("task notification enqueued",
		slog.String("task_id", task.ID.String()),
		slog.String("job_id", job.ID().String()))
}
