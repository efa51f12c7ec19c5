package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/husseinbouik/task-manager-app-backend/internal/domain"
	"github.com/husseinbouik/task-manager-app-backend/internal/platform/logger"
)

// TaskCreatedJob records that a notification was sent for a newly created
// task. The log sink is the durable record; no mail transport is wired.
type TaskCreatedJob struct {
	id        uuid.UUID
	taskID    uuid.UUID
	ownerID   uuid.UUID
	taskTitle string
	logger    *slog.Logger
}

// Ensure TaskCreatedJob implements the Job interface
var _ Job = (*TaskCreatedJob)(nil)

// NewTaskCreatedJob creates a notification job for the given task.
// The job captures the fields it needs rather than holding the task itself,
// so later mutations of the task cannot race with job execution.
func NewTaskCreatedJob(task *domain.Task, logger *slog.Logger) *TaskCreatedJob {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskCreatedJob{
		id:        uuid.New(),
		taskID:    task.ID,
		ownerID:   task.OwnerID,
		taskTitle: task.Title,
		logger:    logger.With(slog.String("component", "task_created_job")),
	}
}

// ID returns the job's unique identifier
func (j *TaskCreatedJob) ID() uuid.UUID {
	return j.id
}

// Type returns the job type identifier
func (j *TaskCreatedJob) Type() string {
	return JobTypeTaskCreated
}

// Execute writes the notification record for the task.
func (j *TaskCreatedJob) Execute(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, j.logger)

	log.Info("notification sent for task",
		slog.String("task_title", j.taskTitle),
		slog.String("task_id", j.taskID.String()),
		slog.String("owner_id", j.ownerID.String()))

	return nil
}

// TaskTitle returns the title the notification refers to.
func (j *TaskCreatedJob) TaskTitle() string {
	return j.taskTitle
}

// TaskID returns the ID of the task the notification refers to.
func (j *TaskCreatedJob) TaskID() uuid.UUID {
	return j.taskID
}
