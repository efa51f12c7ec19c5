// Package service contains the application services that orchestrate
// domain operations over the store interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/husseinbouik/task-manager-app-backend/internal/domain"
	"github.com/husseinbouik/task-manager-app-backend/internal/store"
)

// TaskRepository defines the repository interface for the service layer.
// It is aligned with store.TaskStore to ensure proper separation of concerns.
type TaskRepository interface {
	// Create saves a new task to the store
	Create(ctx context.Context, task *domain.Task) error

	// GetByIDAndOwner retrieves a task by ID, scoped to the owner
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// ListByOwner retrieves all tasks belonging to the owner
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Update saves changes to an existing task, scoped to its owner
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task, scoped to the owner
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) store.TaskStore

	// DB returns the underlying database connection, or nil for
	// implementations without one (e.g., in-memory repositories)
	DB() *sql.DB
}

// NotificationDispatcher is the producer-side contract of the notification
// pipeline. Implementations must return without blocking on job execution.
type NotificationDispatcher interface {
	// TaskCreated submits a fire-and-forget notification for a new task
	TaskCreated(ctx context.Context, task *domain.Task)
}

// CreateTaskInput carries the validated fields for task creation.
// Status may be empty, in which case it defaults to pending.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update. A nil field was absent from the
// request and is left untouched. The mutable set is exactly these four
// fields; owner and timestamps are never client-writable.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	DueDate     *time.Time
}

// TaskService provides task CRUD operations scoped to an authenticated
// owner. The owner identity is always an explicit argument, never read
// from ambient state.
type TaskService interface {
	// Create persists a new task owned by ownerID and triggers the
	// creation notification.
	Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// List returns all tasks owned by ownerID in creation order.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Get returns the task with the given ID if owned by ownerID.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)

	// Update applies the supplied fields to the task and refreshes its
	// updated_at timestamp.
	Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error)

	// Delete permanently removes the task.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskRepo   TaskRepository
	dispatcher NotificationDispatcher
	logger     *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskRepo TaskRepository,
	dispatcher NotificationDispatcher,
	logger *slog.Logger,
) (TaskService, error) {
	if taskRepo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskRepo cannot be nil",
		}
	}
	if dispatcher == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "dispatcher cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskRepo:   taskRepo,
		dispatcher: dispatcher,
		logger:     logger.With("component", "task_service"),
	}, nil
}

// Create persists a new task with the caller as owner, defaulting the
// status to pending, then submits the creation notification. The enqueue
// happens after the row is committed and never blocks or fails the request.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, input.Title, input.Description, input.Status, input.DueDate)
	if err != nil {
		s.logger.Warn("failed to create task object",
			"error", err,
			"owner_id", ownerID)
		return nil, NewTaskServiceError("create_task", "failed to create task object", err)
	}

	err = s.inTransaction(ctx, func(ctx context.Context, repo store.TaskStore) error {
		if err := repo.Create(ctx, task); err != nil {
			s.logger.Error("failed to save task",
				"error", err,
				"owner_id", ownerID,
				"task_id", task.ID)
			return NewTaskServiceError("create_task", "failed to save task to store", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created successfully",
		"task_id", task.ID,
		"owner_id", ownerID)

	// Fire-and-forget: the response does not wait for the notification.
	s.dispatcher.TaskCreated(ctx, task)

	return task, nil
}

// List returns all tasks owned by ownerID.
func (s *taskServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"owner_id", ownerID)
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	s.logger.Debug("listed tasks successfully",
		"owner_id", ownerID,
		"count", len(tasks))
	return tasks, nil
}

// Get returns the task only if it is owned by ownerID; a task owned by
// someone else yields ErrTaskNotFound, not a permission error.
func (s *taskServiceImpl) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to retrieve task",
			"error", err,
			"task_id", id,
			"owner_id", ownerID)
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// Update applies only the fields present in input to the task, leaving
// absent fields untouched, and refreshes updated_at. The read-modify-write
// runs in a single transaction so concurrent updates cannot interleave.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	var updated *domain.Task

	err := s.inTransaction(ctx, func(ctx context.Context, repo store.TaskStore) error {
		task, err := repo.GetByIDAndOwner(ctx, id, ownerID)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return ErrTaskNotFound
			}
			s.logger.Error("failed to retrieve task for update",
				"error", err,
				"task_id", id,
				"owner_id", ownerID)
			return NewTaskServiceError("update_task", "failed to retrieve task", err)
		}

		applyTaskUpdate(task, input)
		task.Touch()

		if err := task.Validate(); err != nil {
			s.logger.Warn("task validation failed during update",
				"error", err,
				"task_id", id)
			return NewTaskServiceError("update_task", "updated task failed validation", err)
		}

		if err := repo.Update(ctx, task); err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return ErrTaskNotFound
			}
			s.logger.Error("failed to save updated task",
				"error", err,
				"task_id", id,
				"owner_id", ownerID)
			return NewTaskServiceError("update_task", "failed to save task", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated successfully",
		"task_id", id,
		"owner_id", ownerID)
	return updated, nil
}

// Delete permanently removes the task; a second delete of the same ID
// yields ErrTaskNotFound.
func (s *taskServiceImpl) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := s.taskRepo.Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", id,
			"owner_id", ownerID)
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.Info("task deleted successfully",
		"task_id", id,
		"owner_id", ownerID)
	return nil
}

// applyTaskUpdate copies the present fields of input onto the task.
// Only the whitelisted mutable fields can ever be touched here; anything
// else a client submits has already been discarded by the API layer.
func applyTaskUpdate(task *domain.Task, input UpdateTaskInput) {
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
}

// inTransaction runs fn against a transactional repository when the
// underlying store exposes a database handle, and directly against the
// repository otherwise (in-memory implementations used in tests).
func (s *taskServiceImpl) inTransaction(
	ctx context.Context,
	fn func(ctx context.Context, repo store.TaskStore) error,
) error {
	db := s.taskRepo.DB()
	if db == nil {
		return fn(ctx, s.taskRepo)
	}

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.taskRepo.WithTx(tx))
	})
}
