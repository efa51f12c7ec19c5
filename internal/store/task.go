package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/husseinbouik/task-manager-app-backend/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// All lookups are scoped by owner so that a task can never be observed
// through a different user's identity.
type TaskStore interface {
	// Create saves a new task to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByIDAndOwner retrieves a task by its unique ID, scoped to the owner.
	// Returns ErrTaskNotFound if no task matches both the ID and the owner.
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// ListByOwner retrieves all tasks belonging to the owner in creation
	// order. Returns an empty slice if the owner has no tasks.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Update saves changes to an existing task, scoped to its owner.
	// Returns ErrTaskNotFound if no task matches both the ID and the owner.
	// Returns validation errors if the task data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task, scoped to the owner.
	// Returns ErrTaskNotFound if no task matches both the ID and the owner.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
