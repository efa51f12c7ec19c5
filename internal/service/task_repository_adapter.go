package service

import (
	"database/sql"

	"github.com/husseinbouik/task-manager-app-backend/internal/store"
)

// TaskRepositoryAdapter adapts a store.TaskStore to the service-layer
// TaskRepository interface, pairing it with the database handle needed
// for transactional operations.
type TaskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// NewTaskRepositoryAdapter creates a new adapter that implements
// TaskRepository by delegating to a store.TaskStore implementation.
// db may be nil for store implementations without a SQL handle.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) *TaskRepositoryAdapter {
	return &TaskRepositoryAdapter{
		TaskStore: taskStore,
		db:        db,
	}
}

// DB returns the underlying database connection.
func (a *TaskRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// Ensure TaskRepositoryAdapter implements service.TaskRepository
var _ TaskRepository = (*TaskRepositoryAdapter)(nil)
