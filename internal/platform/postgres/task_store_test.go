package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/husseinbouik/task-manager-app-backend/internal/domain"
	"github.com/husseinbouik/task-manager-app-backend/internal/platform/postgres"
	"github.com/husseinbouik/task-manager-app-backend/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDBTX implements store.DBTX for exercising the write paths without a
// database. Only ExecContext is used by the operations under test.
type fakeDBTX struct {
	execResult sql.Result
	execErr    error
}

func (f *fakeDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return f.execResult, f.execErr
}

func (f *fakeDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}

func (f *fakeDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func newStoredTask(t *testing.T) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(uuid.New(), "Buy groceries", nil, "", nil)
	require.NoError(t, err)
	return task
}

func TestNewPostgresTaskStore_NilDBPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		postgres.NewPostgresTaskStore(nil, nil)
	})
}

func TestPostgresTaskStore_Create_MissingOwner(t *testing.T) {
	t.Parallel()

	db := &fakeDBTX{execErr: &pgconn.PgError{Code: "23503", ConstraintName: "tasks_owner_id_fkey"}}
	taskStore := postgres.NewPostgresTaskStore(db, nil)

	err := taskStore.Create(context.Background(), newStoredTask(t))
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestPostgresTaskStore_Create_RejectsInvalidTask(t *testing.T) {
	t.Parallel()

	taskStore := postgres.NewPostgresTaskStore(&fakeDBTX{}, nil)

	task := newStoredTask(t)
	task.Title = ""

	err := taskStore.Create(context.Background(), task)
	assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
}

func TestPostgresTaskStore_Update_RowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("zero rows reports task not found", func(t *testing.T) {
		t.Parallel()

		db := &fakeDBTX{execResult: fakeResult{rows: 0}}
		taskStore := postgres.NewPostgresTaskStore(db, nil)

		err := taskStore.Update(context.Background(), newStoredTask(t))
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("one row succeeds", func(t *testing.T) {
		t.Parallel()

		db := &fakeDBTX{execResult: fakeResult{rows: 1}}
		taskStore := postgres.NewPostgresTaskStore(db, nil)

		assert.NoError(t, taskStore.Update(context.Background(), newStoredTask(t)))
	})
}

func TestPostgresTaskStore_Delete_RowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("zero rows reports task not found", func(t *testing.T) {
		t.Parallel()

		db := &fakeDBTX{execResult: fakeResult{rows: 0}}
		taskStore := postgres.NewPostgresTaskStore(db, nil)

		err := taskStore.Delete(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("one row succeeds", func(t *testing.T) {
		t.Parallel()

		db := &fakeDBTX{execResult: fakeResult{rows: 1}}
		taskStore := postgres.NewPostgresTaskStore(db, nil)

		assert.NoError(t, taskStore.Delete(context.Background(), uuid.New(), uuid.New()))
	})
}
