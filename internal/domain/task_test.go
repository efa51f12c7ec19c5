package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/husseinbouik/task-manager-app-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	description := "buy milk on the way home"
	dueDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		ownerID     uuid.UUID
		title       string
		description *string
		status      domain.TaskStatus
		dueDate     *time.Time
		wantErr     error
	}{
		{
			name:        "valid task with all fields",
			ownerID:     ownerID,
			title:       "Buy groceries",
			description: &description,
			status:      domain.TaskStatusCompleted,
			dueDate:     &dueDate,
			wantErr:     nil,
		},
		{
			name:    "valid task with only a title",
			ownerID: ownerID,
			title:   "Buy groceries",
			wantErr: nil,
		},
		{
			name:    "empty owner ID",
			ownerID: uuid.Nil,
			title:   "Buy groceries",
			wantErr: domain.ErrEmptyTaskOwnerID,
		},
		{
			name:    "empty title",
			ownerID: ownerID,
			title:   "",
			wantErr: domain.ErrEmptyTaskTitle,
		},
		{
			name:    "title too long",
			ownerID: ownerID,
			title:   strings.Repeat("a", domain.MaxTitleLength+1),
			wantErr: domain.ErrTaskTitleTooLong,
		},
		{
			name:    "title at maximum length",
			ownerID: ownerID,
			title:   strings.Repeat("a", domain.MaxTitleLength),
			wantErr: nil,
		},
		{
			name:    "multibyte title at maximum length",
			ownerID: ownerID,
			title:   strings.Repeat("日", domain.MaxTitleLength),
			wantErr: nil,
		},
		{
			name:    "multibyte title too long",
			ownerID: ownerID,
			title:   strings.Repeat("日", domain.MaxTitleLength+1),
			wantErr: domain.ErrTaskTitleTooLong,
		},
		{
			name:    "invalid status",
			ownerID: ownerID,
			title:   "Buy groceries",
			status:  domain.TaskStatus("archived"),
			wantErr: domain.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task, err := domain.NewTask(tt.ownerID, tt.title, tt.description, tt.status, tt.dueDate)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, task)
			assert.NotEqual(t, uuid.Nil, task.ID)
			assert.Equal(t, tt.ownerID, task.OwnerID)
			assert.Equal(t, tt.title, task.Title)
			assert.Equal(t, tt.description, task.Description)
			assert.Equal(t, tt.dueDate, task.DueDate)
			assert.False(t, task.CreatedAt.IsZero())
			assert.Equal(t, task.CreatedAt, task.UpdatedAt)
		})
	}
}

func TestNewTask_DefaultsStatusToPending(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask(uuid.New(), "Buy groceries", nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	validTask := func() *domain.Task {
		return &domain.Task{
			ID:        uuid.New(),
			OwnerID:   uuid.New(),
			Title:     "Buy groceries",
			Status:    domain.TaskStatusPending,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
	}

	tests := []struct {
		name    string
		modify  func(*domain.Task)
		wantErr error
	}{
		{
			name:    "valid task",
			modify:  func(*domain.Task) {},
			wantErr: nil,
		},
		{
			name:    "missing ID",
			modify:  func(task *domain.Task) { task.ID = uuid.Nil },
			wantErr: domain.ErrEmptyTaskID,
		},
		{
			name:    "missing owner ID",
			modify:  func(task *domain.Task) { task.OwnerID = uuid.Nil },
			wantErr: domain.ErrEmptyTaskOwnerID,
		},
		{
			name:    "empty title",
			modify:  func(task *domain.Task) { task.Title = "" },
			wantErr: domain.ErrEmptyTaskTitle,
		},
		{
			name:    "invalid status",
			modify:  func(task *domain.Task) { task.Status = "started" },
			wantErr: domain.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task := validTask()
			tt.modify(task)

			err := task.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTaskValidationErrorsWrapErrValidation(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		domain.ErrEmptyTaskID,
		domain.ErrEmptyTaskOwnerID,
		domain.ErrEmptyTaskTitle,
		domain.ErrTaskTitleTooLong,
		domain.ErrInvalidStatus,
	}
	for _, sentinel := range sentinels {
		assert.ErrorIs(t, sentinel, domain.ErrValidation)
	}
}

func TestTaskTouch(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask(uuid.New(), "Buy groceries", nil, "", nil)
	require.NoError(t, err)

	original := task.UpdatedAt
	task.UpdatedAt = original.Add(-time.Hour)

	task.Touch()
	assert.False(t, task.UpdatedAt.Before(original))
	assert.Equal(t, original, task.CreatedAt)
}
