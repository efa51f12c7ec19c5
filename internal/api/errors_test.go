package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/husseinbouik/task-manager-app-backend/internal/api"
	"github.com/husseinbouik/task-manager-app-backend/internal/api/shared"
	"github.com/husseinbouik/task-manager-app-backend/internal/domain"
	"github.com/husseinbouik/task-manager-app-backend/internal/service"
	"github.com/husseinbouik/task-manager-app-backend/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid token",
			err:  auth.ErrInvalidToken,
			want: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			err:  auth.ErrExpiredToken,
			want: http.StatusUnauthorized,
		},
		{
			name: "unauthorized",
			err:  domain.ErrUnauthorized,
			want: http.StatusUnauthorized,
		},
		{
			name: "task not found",
			err:  service.ErrTaskNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "wrapped task not found",
			err:  fmt.Errorf("lookup failed: %w", service.ErrTaskNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "validation error",
			err:  domain.NewValidationError("title", "The title field is required.", nil),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "domain validation sentinel",
			err:  domain.ErrTaskTitleTooLong,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "domain validation sentinel wrapped by the service",
			err:  service.NewTaskServiceError("create_task", "failed to create task object", domain.ErrEmptyTaskTitle),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown error",
			err:  fmt.Errorf("connection refused"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Task not found", api.GetSafeErrorMessage(service.ErrTaskNotFound))
	assert.Equal(t, "Invalid token", api.GetSafeErrorMessage(auth.ErrInvalidToken))
	assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(fmt.Errorf("pq: disk full")))
	assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(nil))
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	t.Run("uses JSON tag names for validator errors", func(t *testing.T) {
		t.Parallel()

		req := api.CreateTaskRequest{}
		err := shared.Validate.Struct(req)
		require.Error(t, err)

		fields := api.FieldErrors(err)
		require.Contains(t, fields, "title")
		assert.Equal(t, []string{"The title field is required."}, fields["title"])
	})

	t.Run("domain validation error maps its field", func(t *testing.T) {
		t.Parallel()

		err := domain.NewValidationError("status", "The selected status is invalid.", nil)
		fields := api.FieldErrors(err)
		assert.Equal(t, []string{"The selected status is invalid."}, fields["status"])
	})

	t.Run("unknown error collapses into a generic entry", func(t *testing.T) {
		t.Parallel()

		fields := api.FieldErrors(fmt.Errorf("boom"))
		assert.Equal(t, []string{"The given data was invalid."}, fields["_"])
	})
}
