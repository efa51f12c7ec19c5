// Package api provides HTTP handlers for the API.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/husseinbouik/task-manager-app-backend/internal/api/shared"
	"github.com/husseinbouik/task-manager-app-backend/internal/domain"
	"github.com/husseinbouik/task-manager-app-backend/internal/platform/logger"
	"github.com/husseinbouik/task-manager-app-backend/internal/service"
)

// dueDateFormats are the accepted wire formats for the due_date field,
// tried in order.
var dueDateFormats = []string{time.RFC3339, "2006-01-02"}

// CreateTaskRequest represents the request body for creating a new task
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,max=255"`
	Description *string `json:"description" validate:"-"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending completed"`
	DueDate     *string `json:"due_date"    validate:"-"`
}

// UpdateTaskRequest represents the request body for a partial task update.
// A nil field was absent from the request and stays untouched; a present
// field must satisfy the same rule as on creation. Fields outside this
// struct are silently discarded by JSON decoding, so a client can never
// write owner_id or timestamps.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"-"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending completed"`
	DueDate     *string `json:"due_date"    validate:"-"`
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	fieldErrs := map[string][]string{}
	if err := shared.Validate.Struct(req); err != nil {
		fieldErrs = FieldErrors(err)
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		fieldErrs["due_date"] = append(fieldErrs["due_date"], "The due_date is not a valid date.")
	}

	if len(fieldErrs) > 0 {
		log.Debug("task creation validation failed",
			slog.String("user_id", userID.String()),
			slog.Int("field_count", len(fieldErrs)))
		respondValidationErrors(w, r, fieldErrs)
		return
	}

	var status domain.TaskStatus
	if req.Status != nil {
		status = domain.TaskStatus(*req.Status)
	}

	task, err := h.taskService.Create(r.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     dueDate,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to create task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /api/tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	tasks, err := h.taskService.List(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list tasks", err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetTask handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := requireUserAndTaskID(w, r, log)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), userID, taskID)
	if err != nil {
		respondTaskError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /api/tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := requireUserAndTaskID(w, r, log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	fieldErrs := map[string][]string{}
	if err := shared.Validate.Struct(req); err != nil {
		fieldErrs = FieldErrors(err)
	}
	if req.Title != nil && *req.Title == "" {
		// omitempty skips an explicitly supplied empty string, which must
		// still be rejected: a present title follows the creation rule.
		fieldErrs["title"] = append(fieldErrs["title"], "The title field is required.")
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		fieldErrs["due_date"] = append(fieldErrs["due_date"], "The due_date is not a valid date.")
	}

	if len(fieldErrs) > 0 {
		log.Debug("task update validation failed",
			slog.String("task_id", taskID.String()),
			slog.Int("field_count", len(fieldErrs)))
		respondValidationErrors(w, r, fieldErrs)
		return
	}

	var status *domain.TaskStatus
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		status = &s
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     dueDate,
	})
	if err != nil {
		respondTaskError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := requireUserAndTaskID(w, r, log)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		respondTaskError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Task deleted successfully")
}

// requireUserAndTaskID extracts the authenticated user ID from the context
// and the task ID from the URL path, writing the error response itself when
// either is missing. A malformed task ID is reported as not found: an ID
// that cannot exist is indistinguishable from one that does not.
func requireUserAndTaskID(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	pathID := chi.URLParam(r, "id")
	taskID, err := uuid.Parse(pathID)
	if err != nil {
		log.Debug("invalid task ID in URL path", slog.String("task_id", pathID))
		shared.RespondWithMessage(w, r, http.StatusNotFound, "Task not found")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, taskID, true
}

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context, where the authentication middleware placed it.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// respondTaskError writes the response for a task service failure,
// preserving the message-style 404 body the task endpoints use.
func respondTaskError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusNotFound {
		shared.RespondWithMessage(w, r, http.StatusNotFound, "Task not found")
		return
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}

// respondValidationErrors writes a 422 response with per-field messages.
func respondValidationErrors(
	w http.ResponseWriter,
	r *http.Request,
	fieldErrs map[string][]string,
) {
	shared.RespondWithJSON(w, r, http.StatusUnprocessableEntity, shared.ValidationErrorResponse{
		Message: "The given data was invalid.",
		Errors:  fieldErrs,
	})
}

// parseDueDate parses an optional due_date request value. A nil input
// yields a nil time. Accepted formats are RFC3339 and YYYY-MM-DD.
func parseDueDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	for _, format := range dueDateFormats {
		if t, err := time.Parse(format, *value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}

	return nil, fmt.Errorf("invalid due date %q", *value)
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		OwnerID:     task.OwnerID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
