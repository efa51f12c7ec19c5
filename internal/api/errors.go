package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/husseinbouik/task-manager-app-backend/internal/domain"
	"github.com/husseinbouik/task-manager-app-backend/internal/service"
	"github.com/husseinbouik/task-manager-app-backend/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors (covers "exists but not owned by caller")
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, domain.ErrValidation):
		return "The given data was invalid."

	default:
		return "An unexpected error occurred"
	}
}

// FieldErrors converts a validator.ValidationErrors value into the
// per-field message map used in 422 responses. Unknown error values
// collapse into a single generic entry.
func FieldErrors(err error) map[string][]string {
	fields := make(map[string][]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		var verr *domain.ValidationError
		if errors.As(err, &verr) && verr.Field != "" {
			fields[verr.Field] = []string{verr.Message}
			return fields
		}
		fields["_"] = []string{"The given data was invalid."}
		return fields
	}

	for _, fe := range verrs {
		field := fe.Field()
		fields[field] = append(fields[field], fieldErrorMessage(field, fe))
	}
	return fields
}

// fieldErrorMessage maps a validation tag to a client-facing message for
// the field.
func fieldErrorMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
