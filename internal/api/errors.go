package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/onboard-api/internal/api/shared"
	"github.com/phrazzld/onboard-api/internal/store"
)

// MapErrorToStatusCode maps store errors to HTTP status codes by kind.
// This prevents leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsValidationError(err):
		return http.StatusBadRequest
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	case store.IsConflictError(err):
		return http.StatusConflict
	case store.IsInvalidReferenceError(err):
		return http.StatusUnprocessableEntity
	case store.IsConnectionError(err):
		return http.StatusServiceUnavailable
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
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrQuestionnaireNotFound):
		return "Questionnaire not found"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrUserDoesNotExist):
		return "User does not exist"
	case errors.Is(err, store.ErrInvalidEmail):
		return "Invalid email format"
	case errors.Is(err, store.ErrWeakPassword):
		return "Password must be at least 8 characters and contain a letter and a digit"
	case errors.Is(err, store.ErrPasswordTooLong):
		return "Password must be at most 72 bytes"
	case errors.Is(err, store.ErrInvalidAge):
		return "Age must be between 0 and 120"
	case errors.Is(err, store.ErrInvalidGender):
		return "Gender must be one of Male, Female, Other"
	case errors.Is(err, store.ErrNoFieldToUpdate):
		return "No field to update"
	case errors.Is(err, store.ErrMissingField):
		return "Required field is missing"
	case errors.Is(err, store.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, store.ErrValidation):
		return "Validation error"
	case errors.Is(err, store.ErrConnection):
		return "Service temporarily unavailable"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted detail. defaultMsg replaces the generic message for 500 responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message naming
// the offending fields, without echoing submitted values.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	details := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		details = append(details, fmt.Sprintf("%s: %s", fe.Field(), getValidationTagMessage(fe.Tag())))
	}
	return "Invalid " + strings.Join(details, "; ")
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "gt":
		return "must be greater than 0"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
