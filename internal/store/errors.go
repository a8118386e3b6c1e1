package store

import (
	"errors"
	"fmt"
)

// Error kinds returned by repositories. Every error a repository returns wraps
// exactly one of these, so callers can classify failures with errors.Is.
var (
	// ErrValidation is returned when input is malformed or out of range.
	// It is always detected before any write is attempted.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a write would violate a uniqueness rule.
	ErrConflict = errors.New("conflict")

	// ErrNotFound is returned when an operation targets a row that does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidReference is returned when a write references a parent row
	// that does not exist.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrConnection is returned when the pool cannot produce a connection or
	// the database is unreachable. It is never retried automatically.
	ErrConnection = errors.New("database connection failed")

	// ErrInternal is returned for any other database failure.
	ErrInternal = errors.New("internal database error")
)

// Entity-specific errors.
var (
	ErrUserNotFound          = fmt.Errorf("%w: user", ErrNotFound)
	ErrQuestionnaireNotFound = fmt.Errorf("%w: questionnaire", ErrNotFound)

	ErrEmailExists = fmt.Errorf("%w: email exists", ErrConflict)

	ErrUserDoesNotExist = fmt.Errorf("%w: user does not exist", ErrInvalidReference)

	ErrInvalidEmail    = fmt.Errorf("%w: invalid email", ErrValidation)
	ErrWeakPassword    = fmt.Errorf("%w: password does not meet complexity requirements", ErrValidation)
	ErrPasswordTooLong = fmt.Errorf("%w: password exceeds 72 bytes", ErrValidation)
	ErrInvalidAge      = fmt.Errorf("%w: age must be between 0 and 120", ErrValidation)
	ErrInvalidGender   = fmt.Errorf("%w: gender must be one of Male, Female, Other", ErrValidation)
	ErrNoFieldToUpdate = fmt.Errorf("%w: no field to update", ErrValidation)
	ErrMissingField    = fmt.Errorf("%w: required field is empty", ErrValidation)
	ErrInvalidID       = fmt.Errorf("%w: id must be positive", ErrValidation)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflictError reports whether err is any kind of uniqueness conflict.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidationError reports whether err is any kind of validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidReferenceError reports whether err is a missing-parent failure.
func IsInvalidReferenceError(err error) bool {
	return errors.Is(err, ErrInvalidReference)
}

// IsConnectionError reports whether err is a connection failure.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection)
}

// StoreError is a custom error type for store-specific errors with additional context.
// It matches both its Kind and its underlying cause under errors.Is / errors.As.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "questionnaire")
	Operation string // The operation that failed (e.g., "create", "delete")
	Message   string // Error message
	Kind      error  // One of the error kinds above
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the kind and the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewStoreError creates a new StoreError with the given entity, operation,
// message, and wrapped error. A nil kind defaults to ErrInternal.
func NewStoreError(entity, operation, message string, kind, err error) *StoreError {
	if kind == nil {
		kind = ErrInternal
	}
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Kind:      kind,
		Err:       err,
	}
}
