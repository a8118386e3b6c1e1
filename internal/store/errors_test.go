package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"user not found", ErrUserNotFound, ErrNotFound},
		{"questionnaire not found", ErrQuestionnaireNotFound, ErrNotFound},
		{"email exists", ErrEmailExists, ErrConflict},
		{"user does not exist", ErrUserDoesNotExist, ErrInvalidReference},
		{"invalid email", ErrInvalidEmail, ErrValidation},
		{"weak password", ErrWeakPassword, ErrValidation},
		{"invalid age", ErrInvalidAge, ErrValidation},
		{"invalid gender", ErrInvalidGender, ErrValidation},
		{"no field to update", ErrNoFieldToUpdate, ErrValidation},
		{"missing field", ErrMissingField, ErrValidation},
		{"invalid id", ErrInvalidID, ErrValidation},
	}

	kinds := []error{
		ErrValidation, ErrConflict, ErrNotFound,
		ErrInvalidReference, ErrConnection, ErrInternal,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("operation failed: %w", tt.err)
			for _, kind := range kinds {
				assert.Equal(t, kind == tt.kind, errors.Is(wrapped, kind),
					"errors.Is(%v, %v)", tt.err, kind)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "wrapped ErrUserNotFound", err: fmt.Errorf("get: %w", ErrUserNotFound), expected: true},
		{name: "ErrQuestionnaireNotFound", err: ErrQuestionnaireNotFound, expected: true},
		{name: "conflict", err: ErrEmailExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestClassificationHelpers(t *testing.T) {
	assert.True(t, IsConflictError(fmt.Errorf("x: %w", ErrEmailExists)))
	assert.False(t, IsConflictError(ErrUserNotFound))

	assert.True(t, IsValidationError(ErrInvalidAge))
	assert.False(t, IsValidationError(ErrInternal))

	assert.True(t, IsInvalidReferenceError(ErrUserDoesNotExist))
	assert.False(t, IsInvalidReferenceError(ErrNotFound))

	assert.True(t, IsConnectionError(fmt.Errorf("%w: acquire: %w", ErrConnection, errors.New("dial tcp"))))
	assert.False(t, IsConnectionError(nil))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk full")

	t.Run("message with wrapped error", func(t *testing.T) {
		err := NewStoreError("user", "create", "insert failed", nil, cause)
		assert.Equal(t, "create operation on user failed: insert failed: disk full", err.Error())
	})

	t.Run("message without wrapped error", func(t *testing.T) {
		err := NewStoreError("questionnaire", "delete", "nothing to do", ErrNotFound, nil)
		assert.Equal(t, "delete operation on questionnaire failed: nothing to do", err.Error())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("defaults to internal kind and keeps cause", func(t *testing.T) {
		err := NewStoreError("user", "delete", "delete failed", nil, cause)
		assert.ErrorIs(t, err, ErrInternal)
		assert.ErrorIs(t, err, cause)
		assert.False(t, errors.Is(err, ErrConnection))

		var storeErr *StoreError
		assert.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &storeErr)
		assert.Equal(t, "user", storeErr.Entity)
	})
}
