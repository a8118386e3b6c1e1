package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/onboard-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create validates and saves a new user, hashing the plaintext password.
	// Returns the generated user ID.
	// Returns ErrInvalidEmail, ErrWeakPassword, ErrInvalidAge or
	// ErrInvalidGender before any write if the input is invalid.
	// Returns ErrEmailExists if the email is already taken, whether detected
	// by the advisory check or by the database constraint.
	Create(ctx context.Context, user domain.NewUser) (int64, error)

	// GetByID retrieves a user by their ID, including the password hash.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Update changes a user's email and/or password.
	// Returns ErrNoFieldToUpdate if the update carries no field.
	// Returns ErrInvalidEmail or ErrWeakPassword for invalid values.
	// Returns ErrEmailExists if the new email belongs to another user.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.UpdatedUser, error)

	// Delete removes a user and every questionnaire they own in one
	// transaction. Returns ErrUserNotFound, with nothing deleted, if the
	// user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore that runs every statement on the provided
	// transaction instead of opening its own scope. The caller owns the
	// transaction and decides whether it commits.
	WithTx(tx *sqlx.Tx) UserStore
}
