package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/onboard-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// connectionExceptionClass prefixes every "Class 08" connection exception code
	connectionExceptionClass = "08"
)

// kinds lists every error kind MapError can return, so already classified
// errors pass through unchanged.
var kinds = []error{
	store.ErrValidation,
	store.ErrConflict,
	store.ErrNotFound,
	store.ErrInvalidReference,
	store.ErrConnection,
	store.ErrInternal,
}

// MapError maps a database error to one of the store error kinds.
// Classification uses only structured driver information (SQLSTATE codes and
// error types), never the human-readable message. The original error stays
// reachable through errors.Is / errors.As.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return err
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolationCode:
			return fmt.Errorf("%w: unique violation (%s): %w", store.ErrConflict, pgErr.ConstraintName, err)
		case pgErr.Code == foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %w",
				store.ErrInvalidReference,
				pgErr.ConstraintName,
				err,
			)
		case pgErr.Code == checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %w",
				store.ErrValidation,
				pgErr.ConstraintName,
				err,
			)
		case pgErr.Code == notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %w",
				store.ErrValidation,
				pgErr.ColumnName,
				err,
			)
		case strings.HasPrefix(pgErr.Code, connectionExceptionClass):
			return fmt.Errorf("%w: %w", store.ErrConnection, err)
		}
		return fmt.Errorf("%w: %w", store.ErrInternal, err)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", store.ErrConnection, err)
	}

	return fmt.Errorf("%w: %w", store.ErrInternal, err)
}

// storeError classifies err with MapError and records the entity and
// operation that failed, so logs and callers see where it came from.
func storeError(entity, operation string, err error) error {
	mapped := MapError(err)
	if mapped == nil {
		return nil
	}

	var se *store.StoreError
	if errors.As(mapped, &se) {
		return mapped
	}

	var kind error = store.ErrInternal
	for _, k := range kinds {
		if errors.Is(mapped, k) {
			kind = k
			break
		}
	}
	return store.NewStoreError(entity, operation, "database operation failed", kind, mapped)
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
// This occurs when an operation would violate referential integrity constraints.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// CheckRowsAffected examines the number of rows affected by a database operation.
// If no rows were affected, it returns notFound.
func CheckRowsAffected(result sql.Result, notFound error) (int64, error) {
	if result == nil {
		return 0, fmt.Errorf("%w: nil result provided to CheckRowsAffected", store.ErrInternal)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, MapError(fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rowsAffected == 0 {
		return 0, notFound
	}

	return rowsAffected, nil
}
