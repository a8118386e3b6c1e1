package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/onboard-api/internal/auth"
	"github.com/phrazzld/onboard-api/internal/domain"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
	"github.com/phrazzld/onboard-api/internal/store"
	"github.com/phrazzld/onboard-api/internal/validation"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	scope  scope
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// The pool is owned by the caller. If logger is nil, a default logger will be used.
func NewPostgresUserStore(pool *store.Pool, hasher auth.PasswordHasher, logger *slog.Logger) *PostgresUserStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		scope:  scope{pool: pool},
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sqlx.Tx) store.UserStore {
	return &PostgresUserStore{
		scope:  scope{pool: s.scope.pool, tx: tx},
		hasher: s.hasher,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create
// Checks run in order: required fields, email format, email uniqueness, age,
// gender, password length. Complexity is only enforced on update. The uniqueness check and the insert share one
// connection.
func (s *PostgresUserStore) Create(ctx context.Context, user domain.NewUser) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(user.FirstName) == "" || strings.TrimSpace(user.LastName) == "" {
		log.Warn("user validation failed during create", slog.String("reason", "missing name"))
		return 0, fmt.Errorf("%w: first_name and last_name are required", store.ErrMissingField)
	}
	if !validation.ValidateEmailFormat(user.Email) {
		log.Warn("user validation failed during create", slog.String("reason", "invalid email"))
		return 0, store.ErrInvalidEmail
	}

	var id int64
	err := s.scope.withConn(ctx, func(ctx context.Context, conn *store.Conn) error {
		var unique bool
		err := s.scope.run(ctx, conn, false, func(ctx context.Context, q store.DBTX) error {
			var err error
			unique, err = validation.IsEmailUnique(ctx, q, user.Email)
			return err
		})
		if err != nil {
			log.Error("failed to check email uniqueness", slog.String("error", err.Error()))
			return storeError("user", "create", err)
		}
		if !unique {
			log.Warn("user validation failed during create", slog.String("reason", "email exists"))
			return store.ErrEmailExists
		}

		if err := s.validateAttributes(user); err != nil {
			log.Warn("user validation failed during create", slog.String("error", err.Error()))
			return err
		}

		hash, err := s.hasher.Hash(user.Password)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", err.Error()))
			return fmt.Errorf("%w: %w", store.ErrInternal, err)
		}

		query := `
			INSERT INTO users (first_name, last_name, email, password, age, gender)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING user_id
		`
		return s.scope.run(ctx, conn, true, func(ctx context.Context, q store.DBTX) error {
			err := q.GetContext(ctx, &id, query,
				user.FirstName, user.LastName, user.Email, hash, user.Age, user.Gender)
			if err == nil {
				return nil
			}
			if IsUniqueViolation(err) {
				log.Warn("email uniqueness constraint violated during create")
				return fmt.Errorf("%w: %w", store.ErrEmailExists, err)
			}
			log.Error("failed to insert user", slog.String("error", err.Error()))
			return storeError("user", "create", err)
		})
	})
	if err != nil {
		return 0, err
	}

	log.Info("user created successfully", slog.Int64("user_id", id))
	return id, nil
}

func (s *PostgresUserStore) validateAttributes(user domain.NewUser) error {
	if err := validation.ValidateAge(user.Age); err != nil {
		return err
	}
	if err := validation.ValidateGender(user.Gender); err != nil {
		return err
	}
	if !validation.ValidatePasswordLength(user.Password) {
		return store.ErrPasswordTooLong
	}
	return nil
}

// GetByID implements store.UserStore.GetByID
// The returned user carries the password hash.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving user by ID", slog.Int64("user_id", id))

	query := `
		SELECT user_id, first_name, last_name, email, password, age, gender
		FROM users
		WHERE user_id = $1
	`

	var user domain.User
	err := s.scope.run(ctx, nil, false, func(ctx context.Context, q store.DBTX) error {
		return q.GetContext(ctx, &user, query, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, storeError("user", "get", err)
	}

	log.Debug("user retrieved successfully", slog.Int64("user_id", id))
	return &user, nil
}

// Update implements store.UserStore.Update
// Empty strings count as absent fields.
func (s *PostgresUserStore) Update(
	ctx context.Context,
	id int64,
	update domain.UserUpdate,
) (*domain.UpdatedUser, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsEmpty() {
		log.Warn("user update rejected", slog.String("reason", "no field to update"))
		return nil, store.ErrNoFieldToUpdate
	}

	var (
		sets []string
		args []any
	)

	if update.Email != nil && *update.Email != "" {
		if !validation.ValidateEmailFormat(*update.Email) {
			log.Warn("user update rejected", slog.String("reason", "invalid email"))
			return nil, store.ErrInvalidEmail
		}
		args = append(args, *update.Email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}

	if update.Password != nil && *update.Password != "" {
		if !validation.ValidatePasswordComplexity(*update.Password) {
			log.Warn("user update rejected", slog.String("reason", "weak password"))
			return nil, store.ErrWeakPassword
		}
		if !validation.ValidatePasswordLength(*update.Password) {
			log.Warn("user update rejected", slog.String("reason", "password too long"))
			return nil, store.ErrPasswordTooLong
		}
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %w", store.ErrInternal, err)
		}
		args = append(args, hash)
		sets = append(sets, fmt.Sprintf("password = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE user_id = $%d RETURNING user_id, email",
		strings.Join(sets, ", "),
		len(args),
	)

	var updated domain.UpdatedUser
	err := s.scope.run(ctx, nil, true, func(ctx context.Context, q store.DBTX) error {
		return q.GetContext(ctx, &updated, query, args...)
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			log.Debug("user not found for update", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		case IsUniqueViolation(err):
			log.Warn("email uniqueness constraint violated during update",
				slog.Int64("user_id", id))
			return nil, fmt.Errorf("%w: %w", store.ErrEmailExists, err)
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, storeError("user", "update", err)
	}

	log.Info("user updated successfully",
		slog.Int64("user_id", id),
		slog.Int("fields", len(sets)))
	return &updated, nil
}

// Delete implements store.UserStore.Delete
// Questionnaires go first because questionnaire.user_id has no ON DELETE
// CASCADE. A missing user rolls the whole scope back.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var questionnaires int64
	err := s.scope.run(ctx, nil, true, func(ctx context.Context, q store.DBTX) error {
		var err error
		questionnaires, err = deleteQuestionnairesByUser(ctx, q, id)
		if err != nil {
			return err
		}

		result, err := q.ExecContext(ctx, "DELETE FROM users WHERE user_id = $1", id)
		if err != nil {
			return err
		}
		_, err = CheckRowsAffected(result, store.ErrUserNotFound)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found for deletion", slog.Int64("user_id", id))
			return store.ErrUserNotFound
		}
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return storeError("user", "delete", err)
	}

	log.Info("user deleted successfully",
		slog.Int64("user_id", id),
		slog.Int64("questionnaires_deleted", questionnaires))
	return nil
}
