package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/onboard-api/internal/domain"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
	"github.com/phrazzld/onboard-api/internal/store"
)

// PostgresQuestionnaireStore implements the store.QuestionnaireStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuestionnaireStore struct {
	scope  scope
	logger *slog.Logger
}

// NewPostgresQuestionnaireStore creates a new PostgreSQL implementation of the
// QuestionnaireStore interface. If logger is nil, a default logger will be used.
func NewPostgresQuestionnaireStore(pool *store.Pool, logger *slog.Logger) *PostgresQuestionnaireStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestionnaireStore{
		scope:  scope{pool: pool},
		logger: logger.With(slog.String("component", "questionnaire_store")),
	}
}

// Ensure PostgresQuestionnaireStore implements store.QuestionnaireStore interface
var _ store.QuestionnaireStore = (*PostgresQuestionnaireStore)(nil)

// WithTx implements store.QuestionnaireStore.WithTx
func (s *PostgresQuestionnaireStore) WithTx(tx *sqlx.Tx) store.QuestionnaireStore {
	return &PostgresQuestionnaireStore{
		scope:  scope{pool: s.scope.pool, tx: tx},
		logger: s.logger,
	}
}

// Create implements store.QuestionnaireStore.Create
// User existence is left to the questionnaire_user_id_fkey constraint.
func (s *PostgresQuestionnaireStore) Create(ctx context.Context, q domain.NewQuestionnaire) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if q.UserID <= 0 {
		log.Warn("questionnaire validation failed during create",
			slog.Int64("user_id", q.UserID))
		return 0, store.ErrInvalidID
	}

	query := `
		INSERT INTO questionnaire (user_id, description, goals, challenges, expectations, completed)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`

	var id int64
	err := s.scope.run(ctx, nil, true, func(ctx context.Context, db store.DBTX) error {
		return db.GetContext(ctx, &id, query,
			q.UserID, q.Description, q.Goals, q.Challenges, q.Expectations)
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during questionnaire creation",
				slog.Int64("user_id", q.UserID))
			return 0, fmt.Errorf("%w: %w", store.ErrUserDoesNotExist, err)
		}
		log.Error("failed to create questionnaire",
			slog.String("error", err.Error()),
			slog.Int64("user_id", q.UserID))
		return 0, storeError("questionnaire", "create", err)
	}

	log.Info("questionnaire created successfully",
		slog.Int64("questionnaire_id", id),
		slog.Int64("user_id", q.UserID))
	return id, nil
}

// GetByUserID implements store.QuestionnaireStore.GetByUserID
// When a user has several questionnaires, the newest one wins.
func (s *PostgresQuestionnaireStore) GetByUserID(
	ctx context.Context,
	userID int64,
) (*domain.Questionnaire, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving questionnaire by user ID", slog.Int64("user_id", userID))

	query := `
		SELECT id, user_id, description, goals, challenges, expectations, completed, created_at
		FROM questionnaire
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var questionnaire domain.Questionnaire
	err := s.scope.run(ctx, nil, false, func(ctx context.Context, db store.DBTX) error {
		return db.GetContext(ctx, &questionnaire, query, userID)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("questionnaire not found", slog.Int64("user_id", userID))
			return nil, store.ErrQuestionnaireNotFound
		}
		log.Error("failed to get questionnaire",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, storeError("questionnaire", "get", err)
	}

	log.Debug("questionnaire retrieved successfully",
		slog.Int64("user_id", userID),
		slog.Int64("questionnaire_id", questionnaire.ID))
	return &questionnaire, nil
}

// DeleteByUserID implements store.QuestionnaireStore.DeleteByUserID
func (s *PostgresQuestionnaireStore) DeleteByUserID(ctx context.Context, userID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted int64
	err := s.scope.run(ctx, nil, true, func(ctx context.Context, db store.DBTX) error {
		var err error
		deleted, err = deleteQuestionnairesByUser(ctx, db, userID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return store.ErrQuestionnaireNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrQuestionnaireNotFound) {
			log.Debug("questionnaire not found for deletion", slog.Int64("user_id", userID))
			return store.ErrQuestionnaireNotFound
		}
		log.Error("failed to delete questionnaire",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return storeError("questionnaire", "delete", err)
	}

	log.Info("questionnaires deleted successfully",
		slog.Int64("user_id", userID),
		slog.Int64("count", deleted))
	return nil
}

// deleteQuestionnairesByUser removes every questionnaire owned by userID and
// returns how many rows went.
func deleteQuestionnairesByUser(ctx context.Context, db store.DBTX, userID int64) (int64, error) {
	result, err := db.ExecContext(ctx, "DELETE FROM questionnaire WHERE user_id = $1", userID)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
