package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/onboard-api/internal/domain"
)

// QuestionnaireStore defines the interface for questionnaire data persistence.
type QuestionnaireStore interface {
	// Create saves a completed questionnaire and returns its ID.
	// Returns ErrUserDoesNotExist if the owning user does not exist.
	Create(ctx context.Context, q domain.NewQuestionnaire) (int64, error)

	// GetByUserID returns the most recently submitted questionnaire of a user.
	// Returns ErrQuestionnaireNotFound if the user has none.
	GetByUserID(ctx context.Context, userID int64) (*domain.Questionnaire, error)

	// DeleteByUserID removes every questionnaire of a user.
	// Returns ErrQuestionnaireNotFound if the user has none.
	DeleteByUserID(ctx context.Context, userID int64) error

	// WithTx returns a QuestionnaireStore bound to a caller-owned transaction.
	WithTx(tx *sqlx.Tx) QuestionnaireStore
}
