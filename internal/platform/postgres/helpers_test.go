package postgres

import (
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/onboard-api/internal/auth"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
	"github.com/phrazzld/onboard-api/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"user_id", "first_name", "last_name", "email", "password", "age", "gender"}

var questionnaireColumns = []string{
	"id", "user_id", "description", "goals", "challenges", "expectations", "completed", "created_at",
}

// newMockPool returns a pool over a sqlmock database. Expectations are
// checked by each test.
func newMockPool(t *testing.T) (*store.Pool, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, log := logger.NewTestLogger(t)
	return store.NewPool(db, store.PoolOptions{MaxConns: 2}, log), mock
}

func newTestHasher() *auth.BcryptHasher {
	return auth.NewBcryptHasher(bcrypt.MinCost)
}

// bcryptOf matches a query argument that is a bcrypt hash of password.
type bcryptOf string

func (b bcryptOf) Match(v driver.Value) bool {
	hash, ok := v.(string)
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(b)) == nil
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }
