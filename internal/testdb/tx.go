//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/onboard-api/internal/store"
)

// WithTx runs fn inside a transaction that is always rolled back, so the
// test leaves no rows behind. Panics roll back and re-panic.
func WithTx(t *testing.T, pool *store.Pool, fn func(t *testing.T, tx *sqlx.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	err := store.RunInTransaction(ctx, pool, store.ScopeOptions{Commit: false},
		func(ctx context.Context, tx *sqlx.Tx) error {
			fn(t, tx)
			return nil
		})
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		t.Fatalf("test transaction failed: %v", err)
	}
}
