package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/onboard-api/internal/store"
)

// scope decides where a repository runs its statements: on a caller-owned
// transaction when tx is set, otherwise in a transaction scope of its own on
// the pool.
type scope struct {
	pool *store.Pool
	tx   *sqlx.Tx
}

// withConn acquires one connection for a multi-scope operation and releases it
// when fn returns. Bound to a caller transaction, it passes a nil connection.
func (s scope) withConn(ctx context.Context, fn func(ctx context.Context, conn *store.Conn) error) error {
	if s.tx != nil {
		return fn(ctx, nil)
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Release(conn)

	return fn(ctx, conn)
}

// run executes fn on the caller transaction, or in a new transaction scope on
// conn (or a freshly acquired connection when conn is nil). commit is ignored
// for caller transactions, whose owner decides the outcome.
func (s scope) run(
	ctx context.Context,
	conn *store.Conn,
	commit bool,
	fn func(ctx context.Context, q store.DBTX) error,
) error {
	if s.tx != nil {
		return fn(ctx, s.tx)
	}

	return store.RunInTransaction(ctx, s.pool, store.ScopeOptions{Conn: conn, Commit: commit},
		func(ctx context.Context, tx *sqlx.Tx) error {
			return fn(ctx, tx)
		})
}
