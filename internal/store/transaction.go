package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
)

// TxFn is a function that executes within a transaction scope.
// The transaction is rolled back if the function returns an error.
type TxFn func(ctx context.Context, tx *sqlx.Tx) error

// ScopeOptions controls how RunInTransaction obtains its connection and how
// it ends a successful transaction.
type ScopeOptions struct {
	// Conn is a caller-owned connection to run on. When nil, a connection is
	// acquired from the pool for the scope and released when it ends. A
	// caller-supplied connection is never released by the scope.
	Conn *Conn

	// Commit commits the transaction when fn succeeds. When false the
	// transaction is rolled back even on success, which suits read-only work.
	Commit bool
}

// scopeState names the terminal state of a transaction scope for logging.
type scopeState string

const (
	scopeCommitted scopeState = "committed"
	scopeAbandoned scopeState = "abandoned"
)

// RunInTransaction executes fn inside an explicit transaction on one
// connection. If fn returns an error or panics, the transaction is rolled
// back. Otherwise it is committed when opts.Commit is set and rolled back
// when it is not. Connections acquired by the scope are released on every
// exit path.
func RunInTransaction(ctx context.Context, pool *Pool, opts ScopeOptions, fn TxFn) error {
	log := logger.FromContext(ctx)

	conn := opts.Conn
	if conn == nil {
		acquired, err := pool.Acquire(ctx)
		if err != nil {
			return err
		}
		defer pool.Release(acquired)
		conn = acquired
	}

	tx, err := conn.conn.BeginTxx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrConnection, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if txErr := tx.Rollback(); txErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", txErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic",
					slog.Any("panic", p))
			}
			// ALLOW-PANIC: Propagating caught panic from transaction
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rollbackErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf(
				"error rolling back transaction: %v (original error: %w)",
				rollbackErr,
				err,
			)
		}
		log.Debug("transaction scope closed",
			slog.String("state", string(scopeAbandoned)),
			slog.String("error", err.Error()))
		return err
	}

	if !opts.Commit {
		if err := tx.Rollback(); err != nil {
			log.Warn("failed to end read-only transaction",
				slog.String("error", err.Error()))
		}
		log.Debug("transaction scope closed",
			slog.String("state", string(scopeAbandoned)))
		return nil
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: failed to commit transaction: %w", ErrInternal, err)
	}

	log.Debug("transaction scope closed",
		slog.String("state", string(scopeCommitted)))
	return nil
}
