package store

import (
	"context"
	"database/sql"
)

// DBTX is an interface that abstracts the query-execution handle.
// It is implemented by *sqlx.DB, *sqlx.Conn and *sqlx.Tx, allowing
// repositories to run the same statements inside or outside a caller-owned
// transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}
