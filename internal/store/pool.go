package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
)

// PoolOptions configures a Pool built over an existing *sql.DB.
type PoolOptions struct {
	// DriverName selects the sqlx bind style. Defaults to "pgx".
	DriverName string
	// MaxConns bounds the number of connections in use at once.
	// Values below 1 leave the *sql.DB limit untouched.
	MaxConns int
	// OnClose runs after the *sql.DB is closed, e.g. to close a driver-level pool.
	OnClose func()
}

// Pool is a bounded pool of live database connections.
// It is safe for concurrent use. Callers beyond MaxConns block in Acquire
// until a connection is released or their context ends.
type Pool struct {
	db       *sqlx.DB
	maxConns int
	onClose  func()
	logger   *slog.Logger
}

// Conn is a connection handle obtained from Pool.Acquire.
// It must be handed back with Pool.Release exactly once.
type Conn struct {
	conn     *sqlx.Conn
	released atomic.Bool
}

// NewPool wraps db as a Pool.
// If logger is nil, a default logger will be used.
func NewPool(db *sql.DB, opts PoolOptions, logger *slog.Logger) *Pool {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	driverName := opts.DriverName
	if driverName == "" {
		driverName = "pgx"
	}
	if opts.MaxConns > 0 {
		db.SetMaxOpenConns(opts.MaxConns)
	}

	return &Pool{
		db:       sqlx.NewDb(db, driverName),
		maxConns: opts.MaxConns,
		onClose:  opts.OnClose,
		logger:   logger.With(slog.String("component", "connection_pool")),
	}
}

// Acquire returns a connection from the pool, blocking until one is free.
// It fails with ErrConnection when the pool cannot produce a connection or
// ctx ends while waiting.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	c, err := p.db.Connx(ctx)
	if err != nil {
		log.Error("failed to acquire connection",
			slog.String("error", err.Error()),
			slog.Int("max_conns", p.maxConns))
		return nil, fmt.Errorf("%w: acquire: %w", ErrConnection, err)
	}

	return &Conn{conn: c}, nil
}

// Release returns c to the pool. It must be called exactly once per
// successful Acquire, including after failed use; further calls are no-ops.
func (p *Pool) Release(c *Conn) {
	if c == nil {
		return
	}
	if !c.released.CompareAndSwap(false, true) {
		p.logger.Warn("connection released more than once")
		return
	}
	if err := c.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		p.logger.Warn("failed to return connection to pool",
			slog.String("error", err.Error()))
	}
}

// Ping verifies that the database is reachable.
func (p *Pool) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrConnection, err)
	}
	return nil
}

// Stats returns the current pool statistics.
func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

// MaxConns returns the configured connection limit, or 0 if unbounded.
func (p *Pool) MaxConns() int {
	return p.maxConns
}

// DB returns the pool as a query handle for statements that need no
// transaction of their own.
func (p *Pool) DB() DBTX {
	return p.db
}

// Close closes every connection in the pool. Connections still acquired are
// closed as they are released.
func (p *Pool) Close() error {
	err := p.db.Close()
	if p.onClose != nil {
		p.onClose()
	}
	if err != nil {
		return fmt.Errorf("failed to close connection pool: %w", err)
	}
	p.logger.Info("connection pool closed")
	return nil
}
