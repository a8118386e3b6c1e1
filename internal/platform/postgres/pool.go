package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/onboard-api/internal/config"
	"github.com/phrazzld/onboard-api/internal/store"
)

// OpenPool opens a pgx connection pool sized by cfg and returns it as a
// store.Pool. The database must answer a ping within the configured connect
// timeout. Closing the returned pool closes the pgx pool too.
func OpenPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*store.Pool, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pgPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create pgx pool: %w", store.ErrConnection, err)
	}

	db := stdlib.OpenDBFromPool(pgPool)
	pool := store.NewPool(db, store.PoolOptions{
		DriverName: "pgx",
		MaxConns:   cfg.MaxConns,
		OnClose:    pgPool.Close,
	}, logger)

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ConnectTimeoutSeconds)*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	logger.Info("database connection pool established",
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("database", cfg.Name),
		slog.Int("min_conns", cfg.MinConns),
		slog.Int("max_conns", cfg.MaxConns))
	return pool, nil
}
