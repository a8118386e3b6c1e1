package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/onboard-api/internal/config"
	"github.com/phrazzld/onboard-api/internal/platform/postgres"
	"github.com/phrazzld/onboard-api/internal/store"
)

// setupAppDatabase opens the connection pool described by the configuration.
// The pool is verified with a ping before it is returned.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.Pool, error) {
	pool, err := postgres.OpenPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}
	return pool, nil
}
