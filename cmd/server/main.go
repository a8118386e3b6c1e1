// Package main implements the entry point for the onboarding API server,
// which stores users and their onboarding questionnaires in PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/onboard-api/internal/config"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("server error: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging, connects to the database and
// serves HTTP until ctx is cancelled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(logger.LoggerConfig{
		Level:       cfg.Server.LogLevel,
		SentryDSN:   cfg.Observability.SentryDSN,
		Environment: cfg.Observability.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("db_host", cfg.Database.Host),
		slog.Int("db_max_conns", cfg.Database.MaxConns))

	pool, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	app := newApplication(cfg, l, pool)
	return app.Run(ctx)
}
