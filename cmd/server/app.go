package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/phrazzld/onboard-api/internal/auth"
	"github.com/phrazzld/onboard-api/internal/config"
	"github.com/phrazzld/onboard-api/internal/platform/postgres"
	"github.com/phrazzld/onboard-api/internal/store"
)

// sentryFlushTimeout bounds how long shutdown waits for buffered events.
const sentryFlushTimeout = 2 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	pool   *store.Pool

	userStore          store.UserStore
	questionnaireStore store.QuestionnaireStore
}

// newApplication wires the stores onto an established connection pool.
func newApplication(cfg *config.Config, logger *slog.Logger, pool *store.Pool) *application {
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app := &application{
		config:             cfg,
		logger:             logger,
		pool:               pool,
		userStore:          postgres.NewPostgresUserStore(pool, hasher, logger),
		questionnaireStore: postgres.NewPostgresQuestionnaireStore(pool, logger),
	}

	logger.Info("application initialized",
		slog.Int("bcrypt_cost", hasher.Cost()))
	return app
}

// Run serves HTTP until ctx is cancelled and then releases every resource.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.pool != nil {
		if err := app.pool.Close(); err != nil {
			app.logger.Error("error closing connection pool", slog.String("error", err.Error()))
		}
	}

	if app.config.Observability.SentryDSN != "" {
		sentry.Flush(sentryFlushTimeout)
	}

	app.logger.Info("application shutdown completed")
}
