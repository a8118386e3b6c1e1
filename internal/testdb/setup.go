//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
	"github.com/phrazzld/onboard-api/internal/redact"
	"github.com/phrazzld/onboard-api/internal/store"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the name of the table used by goose to track migrations.
const MigrationTableName = "schema_migrations"

// TestTimeout bounds every setup call made against the test database.
const TestTimeout = 10 * time.Second

// TestMaxConns is the connection limit of pools returned by GetTestPool.
const TestMaxConns = 5

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestPool opens a store.Pool on the test database, applies the schema and
// registers cleanup. The test is skipped when no database URL is configured.
func GetTestPool(t *testing.T) *store.Pool {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL or ONBOARD_TEST_DB_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		t.Fatalf("invalid test database URL %s: %v", redact.String(dbURL), err)
	}
	poolCfg.MaxConns = TestMaxConns

	pgPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		t.Fatalf("failed to create pgx pool: %v", redact.Error(err))
	}

	db := stdlib.OpenDBFromPool(pgPool)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		pgPool.Close()
		t.Fatalf("database connection failed: %v (CI: %v)", redact.Error(err), isCIEnvironment())
	}

	SetupTestDatabaseSchema(t, db)

	_, log := logger.NewTestLogger(t)
	pool := store.NewPool(db, store.PoolOptions{MaxConns: TestMaxConns, OnClose: pgPool.Close}, log)
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Logf("Warning: failed to close test pool: %v", err)
		}
	})

	return pool
}

// SetupTestDatabaseSchema applies the embedded migrations once per test process.
func SetupTestDatabaseSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	migrateOnce.Do(func() {
		goose.SetLogger(goose.NopLogger())
		goose.SetTableName(MigrationTableName)
		goose.SetBaseFS(migrationsFS)
		if err := goose.SetDialect("postgres"); err != nil {
			migrateErr = err
			return
		}
		migrateErr = goose.Up(db, "migrations")
	})

	if migrateErr != nil {
		t.Fatalf("Migration failed: %v", migrateErr)
	}
}

// ResetTables removes every row from the application tables and restarts
// their id sequences. Tests calling it must not run in parallel.
func ResetTables(t *testing.T, pool *store.Pool) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	if _, err := pool.DB().ExecContext(ctx, "TRUNCATE questionnaire, users RESTART IDENTITY"); err != nil {
		t.Fatalf("failed to reset tables: %v", fmt.Errorf("truncate: %w", err))
	}
}
