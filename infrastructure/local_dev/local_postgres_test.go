package local_dev

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/phrazzld/onboard-api/internal/config"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
	"github.com/phrazzld/onboard-api/internal/platform/postgres"
	"github.com/phrazzld/onboard-api/internal/store"
	"github.com/stretchr/testify/require"
)

// localDatabase matches the service defined in docker-compose.yml.
var localDatabase = config.DatabaseConfig{
	Host:                  "127.0.0.1",
	Port:                  5432,
	Name:                  "user_data",
	Username:              "onboard",
	Password:              "local_development_password",
	SSLMode:               "disable",
	MinConns:              1,
	MaxConns:              5,
	ConnectTimeoutSeconds: 2,
}

// TestLocalPostgresSetup verifies that the Docker-based local PostgreSQL
// accepts connections from the application pool.
func TestLocalPostgresSetup(t *testing.T) {
	if os.Getenv("DOCKER_TEST") != "1" {
		t.Skip("Skipping Docker-based PostgreSQL test. Set DOCKER_TEST=1 to run")
	}

	compose(t, "down", "-v")
	if out, err := exec.Command("docker", "compose", "up", "-d").CombinedOutput(); err != nil {
		t.Fatalf("Failed to start container: %v\nOutput: %s", err, out)
	}
	t.Cleanup(func() { compose(t, "down", "-v") })

	_, log := logger.NewTestLogger(t)
	pool := waitForPool(t, log)
	defer func() { _ = pool.Close() }()

	var version int
	err := pool.DB().GetContext(context.Background(), &version,
		"SELECT current_setting('server_version_num')::int")
	require.NoError(t, err)
	require.GreaterOrEqual(t, version, 120000, "schema needs PostgreSQL 12 or newer")
}

// waitForPool retries OpenPool until the container accepts connections.
func waitForPool(t *testing.T, log *slog.Logger) *store.Pool {
	t.Helper()

	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := postgres.OpenPool(context.Background(), localDatabase, log)
		if err == nil {
			return pool
		}
		if time.Now().After(deadline) {
			t.Fatalf("PostgreSQL did not become ready: %v", err)
		}
		time.Sleep(time.Second)
	}
}

func compose(t *testing.T, args ...string) {
	t.Helper()
	cmd := exec.Command("docker", append([]string{"compose"}, args...)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Logf("Warning: docker compose %v: %v\nOutput: %s", args, err, out)
	}
}
