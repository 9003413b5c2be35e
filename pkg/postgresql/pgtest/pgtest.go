// Package pgtest starts disposable PostgreSQL containers for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/migration"
	"github.com/muhammadchandra19/stock-sentinel/pkg/postgresql"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Config holds configuration for the test container
type Config struct {
	Image          string
	Database       string
	Username       string
	Password       string
	StartupTimeout time.Duration

	// Migrations, when set, are applied right after the container is ready.
	Migrations   fs.FS
	MigrationDir string
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Image:          "postgres:15-alpine",
		Database:       "test_db",
		Username:       "test_user",
		Password:       "test_pass",
		StartupTimeout: 2 * time.Minute,
		MigrationDir:   ".",
	}
}

// Helper owns one container and a pooled client connected to it.
type Helper struct {
	Container *postgres.PostgresContainer
	Client    *postgresql.Client
	ConnStr   string
	t         *testing.T
}

// New starts a container and registers cleanup with t. Skipped under -short.
func New(t *testing.T, config *Config) *Helper {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	if config == nil {
		config = DefaultConfig()
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, config.Image,
		postgres.WithDatabase(config.Database),
		postgres.WithUsername(config.Username),
		postgres.WithPassword(config.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(config.StartupTimeout),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate test container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	client, err := postgresql.NewClientFromConnString(ctx, connStr, postgresql.Config{
		Database: config.Database,
		MaxConns: 32,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	h := &Helper{
		Container: container,
		Client:    client,
		ConnStr:   connStr,
		t:         t,
	}

	if config.Migrations != nil {
		runner := migration.NewRunner(client, logger.NewNop(), config.Migrations, migration.Config{Dir: config.MigrationDir})
		_, err := runner.Up(ctx, 0)
		require.NoError(t, err, "failed to run migrations")
	}

	return h
}

// GetClient returns the PostgreSQL client
func (h *Helper) GetClient() postgresql.PostgreSQLClient {
	return h.Client
}

// CleanupTables truncates the given tables and resets their sequences.
func (h *Helper) CleanupTables(tables ...string) {
	h.t.Helper()
	if len(tables) == 0 {
		return
	}

	_, err := h.Client.Exec(context.Background(),
		fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", ")))
	require.NoError(h.t, err)
}

// ExecuteSQL executes SQL and fails test on error
func (h *Helper) ExecuteSQL(sql string, args ...any) {
	h.t.Helper()
	_, err := h.Client.Exec(context.Background(), sql, args...)
	require.NoError(h.t, err)
}
