// Package testutil holds the database and config helpers shared by the
// package tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/migrations"
	"fittrack/src/config"
	"fittrack/src/database"
)

// PostgresDSNEnv names the variable that enables tests against a real
// Postgres server.
const PostgresDSNEnv = "FITTRACK_TEST_POSTGRES_DSN"

// SetupLocalDB returns a fresh migrated in-memory store closed at test end.
func SetupLocalDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.SetupLocalDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open local database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// SetupPostgresDB connects to the server named by FITTRACK_TEST_POSTGRES_DSN,
// applies the remote migrations and truncates the remote tables. The test is
// skipped when the variable is unset.
func SetupPostgresDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}

	cfg := &config.Config{}
	cfg.Databases.SQL.ConnectionString = dsn
	cfg.Databases.SQL.MaxConns = 5

	ctx := context.Background()
	pool, err := database.SetupDB(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v\nPlease ensure the database is running and accessible with the provided credentials.", err)
	}
	t.Cleanup(pool.Close)

	if _, err := migrations.Postgres(ctx, database.StdDB(pool)); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	TruncateTables(t, pool)
	return pool
}

// TruncateTables empties every remote table.
func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	for _, table := range []string{"sync_logs", "sync_changes", "remote_records"} {
		if _, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}
}

// LoadTestConfig loads settings/appsettings.yaml overlaid with the TESTING
// environment.
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	root, err := ServiceRoot()
	if err != nil {
		t.Fatalf("Failed to get service root path: %v", err)
	}
	cfg, err := config.LoadConfig(filepath.Join(root, "settings"), "TESTING")
	if err != nil {
		t.Fatalf("Failed to load test configuration: %v", err)
	}
	return cfg
}

// ServiceRoot walks up from the working directory to the one holding go.mod.
func ServiceRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		wd = parent
	}
}
