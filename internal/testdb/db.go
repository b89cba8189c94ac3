package testdb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/config"
	"github.com/phrazzld/todolist-api/internal/platform/sqlstore"
	"github.com/phrazzld/todolist-api/internal/store"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// GetTestDatabaseURL returns the Postgres URL for integration tests from
// DATABASE_URL, falling back to TODO_TEST_DB_URL.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("TODO_TEST_DB_URL")
}

// quietLogger discards migration chatter.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenSQLite returns a fresh, fully migrated in-memory SQLite database that
// is closed when the test ends.
func OpenSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlstore.Open(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file::memory:",
	}, quietLogger())
	require.NoError(t, err, "Failed to open in-memory SQLite database")
	t.Cleanup(func() { CleanupDB(t, db) })

	require.NoError(t, sqlstore.MigrateUp(ctx, db, quietLogger()), "Failed to run migrations")
	return db
}

// OpenPostgres returns a migrated connection to the integration database.
// The test is skipped when no database URL is configured.
func OpenPostgres(t testing.TB) *sqlx.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL or TODO_TEST_DB_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlstore.Open(ctx, config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		URL:          dbURL,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	}, quietLogger())
	require.NoError(t, err, "Failed to open Postgres database")
	t.Cleanup(func() { CleanupDB(t, db) })

	require.NoError(t, sqlstore.MigrateUp(ctx, db, quietLogger()), "Failed to run migrations")
	return db
}

// CleanupDB closes db, logging any error.
func CleanupDB(t testing.TB, db *sqlx.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}

// ResetPostgres empties every application table so a test starts from a
// known state on the shared integration database.
func ResetPostgres(t testing.TB, db *sqlx.DB) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`TRUNCATE TABLE tasks, categories, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "Failed to reset database")
}

// ForEachBackend runs fn once against a fresh SQLite database and once
// against the emptied Postgres integration database (skipped without a URL).
func ForEachBackend(t *testing.T, fn func(t *testing.T, db store.DBTX)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		fn(t, OpenSQLite(t))
	})

	t.Run("postgres", func(t *testing.T) {
		db := OpenPostgres(t)
		ResetPostgres(t, db)
		t.Cleanup(func() { ResetPostgres(t, db) })
		fn(t, db)
	})
}
