package sqlstore

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/config"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

// MigrationCommands lists the commands accepted by Migrate.
var MigrationCommands = []string{"up", "down", "reset", "status", "version"}

// slogGooseLogger routes goose output through slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level and does not exit; goose's provider reports
// failures through returned errors.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// MigrationsFS returns the embedded migrations for driver.
func MigrationsFS(driver string) (fs.FS, goose.Dialect, error) {
	switch driver {
	case config.DriverPostgres:
		sub, err := fs.Sub(migrationFiles, "migrations/postgres")
		return sub, goose.DialectPostgres, err
	case config.DriverSQLite:
		sub, err := fs.Sub(migrationFiles, "migrations/sqlite")
		return sub, goose.DialectSQLite3, err
	}
	return nil, "", fmt.Errorf("unsupported database driver %q", driver)
}

func newProvider(db *sqlx.DB, logger *slog.Logger) (*goose.Provider, error) {
	fsys, dialect, err := MigrationsFS(db.DriverName())
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, db.DB, fsys,
		goose.WithLogger(&slogGooseLogger{logger: logger}),
		goose.WithVerbose(true),
	)
}

// MigrateUp applies all pending migrations.
func MigrateUp(ctx context.Context, db *sqlx.DB, logger *slog.Logger) error {
	return Migrate(ctx, db, "up", logger)
}

// Migrate runs one of MigrationCommands against db using the migrations
// embedded for db's driver.
func Migrate(ctx context.Context, db *sqlx.DB, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "migrations"), slog.String("command", command))

	provider, err := newProvider(db, log)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		logResults(log, results)
		if err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
	case "down":
		result, err := provider.Down(ctx)
		if result != nil {
			logResults(log, []*goose.MigrationResult{result})
		}
		if err != nil && !errors.Is(err, goose.ErrNoNextVersion) {
			return fmt.Errorf("migration down failed: %w", err)
		}
	case "reset":
		results, err := provider.DownTo(ctx, 0)
		logResults(log, results)
		if err != nil {
			return fmt.Errorf("migration reset failed: %w", err)
		}
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("migration status failed: %w", err)
		}
		for _, st := range statuses {
			log.Info("migration",
				slog.Int64("version", st.Source.Version),
				slog.String("state", string(st.State)),
				slog.Time("applied_at", st.AppliedAt))
		}
	case "version":
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("migration version failed: %w", err)
		}
		log.Info("current database version", slog.Int64("version", version))
	default:
		return fmt.Errorf("unknown migration command: %s (expected one of %v)", command, MigrationCommands)
	}

	return nil
}

func logResults(log *slog.Logger, results []*goose.MigrationResult) {
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Error != nil {
			log.Error("migration failed",
				slog.String("result", r.String()),
				slog.String("error", r.Error.Error()))
			continue
		}
		log.Info("migration applied", slog.String("result", r.String()))
	}
}
