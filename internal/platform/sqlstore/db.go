package sqlstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/config"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

func init() {
	// sqlx only knows the cgo driver name "sqlite3".
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// Open connects to the database described by cfg, applies pool settings
// and verifies the connection with a ping.
//
// For SQLite the DSN is extended with foreign key enforcement, a busy
// timeout and a parseable timestamp format. In-memory databases are pinned
// to a single connection because every new connection would see an empty
// database.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sqlx.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := cfg.URL
	if cfg.Driver == config.DriverSQLite {
		dsn = SQLiteDSN(cfg.URL)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite && isSQLiteMemory(cfg.URL) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime())
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		slog.String("driver", cfg.Driver),
		slog.String("url", MaskDatabaseURL(cfg.URL)))

	return db, nil
}

// SQLiteDSN adds the connection parameters the stores rely on to a SQLite
// path or file: URI, keeping any parameters the caller already set.
func SQLiteDSN(raw string) string {
	path, query, _ := strings.Cut(raw, "?")
	params, err := url.ParseQuery(query)
	if err != nil {
		params = url.Values{}
	}

	pragmas := map[string]string{
		"foreign_keys": "foreign_keys(1)",
		"busy_timeout": "busy_timeout(5000)",
	}
	if !isSQLiteMemory(raw) {
		pragmas["journal_mode"] = "journal_mode(WAL)"
	}
	for name, pragma := range pragmas {
		if !hasPragma(params["_pragma"], name) {
			params.Add("_pragma", pragma)
		}
	}
	if params.Get("_time_format") == "" {
		params.Set("_time_format", "sqlite")
	}

	return path + "?" + params.Encode()
}

func hasPragma(pragmas []string, name string) bool {
	for _, p := range pragmas {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(p)), name) {
			return true
		}
	}
	return false
}

func isSQLiteMemory(raw string) bool {
	return strings.Contains(raw, ":memory:") || strings.Contains(raw, "mode=memory")
}

// MaskDatabaseURL hides the password of a database URL for logging.
// Strings that do not parse as URLs with credentials are returned unchanged.
func MaskDatabaseURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		if strings.Contains(dbURL, "@") {
			return "invalid-url"
		}
		return dbURL
	}

	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "****")
			return parsed.String()
		}
	}

	return dbURL
}
