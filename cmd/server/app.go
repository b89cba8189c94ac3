package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/todolist-api/internal/config"
	"github.com/phrazzld/todolist-api/internal/events"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/platform/sqlstore"
	"github.com/phrazzld/todolist-api/internal/service"
	"github.com/phrazzld/todolist-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	userStore     store.UserStore
	categoryStore store.CategoryStore
	taskStore     store.TaskStore

	userService     service.UserService
	categoryService service.CategoryService
	taskService     service.TaskService

	eventEmitter events.EventEmitter
}

// loadConfig loads configuration and sets up the JSON logger on w.
func loadConfig(w io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.SetupWithWriter(cfg.Server, w)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"database_url", sqlstore.MaskDatabaseURL(cfg.Database.URL))
	return cfg, log, nil
}

// openDatabase connects to the configured database and applies pending
// migrations.
func openDatabase(ctx context.Context, cfg *config.Config, log *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlstore.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := sqlstore.MigrateUp(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// newApplication wires stores, services and the event emitter over db.
func newApplication(cfg *config.Config, log *slog.Logger, db *sqlx.DB) *application {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	app.userStore = sqlstore.NewUserStore(db, log)
	app.categoryStore = sqlstore.NewCategoryStore(db, log)
	app.taskStore = sqlstore.NewTaskStore(db, log)

	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(events.NewAuditLogHandler(log))
	app.eventEmitter = emitter

	app.userService = service.NewUserService(app.userStore, log)
	app.categoryService = service.NewCategoryService(app.categoryStore, log)
	app.taskService = service.NewTaskService(
		app.taskStore,
		app.userStore,
		app.categoryStore,
		app.eventEmitter,
		cfg.Tasks.DefaultCreatorID,
		log,
	)

	return app
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
