package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/todolist-api/internal/mcp"
	"github.com/phrazzld/todolist-api/internal/platform/sqlstore"
	"github.com/spf13/cobra"
)

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(os.Stdout)
		if err != nil {
			return err
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		db, err := openDatabase(ctx, cfg, log)
		if err != nil {
			return err
		}
		app := newApplication(cfg, log, db)
		defer app.cleanup()

		return app.startHTTPServer(ctx, app.router())
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the API as MCP tools over stdio",
	Long:  `Serves the task, category and user operations as Model Context Protocol tools on stdin/stdout. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol.
		cfg, log, err := loadConfig(os.Stderr)
		if err != nil {
			return err
		}

		db, err := openDatabase(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		app := newApplication(cfg, log, db)
		defer app.cleanup()

		s := mcp.NewServer(mcp.Services{
			Tasks:      app.taskService,
			Categories: app.categoryService,
			Users:      app.userService,
		}, log)
		return mcp.Serve(s)
	},
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [" + strings.Join(sqlstore.MigrationCommands, "|") + "]",
	Short:     "Run database migrations (default: up)",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: sqlstore.MigrationCommands,
	RunE: func(cmd *cobra.Command, args []string) error {
		command := "up"
		if len(args) == 1 {
			command = args[0]
		}

		cfg, log, err := loadConfig(os.Stdout)
		if err != nil {
			return err
		}

		db, err := sqlstore.Open(cmd.Context(), cfg.Database, log)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := sqlstore.Migrate(cmd.Context(), db, command, log); err != nil {
			return fmt.Errorf("migrate %s: %w", command, err)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default user and starter categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(os.Stdout)
		if err != nil {
			return err
		}

		db, err := openDatabase(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		return seedDatabase(cmd.Context(), db, log)
	},
}
