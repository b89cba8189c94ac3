// Package main implements the todolist-api command: the HTTP server, the
// MCP tool server and the database maintenance commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "todolist-api",
	Short:         "Task tracking API with optimistic concurrency",
	Long:          `Serves users, categories and tasks over HTTP or as MCP tools. Task updates carry a version token and are rejected when the token is stale.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a config file (default: ./config.yaml when present)")

	rootCmd.AddCommand(serveCmd, mcpCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
