// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/splits/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to manage your workout templates and
log sessions through a standardized protocol. The server communicates via
stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "splits": {
        "command": "splits",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  create_workout        Create a workout template
  list_workouts         List workout templates
  get_workout           Get a template with exercises and sets
  rename_workout        Rename a workout
  delete_workout        Delete a workout and its history
  save_template         Replace a template's exercises and sets
  log_strength_session  Record a strength session
  log_cardio_session    Record a cardio session
  get_workout_stats     Per-exercise history and averages

AVAILABLE RESOURCES:

  splits://workouts     All templates with exercises
  splits://recent       The 10 most recent sessions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
