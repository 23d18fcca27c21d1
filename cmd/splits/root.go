// ABOUTME: Root Cobra command for splits CLI.
// ABOUTME: Handles config loading and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/splits/internal/config"
	"github.com/harperreed/splits/internal/storage"
	"github.com/harperreed/splits/internal/tracker"
	"github.com/harperreed/splits/internal/units"
	"github.com/spf13/cobra"
)

var (
	cfg          *config.Config
	repo         storage.Repository
	tr           *tracker.Tracker
	weightUnit   units.WeightUnit
	distanceUnit units.DistanceUnit
)

var rootCmd = &cobra.Command{
	Use:   "splits",
	Short: "Personal workout tracker",
	Long: `Splits is a CLI tool for tracking workout templates and training sessions.

HOW IT WORKS:

  A workout is a reusable template: an ordered list of exercises, each with
  target sets (weight x reps). Logging a session snapshots the sets you
  performed, so later template edits never rewrite your history.

QUICK START:

  $ splits workout add "Push Day"            # Create a strength workout
  $ splits exercise add "Push Day" Bench     # Add an exercise
  $ splits set add "Push Day" Bench 60 5     # Add a 60kg x 5 target set
  $ splits log "Push Day"                    # Log a session (all sets done)
  $ splits stats "Push Day"                  # Per-exercise history and averages

CARDIO:

  $ splits workout add Run --kind cardio
  $ splits log Run --distance 5.2 --minutes 28
  $ splits stats Run

UNITS:

  Weights are stored in kilograms and distances in kilometers. Display and
  input units follow your config (or locale): set them once with

  $ splits config set weight_unit lb
  $ splits config set distance_unit mi

MCP INTEGRATION:

  Run 'splits mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "splits": { "command": "splits", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in a SQLite database at ~/.local/share/splits/splits.db.
  Back it up with 'splits export json -o backup.json'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't touch the database
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		if cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		tr = tracker.New(repo)
		weightUnit = cfg.GetWeightUnit()
		distanceUnit = cfg.GetDistanceUnit()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
