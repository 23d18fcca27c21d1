// ABOUTME: CLI commands for viewing and editing splits configuration.
// ABOUTME: Manages data directory and display-unit preferences.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/splits/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit configuration",
	Long: `View and edit splits configuration.

KEYS:

  data_dir       Directory holding splits.db (default ~/.local/share/splits)
  weight_unit    Display unit for weights: kg or lb
  distance_unit  Display unit for distances: km or mi

Units left unset follow your locale: US, Liberia, and Myanmar get lb/mi,
everyone else kg/km. Stored data is always metric; changing a display
unit never rewrites the database.

EXAMPLES:

  splits config                       # Show effective configuration
  splits config set weight_unit lb
  splits config set data_dir ~/Dropbox/splits`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Printf("Config file: %s\n", config.GetConfigPath())
		fmt.Printf("data_dir: %s\n", c.GetDataDir())
		fmt.Printf("weight_unit: %s\n", c.GetWeightUnit())
		fmt.Printf("distance_unit: %s\n", c.GetDistanceUnit())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		switch args[0] {
		case "data_dir":
			c.DataDir = args[1]
		case "weight_unit":
			c.WeightUnit = args[1]
		case "distance_unit":
			c.DistanceUnit = args[1]
		default:
			return fmt.Errorf("unknown config key: %s", args[0])
		}

		if err := c.Save(); err != nil {
			return err
		}

		color.Green("✓ Set %s = %s", args[0], args[1])
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Clear a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		switch args[0] {
		case "data_dir":
			c.DataDir = ""
		case "weight_unit":
			c.WeightUnit = ""
		case "distance_unit":
			c.DistanceUnit = ""
		default:
			return fmt.Errorf("unknown config key: %s", args[0])
		}

		if err := c.Save(); err != nil {
			return err
		}

		color.Green("✓ Cleared %s", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}
