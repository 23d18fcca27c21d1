// ABOUTME: CLI commands for managing workout templates.
// ABOUTME: Supports add, list, show, rename, and delete subcommands.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/units"
	"github.com/spf13/cobra"
)

var (
	workoutAddKind  string
	workoutListKind string
	workoutLimit    int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workout templates",
	Long: `Manage workout templates.

A workout is either strength (exercises with target sets) or cardio
(sessions with steps, distance, and duration). The kind is fixed at
creation.

COMMANDS:

  add      Create a new workout template
  list     List workout templates
  show     View a template with its exercises and sets
  rename   Rename a workout
  delete   Delete a workout and its entire session history`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new workout",
	Long: `Add a new workout template.

Examples:
  splits workout add "Push Day"
  splits workout add Run --kind cardio`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidWorkoutKind(workoutAddKind) {
			return fmt.Errorf("unknown workout kind: %s (use strength or cardio)", workoutAddKind)
		}

		w := models.NewWorkout(args[0], models.WorkoutKind(workoutAddKind))
		if err := repo.CreateWorkout(w); err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}

		color.Green("✓ Added %s workout %q", w.Kind, w.Name)
		fmt.Printf("  ID: %d\n", w.ID)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind *models.WorkoutKind
		if workoutListKind != "" {
			if !models.IsValidWorkoutKind(workoutListKind) {
				return fmt.Errorf("unknown workout kind: %s", workoutListKind)
			}
			k := models.WorkoutKind(workoutListKind)
			kind = &k
		}

		workouts, err := repo.ListWorkouts(kind, workoutLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			fmt.Printf("%s %s %s %s\n",
				faint.Sprintf("%4d", w.ID),
				faint.Sprint(w.CreatedAt.Format("2006-01-02")),
				padRight(string(w.Kind), 10),
				w.Name)
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <workout>",
	Short: "Show a workout template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Workout: %s\n", w.Name)
		fmt.Printf("Kind: %s\n", w.Kind)
		fmt.Printf("Created: %s\n", w.CreatedAt.Format("2006-01-02 15:04"))

		if w.Kind != models.KindStrength {
			return nil
		}

		_, exercises, err := tr.Template(w.ID)
		if err != nil {
			return fmt.Errorf("failed to load template: %w", err)
		}
		if len(exercises) == 0 {
			fmt.Println("\nNo exercises yet.")
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Println()
		for i, e := range exercises {
			desc := ""
			if e.Description != nil {
				desc = faint.Sprintf(" (%s)", truncate(*e.Description, 40))
			}
			fmt.Printf("%d. %s%s\n", i+1, e.Name, desc)
			for j, s := range e.Sets {
				fmt.Printf("   %d) %.2f %s x %d\n",
					j+1, units.FromKilograms(s.Weight, weightUnit), weightUnit, s.Repetitions)
			}
		}
		return nil
	},
}

var workoutRenameCmd = &cobra.Command{
	Use:   "rename <workout> <new-name>",
	Short: "Rename a workout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		if err := repo.RenameWorkout(w.ID, args[1]); err != nil {
			return fmt.Errorf("failed to rename workout: %w", err)
		}

		color.Green("✓ Renamed %q to %q", w.Name, args[1])
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <workout>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout template.

CAUTION:

  This permanently deletes the workout, its exercises, and every logged
  session. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		sessions, err := repo.ListSessions(w.ID)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if err := repo.DeleteWorkout(w.ID); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Yellow("✗ Deleted %q (%d sessions)", w.Name, len(sessions))
		return nil
	},
}

// resolveWorkout looks a workout up by name first, then by numeric ID.
func resolveWorkout(ref string) (*models.Workout, error) {
	w, err := repo.GetWorkoutByName(ref)
	if err == nil {
		return w, nil
	}

	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		if w, err = repo.GetWorkout(id); err == nil {
			return w, nil
		}
	}
	return nil, fmt.Errorf("workout not found: %s", ref)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	workoutAddCmd.Flags().StringVarP(&workoutAddKind, "kind", "k", "strength", "workout kind (strength or cardio)")

	workoutListCmd.Flags().StringVarP(&workoutListKind, "kind", "k", "", "filter by kind")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutRenameCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
