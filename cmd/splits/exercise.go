// ABOUTME: CLI commands for editing the exercises of a workout template.
// ABOUTME: Supports add, rename, describe, move, and remove subcommands.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/tracker"
	"github.com/spf13/cobra"
)

var exerciseDesc string

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Edit the exercises of a workout template",
	Long: `Edit the exercises of a strength workout template.

Exercises are referenced by 1-based position or by name. Edits only touch
the template; sessions already logged keep the values they were logged
with.

COMMANDS:

  add       Append an exercise
  rename    Rename an exercise
  describe  Set or clear an exercise description
  move      Move an exercise to a new position
  remove    Remove an exercise and its target sets`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <workout> <name>",
	Short: "Add an exercise",
	Long: `Append an exercise to a workout template.

Examples:
  splits exercise add "Push Day" Bench
  splits exercise add "Push Day" Dips --desc "weighted"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		err = editTemplate(w, func(edited []tracker.EditedExercise) ([]tracker.EditedExercise, error) {
			e := tracker.NewEditedExercise(args[1])
			e.Description = exerciseDesc
			return append(edited, e), nil
		})
		if err != nil {
			return err
		}

		color.Green("✓ Added %s to %q", args[1], w.Name)
		return nil
	},
}

var exerciseRenameCmd = &cobra.Command{
	Use:   "rename <workout> <exercise> <new-name>",
	Short: "Rename an exercise",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		err = editTemplate(w, func(edited []tracker.EditedExercise) ([]tracker.EditedExercise, error) {
			i, err := findExercise(edited, args[1])
			if err != nil {
				return nil, err
			}
			edited[i].Name = args[2]
			return edited, nil
		})
		if err != nil {
			return err
		}

		color.Green("✓ Renamed exercise to %s", args[2])
		return nil
	},
}

var exerciseDescribeCmd = &cobra.Command{
	Use:   "describe <workout> <exercise> [description]",
	Short: "Set or clear an exercise description",
	Long: `Set an exercise description; omit the description to clear it.

Examples:
  splits exercise describe "Push Day" Bench "pause at the chest"
  splits exercise describe "Push Day" Bench`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		desc := ""
		if len(args) == 3 {
			desc = args[2]
		}

		err = editTemplate(w, func(edited []tracker.EditedExercise) ([]tracker.EditedExercise, error) {
			i, err := findExercise(edited, args[1])
			if err != nil {
				return nil, err
			}
			edited[i].Description = desc
			return edited, nil
		})
		if err != nil {
			return err
		}

		if desc == "" {
			color.Green("✓ Cleared description")
		} else {
			color.Green("✓ Updated description")
		}
		return nil
	},
}

var exerciseMoveCmd = &cobra.Command{
	Use:     "move <workout> <exercise> <position>",
	Aliases: []string{"mv"},
	Short:   "Move an exercise to a new position",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		pos, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid position: %s", args[2])
		}

		err = editTemplate(w, func(edited []tracker.EditedExercise) ([]tracker.EditedExercise, error) {
			i, err := findExercise(edited, args[1])
			if err != nil {
				return nil, err
			}
			if pos < 1 || pos > len(edited) {
				return nil, fmt.Errorf("position out of range: %d", pos)
			}
			e := edited[i]
			edited = append(edited[:i], edited[i+1:]...)
			edited = append(edited[:pos-1], append([]tracker.EditedExercise{e}, edited[pos-1:]...)...)
			return edited, nil
		})
		if err != nil {
			return err
		}

		color.Green("✓ Moved exercise to position %d", pos)
		return nil
	},
}

var exerciseRemoveCmd = &cobra.Command{
	Use:     "remove <workout> <exercise>",
	Aliases: []string{"rm"},
	Short:   "Remove an exercise",
	Long: `Remove an exercise and its target sets from the template.

Past sessions keep their logged values; only the template and its
per-exercise history series are affected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		var removed string
		err = editTemplate(w, func(edited []tracker.EditedExercise) ([]tracker.EditedExercise, error) {
			i, err := findExercise(edited, args[1])
			if err != nil {
				return nil, err
			}
			removed = edited[i].Name
			return append(edited[:i], edited[i+1:]...), nil
		})
		if err != nil {
			return err
		}

		color.Yellow("✗ Removed %s from %q", removed, w.Name)
		return nil
	},
}

// editTemplate loads the current template in edit form, applies mutate,
// and saves the result back through the reconciler.
func editTemplate(w *models.Workout, mutate func([]tracker.EditedExercise) ([]tracker.EditedExercise, error)) error {
	if w.Kind != models.KindStrength {
		return fmt.Errorf("workout %q is not a strength workout", w.Name)
	}

	_, exercises, err := tr.Template(w.ID)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	edited, err := mutate(tracker.EditedTemplate(exercises, weightUnit))
	if err != nil {
		return err
	}

	if err := tr.SaveTemplate(w.ID, w.Name, edited, weightUnit); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

// findExercise resolves a 1-based position or a case-insensitive name.
func findExercise(edited []tracker.EditedExercise, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(edited) {
			return 0, fmt.Errorf("exercise position out of range: %d", n)
		}
		return n - 1, nil
	}
	for i, e := range edited {
		if strings.EqualFold(e.Name, ref) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("exercise not found: %s", ref)
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseDesc, "desc", "d", "", "exercise description")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseRenameCmd)
	exerciseCmd.AddCommand(exerciseDescribeCmd)
	exerciseCmd.AddCommand(exerciseMoveCmd)
	exerciseCmd.AddCommand(exerciseRemoveCmd)
	rootCmd.AddCommand(exerciseCmd)
}
