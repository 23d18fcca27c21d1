// ABOUTME: CLI commands for editing the target sets of an exercise.
// ABOUTME: Supports add, edit, and remove subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/splits/internal/tracker"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Edit the target sets of an exercise",
	Long: `Edit the target sets of an exercise in a strength template.

Weights are given in your display unit (see 'splits config'). Sets are
referenced by 1-based position within their exercise.

COMMANDS:

  add     Append a target set to an exercise
  edit    Change the weight and reps of a set
  remove  Remove a set`,
}

var setAddCmd = &cobra.Command{
	Use:   "add <workout> <exercise> <weight> <reps>",
	Short: "Add a target set",
	Long: `Append a target set to an exercise.

Examples:
  splits set add "Push Day" Bench 60 5
  splits set add "Push Day" 2 135 8`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		weight, reps, err := parseSetArgs(args[2], args[3])
		if err != nil {
			return err
		}

		err = editTemplate(w, func(edited []tracker.EditedExercise) ([]tracker.EditedExercise, error) {
			i, err := findExercise(edited, args[1])
			if err != nil {
				return nil, err
			}
			edited[i].Sets = append(edited[i].Sets, tracker.NewEditedSet(weight, reps))
			return edited, nil
		})
		if err != nil {
			return err
		}

		color.Green("✓ Added set: %.2f %s x %d", weight, weightUnit, reps)
		return nil
	},
}

var setEditCmd = &cobra.Command{
	Use:   "edit <workout> <exercise> <set> <weight> <reps>",
	Short: "Edit a target set",
	Long: `Change the weight and reps of a target set.

The edit only changes the template target; previously logged sessions
keep the weights and reps they were performed with.

Examples:
  splits set edit "Push Day" Bench 1 65 5`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		weight, reps, err := parseSetArgs(args[3], args[4])
		if err != nil {
			return err
		}

		err = editTemplate(w, func(edited []tracker.EditedExercise) ([]tracker.EditedExercise, error) {
			i, j, err := findSet(edited, args[1], args[2])
			if err != nil {
				return nil, err
			}
			edited[i].Sets[j].Weight = weight
			edited[i].Sets[j].Repetitions = reps
			return edited, nil
		})
		if err != nil {
			return err
		}

		color.Green("✓ Updated set: %.2f %s x %d", weight, weightUnit, reps)
		return nil
	},
}

var setRemoveCmd = &cobra.Command{
	Use:     "remove <workout> <exercise> <set>",
	Aliases: []string{"rm"},
	Short:   "Remove a target set",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		err = editTemplate(w, func(edited []tracker.EditedExercise) ([]tracker.EditedExercise, error) {
			i, j, err := findSet(edited, args[1], args[2])
			if err != nil {
				return nil, err
			}
			edited[i].Sets = append(edited[i].Sets[:j], edited[i].Sets[j+1:]...)
			return edited, nil
		})
		if err != nil {
			return err
		}

		color.Yellow("✗ Removed set %s", args[2])
		return nil
	},
}

func parseSetArgs(weightArg, repsArg string) (float64, int, error) {
	weight, err := strconv.ParseFloat(weightArg, 64)
	if err != nil || weight < 0 {
		return 0, 0, fmt.Errorf("invalid weight: %s", weightArg)
	}
	reps, err := strconv.Atoi(repsArg)
	if err != nil || reps < 0 {
		return 0, 0, fmt.Errorf("invalid rep count: %s", repsArg)
	}
	return weight, reps, nil
}

// findSet resolves an exercise reference plus a 1-based set position.
func findSet(edited []tracker.EditedExercise, exerciseRef, setRef string) (int, int, error) {
	i, err := findExercise(edited, exerciseRef)
	if err != nil {
		return 0, 0, err
	}
	n, err := strconv.Atoi(setRef)
	if err != nil || n < 1 || n > len(edited[i].Sets) {
		return 0, 0, fmt.Errorf("set position out of range: %s", setRef)
	}
	return i, n - 1, nil
}

func init() {
	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setEditCmd)
	setCmd.AddCommand(setRemoveCmd)
	rootCmd.AddCommand(setCmd)
}
