// ABOUTME: CLI command for workout statistics.
// ABOUTME: Prints per-exercise history series and flat averages.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/tracker"
	"github.com/harperreed/splits/internal/units"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <workout>",
	Short: "Show workout statistics",
	Long: `Show the session history and averages of a workout.

STRENGTH:

  One line per session for each exercise, with the min-max weight and rep
  range recorded that day. A session where the exercise was skipped shows
  the last recorded weight carried forward with zero reps.

CARDIO:

  One line per session with the recorded metrics. Averages only count
  sessions where the metric was measured.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		stats, err := tr.WorkoutStats(w.ID)
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		fmt.Printf("Workout: %s (%s)\n", w.Name, w.Kind)

		if w.Kind == models.KindStrength {
			printStrengthStats(stats)
		} else {
			printCardioStats(stats)
		}
		return nil
	},
}

func printStrengthStats(stats *tracker.WorkoutStats) {
	faint := color.New(color.Faint)
	for _, series := range stats.Exercises {
		fmt.Printf("\n%s\n", color.New(color.Bold).Sprint(series.Name))
		for _, p := range series.Points {
			note := ""
			if !p.Performed {
				note = faint.Sprint("  (carried)")
			}
			fmt.Printf("  %s  %s x %s%s\n",
				faint.Sprint(p.CompletedAt.Format("2006-01-02")),
				formatRange(units.FromKilograms(p.MinWeight, weightUnit), units.FromKilograms(p.MaxWeight, weightUnit), string(weightUnit)),
				formatIntRange(p.MinRepetitions, p.MaxRepetitions),
				note)
		}
	}

	a := stats.Averages
	fmt.Printf("\nAverages: %.2f %s x %.2f reps, %.2f sets/exercise\n",
		units.FromKilograms(a.Weight, weightUnit), weightUnit, a.Repetitions, a.SetsPerExercise)
}

func printCardioStats(stats *tracker.WorkoutStats) {
	faint := color.New(color.Faint)
	for _, p := range stats.Cardio {
		line := faint.Sprint(p.CompletedAt.Format("2006-01-02"))
		if p.Distance != nil {
			line += fmt.Sprintf("  %.2f %s", units.FromKilometers(*p.Distance, distanceUnit), distanceUnit)
		}
		if p.DurationMillis != nil {
			line += fmt.Sprintf("  %d min", *p.DurationMillis/60000)
		}
		if p.Steps != nil {
			line += fmt.Sprintf("  %d steps", *p.Steps)
		}
		fmt.Println("  " + line)
	}

	a := stats.Averages
	fmt.Printf("\nAverages: %.2f %s, %.2f min, %.0f steps\n",
		units.FromKilometers(a.Distance, distanceUnit), distanceUnit, a.DurationMillis/60000, a.Steps)
}

func formatRange(lo, hi float64, unit string) string {
	if lo == hi {
		return fmt.Sprintf("%.2f %s", lo, unit)
	}
	return fmt.Sprintf("%.2f-%.2f %s", lo, hi, unit)
}

func formatIntRange(lo, hi int) string {
	if lo == hi {
		return fmt.Sprintf("%d", lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
