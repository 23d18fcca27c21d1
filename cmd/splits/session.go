// ABOUTME: CLI commands for logging and reviewing training sessions.
// ABOUTME: Provides log, sessions list/show/remove for both workout kinds.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/tracker"
	"github.com/harperreed/splits/internal/units"
	"github.com/spf13/cobra"
)

var (
	logAt       string
	logSets     string
	logSteps    int64
	logDistance float64
	logMinutes  float64
)

var logCmd = &cobra.Command{
	Use:   "log <workout>",
	Short: "Log a training session",
	Long: `Log a completed session for a workout.

STRENGTH:

  By default every target set is recorded as performed. Use --sets to
  record a subset, as comma-separated exercise:set positions (1-based);
  an entry without a set position selects the whole exercise.

  $ splits log "Push Day"                 # everything done
  $ splits log "Push Day" --sets 1,2:1    # all of exercise 1, set 1 of exercise 2

  Recorded sets snapshot today's target weight and reps; editing the
  template later never changes them.

CARDIO:

  $ splits log Run --distance 5.2 --minutes 28
  $ splits log Walk --steps 8000

  Metrics left at zero are recorded as not measured and stay out of the
  averages.

Use --at to backdate a session (ISO 8601 or "2006-01-02 15:04").`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		at, err := parseAt(logAt)
		if err != nil {
			return err
		}

		if w.Kind == models.KindCardio {
			return logCardio(w, at)
		}
		return logStrength(w, at)
	},
}

func logStrength(w *models.Workout, at time.Time) error {
	_, exercises, err := tr.Template(w.ID)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}
	edited := tracker.EditedTemplate(exercises, weightUnit)

	if logSets == "" {
		for i := range edited {
			for j := range edited[i].Sets {
				edited[i].Sets[j].Done = true
			}
		}
	} else if err := markSelectedSets(edited, logSets); err != nil {
		return err
	}

	session, err := tr.FinishStrength(w.ID, w.Name, edited, weightUnit, at)
	if err != nil {
		return fmt.Errorf("failed to log session: %w", err)
	}
	if session == nil {
		fmt.Println("No sets selected; nothing logged.")
		return nil
	}

	color.Green("✓ Logged %q session", w.Name)
	fmt.Printf("  ID: %d  %s\n", session.ID, session.CompletedAt.Format("2006-01-02 15:04"))
	return nil
}

func logCardio(w *models.Workout, at time.Time) error {
	duration := time.Duration(logMinutes * float64(time.Minute))
	session, err := tr.FinishCardio(w.ID, logSteps, logDistance, distanceUnit, duration, at)
	if err != nil {
		return fmt.Errorf("failed to log session: %w", err)
	}

	color.Green("✓ Logged %q session", w.Name)
	fmt.Printf("  ID: %d  %s\n", session.ID, session.CompletedAt.Format("2006-01-02 15:04"))
	return nil
}

// markSelectedSets marks entries of a --sets selection as done.
// Entries are "exercise" or "exercise:set" with 1-based positions.
func markSelectedSets(edited []tracker.EditedExercise, selection string) error {
	for _, entry := range strings.Split(selection, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		exPart, setPart, hasSet := strings.Cut(entry, ":")
		ei, err := strconv.Atoi(exPart)
		if err != nil || ei < 1 || ei > len(edited) {
			return fmt.Errorf("invalid --sets entry: %s", entry)
		}

		if !hasSet {
			for j := range edited[ei-1].Sets {
				edited[ei-1].Sets[j].Done = true
			}
			continue
		}

		si, err := strconv.Atoi(setPart)
		if err != nil || si < 1 || si > len(edited[ei-1].Sets) {
			return fmt.Errorf("invalid --sets entry: %s", entry)
		}
		edited[ei-1].Sets[si-1].Done = true
	}
	return nil
}

var sessionsCmd = &cobra.Command{
	Use:     "sessions <workout>",
	Aliases: []string{"history"},
	Short:   "List the sessions of a workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		sessions, err := repo.ListSessions(w.ID)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions logged.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range sessions {
			summary, err := sessionSummary(w, s)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s %s\n",
				faint.Sprintf("%4d", s.ID),
				s.CompletedAt.Format("2006-01-02 15:04"),
				summary)
		}
		return nil
	},
}

// sessionSummary renders a one-line summary for a session row.
func sessionSummary(w *models.Workout, s *models.Session) (string, error) {
	if w.Kind == models.KindStrength {
		records, err := repo.ListSetRecords(s.ID)
		if err != nil {
			return "", fmt.Errorf("failed to list set records: %w", err)
		}
		return fmt.Sprintf("%d sets", len(records)), nil
	}

	metrics, err := repo.GetCardioMetrics(s.ID)
	if err != nil {
		return "", fmt.Errorf("failed to get cardio metrics: %w", err)
	}

	var parts []string
	if metrics.Distance != nil {
		parts = append(parts, fmt.Sprintf("%.2f %s", units.FromKilometers(*metrics.Distance, distanceUnit), distanceUnit))
	}
	if metrics.DurationMillis != nil {
		parts = append(parts, fmt.Sprintf("%d min", *metrics.DurationMillis/60000))
	}
	if metrics.Steps != nil {
		parts = append(parts, fmt.Sprintf("%d steps", *metrics.Steps))
	}
	if len(parts) == 0 {
		return "no metrics", nil
	}
	return strings.Join(parts, ", "), nil
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the recorded sets of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session ID: %s", args[0])
		}

		s, err := repo.GetSession(id)
		if err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}
		w, err := repo.GetWorkout(s.WorkoutID)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		fmt.Printf("Session %d: %s\n", s.ID, w.Name)
		fmt.Printf("Completed: %s\n", s.CompletedAt.Format("2006-01-02 15:04"))

		summary, err := sessionSummary(w, s)
		if err != nil {
			return err
		}
		if w.Kind == models.KindCardio {
			fmt.Printf("Metrics: %s\n", summary)
			return nil
		}

		records, err := repo.ListSetRecords(s.ID)
		if err != nil {
			return fmt.Errorf("failed to list set records: %w", err)
		}
		fmt.Println("\nSets:")
		for _, r := range records {
			fmt.Printf("  %.2f %s x %d\n",
				units.FromKilograms(r.Weight, weightUnit), weightUnit, r.Repetitions)
		}
		return nil
	},
}

var sessionRemoveCmd = &cobra.Command{
	Use:     "remove <session-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session ID: %s", args[0])
		}

		if _, err := repo.GetSession(id); err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}
		if err := repo.DeleteSession(id); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		color.Yellow("✗ Deleted session %d", id)
		return nil
	},
}

func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02 15:04", s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %s", s)
	}
	return t, nil
}

func init() {
	logCmd.Flags().StringVar(&logAt, "at", "", "session timestamp (default: now)")
	logCmd.Flags().StringVar(&logSets, "sets", "", "sets performed, as exercise[:set] positions")
	logCmd.Flags().Int64Var(&logSteps, "steps", 0, "steps (cardio)")
	logCmd.Flags().Float64Var(&logDistance, "distance", 0, "distance in the display unit (cardio)")
	logCmd.Flags().Float64Var(&logMinutes, "minutes", 0, "duration in minutes (cardio)")

	sessionsCmd.AddCommand(sessionShowCmd)
	sessionsCmd.AddCommand(sessionRemoveCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(sessionsCmd)
}
