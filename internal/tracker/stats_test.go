// ABOUTME: Tests for the stats aggregator.
// ABOUTME: Pins carry-forward semantics, the reps asymmetry, gaps, and scalar averages.
package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/units"
)

func TestStatsWorkoutNotFound(t *testing.T) {
	tr, _ := setupTracker(t)

	_, err := tr.WorkoutStats(12345)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStatsEmptyWorkout(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "New", models.KindStrength)

	stats, err := tr.WorkoutStats(w.ID)
	if err != nil {
		t.Fatalf("WorkoutStats failed: %v", err)
	}
	if len(stats.Exercises) != 0 {
		t.Errorf("Expected no series, got %d", len(stats.Exercises))
	}
	if stats.Averages.Weight != 0 || stats.Averages.SetsPerExercise != 0 {
		t.Errorf("Expected zero averages, got %+v", stats.Averages)
	}
}

// Three sessions: the exercise is performed in the first and third but
// skipped in the second. The skipped point must report the carried
// weight, not zero — and zero repetitions, because reps never carry.
func TestWeightCarryForward(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Legs", models.KindStrength)

	squat := NewEditedExercise("Squat")
	squat.Sets = []EditedSet{NewEditedSet(50, 5)}
	lunge := NewEditedExercise("Lunge")
	lunge.Sets = []EditedSet{NewEditedSet(30, 12)}
	edited := []EditedExercise{squat, lunge}

	day := time.Date(2026, 2, 2, 18, 0, 0, 0, time.UTC)

	// S1: squat at 50.
	if _, err := tr.FinishStrength(w.ID, w.Name, markDone(edited, "Squat"), units.Kilograms, day); err != nil {
		t.Fatalf("FinishStrength S1 failed: %v", err)
	}

	// S2: only lunges; squat skipped.
	if _, err := tr.FinishStrength(w.ID, w.Name, markDone(edited, "Lunge"), units.Kilograms, day.AddDate(0, 0, 2)); err != nil {
		t.Fatalf("FinishStrength S2 failed: %v", err)
	}

	// S3: squat again, heavier.
	edited[0].Sets[0].Weight = 60
	if _, err := tr.FinishStrength(w.ID, w.Name, markDone(edited, "Squat"), units.Kilograms, day.AddDate(0, 0, 4)); err != nil {
		t.Fatalf("FinishStrength S3 failed: %v", err)
	}

	stats, err := tr.WorkoutStats(w.ID)
	if err != nil {
		t.Fatalf("WorkoutStats failed: %v", err)
	}

	var series *ExerciseSeries
	for i := range stats.Exercises {
		if stats.Exercises[i].Name == "Squat" {
			series = &stats.Exercises[i]
		}
	}
	if series == nil {
		t.Fatal("No series for Squat")
	}
	if len(series.Points) != 3 {
		t.Fatalf("Expected 3 points (one per session), got %d", len(series.Points))
	}

	p1, p2, p3 := series.Points[0], series.Points[1], series.Points[2]
	if p1.MinWeight != 50 || p1.MaxWeight != 50 {
		t.Errorf("S1 = [%.0f, %.0f], want [50, 50]", p1.MinWeight, p1.MaxWeight)
	}
	if p2.MinWeight != 50 || p2.MaxWeight != 50 {
		t.Errorf("S2 carried = [%.0f, %.0f], want [50, 50]", p2.MinWeight, p2.MaxWeight)
	}
	if p2.Performed {
		t.Error("S2 should be marked not performed for Squat")
	}
	if p2.MinRepetitions != 0 || p2.MaxRepetitions != 0 {
		t.Errorf("S2 reps = [%d, %d], want [0, 0]: repetitions do not carry forward", p2.MinRepetitions, p2.MaxRepetitions)
	}
	if p3.MinWeight != 60 || p3.MaxWeight != 60 {
		t.Errorf("S3 = [%.0f, %.0f], want [60, 60]", p3.MinWeight, p3.MaxWeight)
	}
}

// A session logged before an exercise has ever been performed reports the
// initial carry value of zero.
func TestCarryForwardStartsAtZero(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Mixed", models.KindStrength)

	a := NewEditedExercise("A")
	a.Sets = []EditedSet{NewEditedSet(40, 10)}
	b := NewEditedExercise("B")
	b.Sets = []EditedSet{NewEditedSet(20, 15)}
	edited := []EditedExercise{a, b}

	if _, err := tr.FinishStrength(w.ID, w.Name, markDone(edited, "A"), units.Kilograms, time.Now()); err != nil {
		t.Fatalf("FinishStrength failed: %v", err)
	}

	stats, err := tr.WorkoutStats(w.ID)
	if err != nil {
		t.Fatalf("WorkoutStats failed: %v", err)
	}

	for _, series := range stats.Exercises {
		if series.Name != "B" {
			continue
		}
		if len(series.Points) != 1 {
			t.Fatalf("Expected 1 point for B, got %d", len(series.Points))
		}
		if series.Points[0].MinWeight != 0 || series.Points[0].MaxWeight != 0 {
			t.Errorf("B's first point = [%.0f, %.0f], want [0, 0]", series.Points[0].MinWeight, series.Points[0].MaxWeight)
		}
	}
}

func TestSessionMinMax(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Push", models.KindStrength)

	bench := NewEditedExercise("Bench")
	bench.Sets = []EditedSet{NewEditedSet(80, 5), NewEditedSet(75, 8), NewEditedSet(70, 10)}

	if _, err := tr.FinishStrength(w.ID, w.Name, markDone([]EditedExercise{bench}, "Bench"), units.Kilograms, time.Now()); err != nil {
		t.Fatalf("FinishStrength failed: %v", err)
	}

	stats, err := tr.WorkoutStats(w.ID)
	if err != nil {
		t.Fatalf("WorkoutStats failed: %v", err)
	}

	p := stats.Exercises[0].Points[0]
	if p.MinWeight != 70 || p.MaxWeight != 80 {
		t.Errorf("Weights = [%.0f, %.0f], want [70, 80]", p.MinWeight, p.MaxWeight)
	}
	if p.MinRepetitions != 5 || p.MaxRepetitions != 10 {
		t.Errorf("Reps = [%d, %d], want [5, 10]", p.MinRepetitions, p.MaxRepetitions)
	}
}

func TestScalarAverages(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Push", models.KindStrength)

	bench := NewEditedExercise("Bench")
	bench.Sets = []EditedSet{NewEditedSet(80, 5), NewEditedSet(70, 10)}
	fly := NewEditedExercise("Fly")
	fly.Sets = []EditedSet{NewEditedSet(15, 12)}
	edited := []EditedExercise{bench, fly}

	day := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	if _, err := tr.FinishStrength(w.ID, w.Name, markDone(markDone(edited, "Bench"), "Fly"), units.Kilograms, day); err != nil {
		t.Fatalf("FinishStrength S1 failed: %v", err)
	}
	if _, err := tr.FinishStrength(w.ID, w.Name, markDone(edited, "Bench"), units.Kilograms, day.AddDate(0, 0, 3)); err != nil {
		t.Fatalf("FinishStrength S2 failed: %v", err)
	}

	stats, err := tr.WorkoutStats(w.ID)
	if err != nil {
		t.Fatalf("WorkoutStats failed: %v", err)
	}

	// Five records: 80, 70, 15, 80, 70 -> mean 63; reps 5,10,12,5,10 -> 8.4.
	if stats.Averages.Weight != 63 {
		t.Errorf("Average weight = %v, want 63", stats.Averages.Weight)
	}
	if stats.Averages.Repetitions != 8.4 {
		t.Errorf("Average repetitions = %v, want 8.4", stats.Averages.Repetitions)
	}
	// Five records over two exercises.
	if stats.Averages.SetsPerExercise != 2.5 {
		t.Errorf("Sets per exercise = %v, want 2.5", stats.Averages.SetsPerExercise)
	}
}

func TestCardioSeriesKeepsGaps(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Run", models.KindCardio)

	day := time.Date(2026, 5, 10, 7, 0, 0, 0, time.UTC)
	if _, err := tr.FinishCardio(w.ID, 6000, 5, units.Kilometers, 30*time.Minute, day); err != nil {
		t.Fatalf("FinishCardio S1 failed: %v", err)
	}
	// Second session measured nothing.
	if _, err := tr.FinishCardio(w.ID, 0, 0, units.Kilometers, 0, day.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("FinishCardio S2 failed: %v", err)
	}
	if _, err := tr.FinishCardio(w.ID, 0, 10, units.Kilometers, 0, day.AddDate(0, 0, 2)); err != nil {
		t.Fatalf("FinishCardio S3 failed: %v", err)
	}

	stats, err := tr.WorkoutStats(w.ID)
	if err != nil {
		t.Fatalf("WorkoutStats failed: %v", err)
	}
	if len(stats.Cardio) != 3 {
		t.Fatalf("Expected 3 cardio points, got %d", len(stats.Cardio))
	}

	if stats.Cardio[0].Steps == nil || *stats.Cardio[0].Steps != 6000 {
		t.Errorf("S1 steps = %v, want 6000", stats.Cardio[0].Steps)
	}
	// Gaps stay gaps: no carry-forward into S2.
	if stats.Cardio[1].Steps != nil || stats.Cardio[1].Distance != nil || stats.Cardio[1].DurationMillis != nil {
		t.Errorf("S2 should be all gaps, got %+v", stats.Cardio[1])
	}
	if stats.Cardio[2].Distance == nil || *stats.Cardio[2].Distance != 10 {
		t.Errorf("S3 distance = %v, want 10", stats.Cardio[2].Distance)
	}
}

// Unmeasured metrics stay out of the average's denominator: two runs with
// 5 km and 10 km plus one unmeasured session average 7.5, not 5.
func TestCardioAveragesExcludeUnmeasured(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Run", models.KindCardio)

	day := time.Date(2026, 5, 10, 7, 0, 0, 0, time.UTC)
	if _, err := tr.FinishCardio(w.ID, 6000, 5, units.Kilometers, 0, day); err != nil {
		t.Fatalf("FinishCardio S1 failed: %v", err)
	}
	if _, err := tr.FinishCardio(w.ID, 0, 0, units.Kilometers, 0, day.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("FinishCardio S2 failed: %v", err)
	}
	if _, err := tr.FinishCardio(w.ID, 0, 10, units.Kilometers, 0, day.AddDate(0, 0, 2)); err != nil {
		t.Fatalf("FinishCardio S3 failed: %v", err)
	}

	stats, err := tr.WorkoutStats(w.ID)
	if err != nil {
		t.Fatalf("WorkoutStats failed: %v", err)
	}

	if stats.Averages.Distance != 7.5 {
		t.Errorf("Average distance = %v, want 7.5", stats.Averages.Distance)
	}
	if stats.Averages.Steps != 6000 {
		t.Errorf("Average steps = %v, want 6000", stats.Averages.Steps)
	}
	// Duration was never measured; a null average normalizes to zero.
	if stats.Averages.DurationMillis != 0 {
		t.Errorf("Average duration = %v, want 0", stats.Averages.DurationMillis)
	}
}
