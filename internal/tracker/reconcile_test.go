// ABOUTME: Tests for the template reconciler.
// ABOUTME: Verifies identity stability, cascade deletes, renames, and unit handling.
package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/units"
)

func TestSaveTemplateWorkoutNotFound(t *testing.T) {
	tr, _ := setupTracker(t)

	err := tr.SaveTemplate(999, "Ghost", nil, units.Kilograms)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestIdentityStability(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Pull", models.KindStrength)

	row := NewEditedExercise("Row")
	row.Sets = []EditedSet{NewEditedSet(60, 8)}
	if err := tr.SaveTemplate(w.ID, w.Name, []EditedExercise{row}, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	before, err := repo.ListExercises(w.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	setsBefore, err := repo.ListTargetSets(before[0].ID)
	if err != nil {
		t.Fatalf("ListTargetSets failed: %v", err)
	}

	// Change everything except the stable IDs.
	row.Name = "Barbell Row"
	row.Description = "strict form"
	row.Sets[0].Weight = 65
	row.Sets[0].Repetitions = 6
	if err := tr.SaveTemplate(w.ID, w.Name, []EditedExercise{row}, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate (edit) failed: %v", err)
	}

	after, err := repo.ListExercises(w.ID)
	if err != nil {
		t.Fatalf("ListExercises after edit failed: %v", err)
	}
	if len(after) != 1 {
		t.Fatalf("Expected 1 exercise, got %d", len(after))
	}
	if after[0].ID != before[0].ID {
		t.Errorf("Exercise surrogate key changed: %d -> %d", before[0].ID, after[0].ID)
	}
	if after[0].Name != "Barbell Row" {
		t.Errorf("Name = %q, want 'Barbell Row'", after[0].Name)
	}
	if after[0].Description == nil || *after[0].Description != "strict form" {
		t.Errorf("Description = %v, want 'strict form'", after[0].Description)
	}

	setsAfter, err := repo.ListTargetSets(after[0].ID)
	if err != nil {
		t.Fatalf("ListTargetSets after edit failed: %v", err)
	}
	if setsAfter[0].ID != setsBefore[0].ID {
		t.Errorf("Target set surrogate key changed: %d -> %d", setsBefore[0].ID, setsAfter[0].ID)
	}
	if setsAfter[0].Weight != 65 || setsAfter[0].Repetitions != 6 {
		t.Errorf("Set = %.0f x%d, want 65 x6", setsAfter[0].Weight, setsAfter[0].Repetitions)
	}
}

func TestIdentityStabilityPreservesHistory(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Legs", models.KindStrength)

	squat := NewEditedExercise("Squat")
	squat.Sets = []EditedSet{NewEditedSet(100, 5)}
	session, err := tr.FinishStrength(w.ID, w.Name, markDone([]EditedExercise{squat}, "Squat"), units.Kilograms, time.Now())
	if err != nil {
		t.Fatalf("FinishStrength failed: %v", err)
	}

	// Edit after the session was logged.
	squat.Sets[0].Weight = 110
	if err := tr.SaveTemplate(w.ID, w.Name, []EditedExercise{squat}, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	// The session still joins to the (updated) target set.
	records, err := repo.ListSetRecords(session.ID)
	if err != nil {
		t.Fatalf("ListSetRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("History lost after edit: %d records", len(records))
	}

	exercises, err := repo.ListExercises(w.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	sets, err := repo.ListTargetSets(exercises[0].ID)
	if err != nil {
		t.Fatalf("ListTargetSets failed: %v", err)
	}
	if records[0].TargetSetID != sets[0].ID {
		t.Errorf("Record references target set %d, current slot is %d", records[0].TargetSetID, sets[0].ID)
	}
}

func TestExerciseDeletionCascades(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Upper", models.KindStrength)

	bench := NewEditedExercise("Bench")
	bench.Sets = []EditedSet{NewEditedSet(80, 5)}
	curl := NewEditedExercise("Curl")
	curl.Sets = []EditedSet{NewEditedSet(20, 12)}

	edited := []EditedExercise{bench, curl}
	session, err := tr.FinishStrength(w.ID, w.Name, markDone(markDone(edited, "Bench"), "Curl"), units.Kilograms, time.Now())
	if err != nil {
		t.Fatalf("FinishStrength failed: %v", err)
	}

	records, err := repo.ListSetRecords(session.ID)
	if err != nil {
		t.Fatalf("ListSetRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	// Drop Curl from the template.
	if err := tr.SaveTemplate(w.ID, w.Name, []EditedExercise{bench}, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	exercises, err := repo.ListExercises(w.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 1 || exercises[0].Name != "Bench" {
		t.Fatalf("Expected only Bench to remain, got %d exercises", len(exercises))
	}

	// Curl's record went with it; Bench's survived.
	records, err = repo.ListSetRecords(session.ID)
	if err != nil {
		t.Fatalf("ListSetRecords after delete failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 surviving record, got %d", len(records))
	}
	if records[0].StableID != bench.Sets[0].StableID {
		t.Error("Surviving record does not belong to Bench")
	}

	// Stats no longer mention the deleted exercise.
	stats, err := tr.WorkoutStats(w.ID)
	if err != nil {
		t.Fatalf("WorkoutStats failed: %v", err)
	}
	if len(stats.Exercises) != 1 || stats.Exercises[0].Name != "Bench" {
		t.Errorf("Stats still include deleted exercise: %+v", stats.Exercises)
	}
}

func TestSetDeletionCascades(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Push", models.KindStrength)

	bench := NewEditedExercise("Bench")
	bench.Sets = []EditedSet{NewEditedSet(80, 5), NewEditedSet(75, 8)}
	session, err := tr.FinishStrength(w.ID, w.Name, markDone([]EditedExercise{bench}, "Bench"), units.Kilograms, time.Now())
	if err != nil {
		t.Fatalf("FinishStrength failed: %v", err)
	}

	// Drop the second set slot.
	bench.Sets = bench.Sets[:1]
	if err := tr.SaveTemplate(w.ID, w.Name, []EditedExercise{bench}, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	records, err := repo.ListSetRecords(session.ID)
	if err != nil {
		t.Fatalf("ListSetRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 surviving record, got %d", len(records))
	}
	if records[0].StableID != bench.Sets[0].StableID {
		t.Error("Wrong record survived the set deletion")
	}
}

func TestWorkoutRename(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Push", models.KindStrength)

	// Blank and whitespace-only names leave the persisted name alone.
	if err := tr.SaveTemplate(w.ID, "   ", nil, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	got, err := repo.GetWorkout(w.ID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if got.Name != "Push" {
		t.Errorf("Name = %q after blank rename, want 'Push'", got.Name)
	}

	if err := tr.SaveTemplate(w.ID, "Push Day", nil, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	got, err = repo.GetWorkout(w.ID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if got.Name != "Push Day" {
		t.Errorf("Name = %q, want 'Push Day'", got.Name)
	}
}

func TestDisplayUnitConversion(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Push", models.KindStrength)

	bench := NewEditedExercise("Bench")
	bench.Sets = []EditedSet{NewEditedSet(225, 5)} // pounds
	if err := tr.SaveTemplate(w.ID, w.Name, []EditedExercise{bench}, units.Pounds); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	exercises, err := repo.ListExercises(w.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	sets, err := repo.ListTargetSets(exercises[0].ID)
	if err != nil {
		t.Fatalf("ListTargetSets failed: %v", err)
	}
	if sets[0].Weight != 102.06 {
		t.Errorf("Stored weight = %v kg, want 102.06", sets[0].Weight)
	}

	// Saving the same template in display units again is a no-op: the
	// round-tripped weight converts back to the same stored value.
	_, full, err := tr.Template(w.ID)
	if err != nil {
		t.Fatalf("Template failed: %v", err)
	}
	edited := EditedTemplate(full, units.Pounds)
	if err := tr.SaveTemplate(w.ID, w.Name, edited, units.Pounds); err != nil {
		t.Fatalf("SaveTemplate (round trip) failed: %v", err)
	}
	setsAfter, err := repo.ListTargetSets(exercises[0].ID)
	if err != nil {
		t.Fatalf("ListTargetSets after round trip failed: %v", err)
	}
	if setsAfter[0].ID != sets[0].ID || setsAfter[0].Weight != sets[0].Weight {
		t.Errorf("Round-trip save disturbed the stored set: %+v", setsAfter[0])
	}
}

func TestReorderUpdatesPositions(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Full", models.KindStrength)

	a := NewEditedExercise("A")
	b := NewEditedExercise("B")
	if err := tr.SaveTemplate(w.ID, w.Name, []EditedExercise{a, b}, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	if err := tr.SaveTemplate(w.ID, w.Name, []EditedExercise{b, a}, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate (reorder) failed: %v", err)
	}

	exercises, err := repo.ListExercises(w.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if exercises[0].Name != "B" || exercises[1].Name != "A" {
		t.Errorf("Order = [%s, %s], want [B, A]", exercises[0].Name, exercises[1].Name)
	}
}

func TestMoveSetBetweenExercises(t *testing.T) {
	tr, repo := setupTracker(t)
	w := createWorkout(t, repo, "Mix", models.KindStrength)

	a := NewEditedExercise("A")
	set := NewEditedSet(50, 10)
	a.Sets = []EditedSet{set}
	b := NewEditedExercise("B")
	if err := tr.SaveTemplate(w.ID, w.Name, []EditedExercise{a, b}, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	// Move the set slot from A to B in a single edit. The old row is
	// deleted under A and a fresh row inserted under B; deletions running
	// first keeps the stable ID free to reuse.
	a.Sets = nil
	b.Sets = []EditedSet{set}
	if err := tr.SaveTemplate(w.ID, w.Name, []EditedExercise{a, b}, units.Kilograms); err != nil {
		t.Fatalf("SaveTemplate (move) failed: %v", err)
	}

	exercises, err := repo.ListExercises(w.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	aSets, err := repo.ListTargetSets(exercises[0].ID)
	if err != nil {
		t.Fatalf("ListTargetSets(A) failed: %v", err)
	}
	bSets, err := repo.ListTargetSets(exercises[1].ID)
	if err != nil {
		t.Fatalf("ListTargetSets(B) failed: %v", err)
	}
	if len(aSets) != 0 {
		t.Errorf("Expected A to have no sets, got %d", len(aSets))
	}
	if len(bSets) != 1 || bSets[0].StableID != set.StableID {
		t.Errorf("Expected the set under B with its stable ID, got %+v", bSets)
	}
}
