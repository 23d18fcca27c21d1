// ABOUTME: Tests for the SQLite Repository implementation.
// ABOUTME: Verifies CRUD, foreign-key cascades, aggregates, and transaction rollback.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/splits/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "splits-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "splits.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// seedTemplate creates a strength workout with one exercise and one set.
func seedTemplate(t *testing.T, db *DB) (*models.Workout, *models.Exercise, *models.TargetSet) {
	t.Helper()

	w := models.NewWorkout("Push", models.KindStrength)
	if err := db.CreateWorkout(w); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	e := models.NewExercise(w.ID, "Bench")
	if err := db.CreateExercise(e); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	s := models.NewTargetSet(e.ID, 80, 5)
	if err := db.CreateTargetSet(s); err != nil {
		t.Fatalf("CreateTargetSet failed: %v", err)
	}

	return w, e, s
}

func TestCreateAndGetWorkout(t *testing.T) {
	db := setupTestDB(t)

	w := models.NewWorkout("Push", models.KindStrength)
	if err := db.CreateWorkout(w); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	if w.ID == 0 {
		t.Fatal("Expected surrogate ID to be assigned")
	}

	got, err := db.GetWorkout(w.ID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if got.Name != "Push" || got.Kind != models.KindStrength {
		t.Errorf("Got %+v, want Push/strength", got)
	}
}

func TestGetWorkoutNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetWorkout(999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetWorkoutByName(t *testing.T) {
	db := setupTestDB(t)

	w := models.NewWorkout("Push", models.KindStrength)
	if err := db.CreateWorkout(w); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	got, err := db.GetWorkoutByName("Push")
	if err != nil {
		t.Fatalf("GetWorkoutByName failed: %v", err)
	}
	if got.ID != w.ID {
		t.Errorf("ID = %d, want %d", got.ID, w.ID)
	}

	if _, err := db.GetWorkoutByName("Pull"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	// Duplicate names are ambiguous.
	dup := models.NewWorkout("Push", models.KindCardio)
	if err := db.CreateWorkout(dup); err != nil {
		t.Fatalf("CreateWorkout (dup) failed: %v", err)
	}
	if _, err := db.GetWorkoutByName("Push"); err == nil {
		t.Error("Expected error for ambiguous name")
	}
}

func TestListWorkouts(t *testing.T) {
	db := setupTestDB(t)

	strength := models.NewWorkout("Push", models.KindStrength)
	strength.CreatedAt = time.Now().Add(-time.Hour)
	cardio := models.NewWorkout("Run", models.KindCardio)

	for _, w := range []*models.Workout{strength, cardio} {
		if err := db.CreateWorkout(w); err != nil {
			t.Fatalf("CreateWorkout failed: %v", err)
		}
	}

	all, err := db.ListWorkouts(nil, 0)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 workouts, got %d", len(all))
	}
	// Most recent first.
	if all[0].Name != "Run" {
		t.Errorf("Expected Run first, got %s", all[0].Name)
	}

	kind := models.KindCardio
	cardios, err := db.ListWorkouts(&kind, 0)
	if err != nil {
		t.Fatalf("ListWorkouts by kind failed: %v", err)
	}
	if len(cardios) != 1 || cardios[0].Name != "Run" {
		t.Errorf("Expected only Run, got %+v", cardios)
	}
}

func TestRenameWorkout(t *testing.T) {
	db := setupTestDB(t)
	w, _, _ := seedTemplate(t, db)

	if err := db.RenameWorkout(w.ID, "Push Day"); err != nil {
		t.Fatalf("RenameWorkout failed: %v", err)
	}

	got, err := db.GetWorkout(w.ID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if got.Name != "Push Day" {
		t.Errorf("Name = %q, want 'Push Day'", got.Name)
	}

	if err := db.RenameWorkout(999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestWorkoutCascadeDelete(t *testing.T) {
	db := setupTestDB(t)
	w, e, s := seedTemplate(t, db)

	session := &models.Session{WorkoutID: w.ID, CompletedAt: time.Now()}
	if err := db.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	record := &models.SetRecord{StableID: s.StableID, TargetSetID: s.ID, SessionID: session.ID, Weight: 80, Repetitions: 5}
	if err := db.CreateSetRecord(record); err != nil {
		t.Fatalf("CreateSetRecord failed: %v", err)
	}

	if err := db.DeleteWorkout(w.ID); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}

	exercises, err := db.ListExercises(w.ID)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != 0 {
		t.Errorf("Exercises survived workout delete: %d", len(exercises))
	}

	sets, err := db.ListTargetSets(e.ID)
	if err != nil {
		t.Fatalf("ListTargetSets failed: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("Target sets survived workout delete: %d", len(sets))
	}

	sessions, err := db.ListSessions(w.ID)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Sessions survived workout delete: %d", len(sessions))
	}

	records, err := db.ListSetRecords(session.ID)
	if err != nil {
		t.Fatalf("ListSetRecords failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Set records survived workout delete: %d", len(records))
	}
}

func TestTargetSetCascadeDelete(t *testing.T) {
	db := setupTestDB(t)
	w, _, s := seedTemplate(t, db)

	session := &models.Session{WorkoutID: w.ID, CompletedAt: time.Now()}
	if err := db.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	record := &models.SetRecord{StableID: s.StableID, TargetSetID: s.ID, SessionID: session.ID, Weight: 80, Repetitions: 5}
	if err := db.CreateSetRecord(record); err != nil {
		t.Fatalf("CreateSetRecord failed: %v", err)
	}

	if err := db.DeleteTargetSets([]int64{s.ID}); err != nil {
		t.Fatalf("DeleteTargetSets failed: %v", err)
	}

	records, err := db.ListSetRecords(session.ID)
	if err != nil {
		t.Fatalf("ListSetRecords failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Set records survived target set delete: %d", len(records))
	}

	// The session row itself stays.
	if _, err := db.GetSession(session.ID); err != nil {
		t.Errorf("Session should survive target set delete: %v", err)
	}
}

func TestStableIDUniquePerParent(t *testing.T) {
	db := setupTestDB(t)
	_, e, s := seedTemplate(t, db)

	dup := &models.TargetSet{StableID: s.StableID, ExerciseID: e.ID, Weight: 10, Repetitions: 1}
	if err := db.CreateTargetSet(dup); err == nil {
		t.Error("Expected uniqueness violation for duplicate stable ID under one exercise")
	}
}

func TestListSessionsAscending(t *testing.T) {
	db := setupTestDB(t)
	w, _, _ := seedTemplate(t, db)

	now := time.Now()
	later := &models.Session{WorkoutID: w.ID, CompletedAt: now}
	earlier := &models.Session{WorkoutID: w.ID, CompletedAt: now.Add(-24 * time.Hour)}
	for _, s := range []*models.Session{later, earlier} {
		if err := db.CreateSession(s); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}

	sessions, err := db.ListSessions(w.ID)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != earlier.ID {
		t.Error("Sessions not in ascending completion order")
	}
}

func TestSetRecordAverages(t *testing.T) {
	db := setupTestDB(t)
	w, _, s := seedTemplate(t, db)

	session := &models.Session{WorkoutID: w.ID, CompletedAt: time.Now()}
	if err := db.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	for _, weight := range []float64{80, 70, 60} {
		record := &models.SetRecord{StableID: s.StableID, TargetSetID: s.ID, SessionID: session.ID, Weight: weight, Repetitions: 10}
		if err := db.CreateSetRecord(record); err != nil {
			t.Fatalf("CreateSetRecord failed: %v", err)
		}
	}

	averages, err := db.SetRecordAverages(w.ID)
	if err != nil {
		t.Fatalf("SetRecordAverages failed: %v", err)
	}
	if averages.Weight != 70 || averages.Repetitions != 10 || averages.Count != 3 {
		t.Errorf("Averages = %+v, want weight 70, reps 10, count 3", averages)
	}

	count, err := db.CountExercises(w.ID)
	if err != nil {
		t.Fatalf("CountExercises failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountExercises = %d, want 1", count)
	}
}

func TestCardioAveragesSkipNulls(t *testing.T) {
	db := setupTestDB(t)

	w := models.NewWorkout("Run", models.KindCardio)
	if err := db.CreateWorkout(w); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	distances := []*float64{ptr(5.0), nil, ptr(10.0)}
	for i, d := range distances {
		session := &models.Session{WorkoutID: w.ID, CompletedAt: time.Now().Add(time.Duration(i) * time.Hour)}
		if err := db.CreateSession(session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		metrics := &models.CardioMetrics{SessionID: session.ID, Distance: d}
		if err := db.CreateCardioMetrics(metrics); err != nil {
			t.Fatalf("CreateCardioMetrics failed: %v", err)
		}
	}

	averages, err := db.CardioAverages(w.ID)
	if err != nil {
		t.Fatalf("CardioAverages failed: %v", err)
	}
	if averages.Distance != 7.5 {
		t.Errorf("Average distance = %v, want 7.5 (null excluded from denominator)", averages.Distance)
	}
	if averages.Steps != 0 {
		t.Errorf("Average steps = %v, want 0 for never-measured metric", averages.Steps)
	}
}

func TestTransactRollback(t *testing.T) {
	db := setupTestDB(t)

	boom := fmt.Errorf("boom")
	err := db.Transact(func(repo Repository) error {
		w := models.NewWorkout("Doomed", models.KindStrength)
		if err := repo.CreateWorkout(w); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}

	workouts, err := db.ListWorkouts(nil, 0)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 0 {
		t.Errorf("Rolled-back workout is visible: %d rows", len(workouts))
	}
}

func TestTransactCommit(t *testing.T) {
	db := setupTestDB(t)

	err := db.Transact(func(repo Repository) error {
		w := models.NewWorkout("Kept", models.KindStrength)
		return repo.CreateWorkout(w)
	})
	if err != nil {
		t.Fatalf("Transact failed: %v", err)
	}

	workouts, err := db.ListWorkouts(nil, 0)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 1 {
		t.Errorf("Expected 1 workout after commit, got %d", len(workouts))
	}
}

func ptr[T any](v T) *T {
	return &v
}
