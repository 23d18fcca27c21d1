// ABOUTME: Workout, exercise, and target set CRUD operations for SQLite storage.
// ABOUTME: Implements the template side of the Repository interface.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/splits/internal/models"
)

// CreateWorkout stores a new workout template and assigns its surrogate ID.
func (d *DB) CreateWorkout(w *models.Workout) error {
	query := `
		INSERT INTO workouts (name, kind, created_at)
		VALUES (?, ?, ?)
	`
	result, err := d.q.Exec(query, w.Name, string(w.Kind), w.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}

	w.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

// GetWorkout retrieves a workout by its surrogate ID.
func (d *DB) GetWorkout(id int64) (*models.Workout, error) {
	query := `
		SELECT id, name, kind, created_at
		FROM workouts
		WHERE id = ?
	`
	return scanWorkout(d.q.QueryRow(query, id))
}

// GetWorkoutByName retrieves a workout by exact name.
// An ambiguous name (two workouts named the same) is an error.
func (d *DB) GetWorkoutByName(name string) (*models.Workout, error) {
	query := `
		SELECT id, name, kind, created_at
		FROM workouts
		WHERE name = ?
	`
	rows, err := d.q.Query(query, name)
	if err != nil {
		return nil, fmt.Errorf("get workout by name: %w", err)
	}
	defer rows.Close()

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, fmt.Errorf("workout %q: %w", name, ErrNotFound)
	}
	if len(workouts) > 1 {
		return nil, fmt.Errorf("ambiguous workout name %q: matches multiple workouts", name)
	}
	return workouts[0], nil
}

// ListWorkouts retrieves workouts with optional filtering by kind.
// Results are sorted by CreatedAt descending (most recent first).
func (d *DB) ListWorkouts(kind *models.WorkoutKind, limit int) ([]*models.Workout, error) {
	var query string
	var args []any

	if kind != nil {
		query = `
			SELECT id, name, kind, created_at
			FROM workouts
			WHERE kind = ?
			ORDER BY created_at DESC, id DESC
		`
		args = append(args, string(*kind))
	} else {
		query = `
			SELECT id, name, kind, created_at
			FROM workouts
			ORDER BY created_at DESC, id DESC
		`
	}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// RenameWorkout updates a workout's name in place.
func (d *DB) RenameWorkout(id int64, name string) error {
	result, err := d.q.Exec("UPDATE workouts SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("rename workout: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("workout %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteWorkout removes a workout, its template rows, and its entire
// session history (cascade delete).
func (d *DB) DeleteWorkout(id int64) error {
	result, err := d.q.Exec("DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("workout %d: %w", id, ErrNotFound)
	}
	return nil
}

// CreateExercise stores a new exercise slot and assigns its surrogate ID.
func (d *DB) CreateExercise(e *models.Exercise) error {
	query := `
		INSERT INTO exercises (stable_id, workout_id, name, description, position)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := d.q.Exec(query, e.StableID.String(), e.WorkoutID, e.Name, e.Description, e.Position)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}

	e.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// UpdateExercise rewrites an exercise's mutable columns, preserving its
// surrogate key and therefore all historical joins.
func (d *DB) UpdateExercise(e *models.Exercise) error {
	query := `
		UPDATE exercises
		SET name = ?, description = ?, position = ?
		WHERE id = ?
	`
	result, err := d.q.Exec(query, e.Name, e.Description, e.Position, e.ID)
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("exercise %d: %w", e.ID, ErrNotFound)
	}
	return nil
}

// DeleteExercises removes exercise slots by surrogate ID. Their target
// sets and historical set records go with them (cascade delete).
func (d *DB) DeleteExercises(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf("DELETE FROM exercises WHERE id IN (%s)", placeholders(len(ids)))
	if _, err := d.q.Exec(query, int64Args(ids)...); err != nil {
		return fmt.Errorf("delete exercises: %w", err)
	}
	return nil
}

// ListExercises retrieves the exercise slots of a workout in display order,
// without their sets.
func (d *DB) ListExercises(workoutID int64) ([]*models.Exercise, error) {
	query := `
		SELECT id, stable_id, workout_id, name, description, position
		FROM exercises
		WHERE workout_id = ?
		ORDER BY position ASC, id ASC
	`
	rows, err := d.q.Query(query, workoutID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		var e models.Exercise
		var stableID string
		var description sql.NullString

		if err := rows.Scan(&e.ID, &stableID, &e.WorkoutID, &e.Name, &description, &e.Position); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}

		e.StableID, _ = uuid.Parse(stableID)
		if description.Valid {
			e.Description = &description.String
		}

		exercises = append(exercises, &e)
	}

	return exercises, rows.Err()
}

// CreateTargetSet stores a new set slot and assigns its surrogate ID.
func (d *DB) CreateTargetSet(s *models.TargetSet) error {
	query := `
		INSERT INTO target_sets (stable_id, exercise_id, weight, repetitions, position)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := d.q.Exec(query, s.StableID.String(), s.ExerciseID, s.Weight, s.Repetitions, s.Position)
	if err != nil {
		return fmt.Errorf("create target set: %w", err)
	}

	s.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create target set: %w", err)
	}
	return nil
}

// UpdateTargetSet rewrites a set slot's target values in place.
func (d *DB) UpdateTargetSet(s *models.TargetSet) error {
	query := `
		UPDATE target_sets
		SET weight = ?, repetitions = ?, position = ?
		WHERE id = ?
	`
	result, err := d.q.Exec(query, s.Weight, s.Repetitions, s.Position, s.ID)
	if err != nil {
		return fmt.Errorf("update target set: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update target set: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("target set %d: %w", s.ID, ErrNotFound)
	}
	return nil
}

// DeleteTargetSets removes set slots by surrogate ID, cascading to their
// historical set records.
func (d *DB) DeleteTargetSets(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf("DELETE FROM target_sets WHERE id IN (%s)", placeholders(len(ids)))
	if _, err := d.q.Exec(query, int64Args(ids)...); err != nil {
		return fmt.Errorf("delete target sets: %w", err)
	}
	return nil
}

// ListTargetSets retrieves the set slots of an exercise in display order.
func (d *DB) ListTargetSets(exerciseID int64) ([]*models.TargetSet, error) {
	query := `
		SELECT id, stable_id, exercise_id, weight, repetitions, position
		FROM target_sets
		WHERE exercise_id = ?
		ORDER BY position ASC, id ASC
	`
	rows, err := d.q.Query(query, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("list target sets: %w", err)
	}
	defer rows.Close()

	var sets []*models.TargetSet
	for rows.Next() {
		var s models.TargetSet
		var stableID string

		if err := rows.Scan(&s.ID, &stableID, &s.ExerciseID, &s.Weight, &s.Repetitions, &s.Position); err != nil {
			return nil, fmt.Errorf("scan target set: %w", err)
		}

		s.StableID, _ = uuid.Parse(stableID)
		sets = append(sets, &s)
	}

	return sets, rows.Err()
}

// placeholders builds a "?, ?, ?" list for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// int64Args widens an ID slice for variadic query arguments.
func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// scanWorkout scans a single row into a Workout struct.
func scanWorkout(row *sql.Row) (*models.Workout, error) {
	var w models.Workout
	var kind, createdAt string

	err := row.Scan(&w.ID, &w.Name, &kind, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("workout: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scan workout: %w", err)
	}

	w.Kind = models.WorkoutKind(kind)
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &w, nil
}

// scanWorkouts scans multiple rows into a slice of Workouts.
func scanWorkouts(rows *sql.Rows) ([]*models.Workout, error) {
	var workouts []*models.Workout

	for rows.Next() {
		var w models.Workout
		var kind, createdAt string

		if err := rows.Scan(&w.ID, &w.Name, &kind, &createdAt); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}

		w.Kind = models.WorkoutKind(kind)
		w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		workouts = append(workouts, &w)
	}

	return workouts, rows.Err()
}
