// ABOUTME: Session, set record, and cardio metric operations for SQLite storage.
// ABOUTME: Session rows are written once and never updated; reads feed the stats engine.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/splits/internal/models"
)

// CreateSession stores a new session row and assigns its surrogate ID.
func (d *DB) CreateSession(s *models.Session) error {
	query := `
		INSERT INTO sessions (workout_id, completed_at)
		VALUES (?, ?)
	`
	result, err := d.q.Exec(query, s.WorkoutID, s.CompletedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	s.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by its surrogate ID.
func (d *DB) GetSession(id int64) (*models.Session, error) {
	query := `
		SELECT id, workout_id, completed_at
		FROM sessions
		WHERE id = ?
	`
	var s models.Session
	var completedAt string

	err := d.q.QueryRow(query, id).Scan(&s.ID, &s.WorkoutID, &completedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
	return &s, nil
}

// ListSessions retrieves all sessions of a workout in ascending completion
// order, the order the stats engine consumes them in.
func (d *DB) ListSessions(workoutID int64) ([]*models.Session, error) {
	query := `
		SELECT id, workout_id, completed_at
		FROM sessions
		WHERE workout_id = ?
		ORDER BY completed_at ASC, id ASC
	`
	rows, err := d.q.Query(query, workoutID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		var s models.Session
		var completedAt string

		if err := rows.Scan(&s.ID, &s.WorkoutID, &completedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		s.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		sessions = append(sessions, &s)
	}

	return sessions, rows.Err()
}

// DeleteSession removes a session and its snapshot rows (cascade delete).
func (d *DB) DeleteSession(id int64) error {
	result, err := d.q.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	return nil
}

// CreateSetRecord stores one performed-set snapshot.
func (d *DB) CreateSetRecord(r *models.SetRecord) error {
	query := `
		INSERT INTO set_records (stable_id, target_set_id, session_id, weight, repetitions)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := d.q.Exec(query, r.StableID.String(), r.TargetSetID, r.SessionID, r.Weight, r.Repetitions)
	if err != nil {
		return fmt.Errorf("create set record: %w", err)
	}

	r.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create set record: %w", err)
	}
	return nil
}

// ListSetRecords retrieves the set records of one session.
func (d *DB) ListSetRecords(sessionID int64) ([]*models.SetRecord, error) {
	query := `
		SELECT id, stable_id, target_set_id, session_id, weight, repetitions
		FROM set_records
		WHERE session_id = ?
		ORDER BY id ASC
	`
	rows, err := d.q.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list set records: %w", err)
	}
	defer rows.Close()

	var records []*models.SetRecord
	for rows.Next() {
		var r models.SetRecord
		var stableID string

		if err := rows.Scan(&r.ID, &stableID, &r.TargetSetID, &r.SessionID, &r.Weight, &r.Repetitions); err != nil {
			return nil, fmt.Errorf("scan set record: %w", err)
		}

		r.StableID, _ = uuid.Parse(stableID)
		records = append(records, &r)
	}

	return records, rows.Err()
}

// CreateCardioMetrics stores the metric snapshot of one cardio session.
func (d *DB) CreateCardioMetrics(m *models.CardioMetrics) error {
	query := `
		INSERT INTO cardio_metrics (session_id, steps, distance, duration_ms)
		VALUES (?, ?, ?, ?)
	`
	result, err := d.q.Exec(query, m.SessionID, m.Steps, m.Distance, m.DurationMillis)
	if err != nil {
		return fmt.Errorf("create cardio metrics: %w", err)
	}

	m.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create cardio metrics: %w", err)
	}
	return nil
}

// GetCardioMetrics retrieves the metric snapshot of one session.
func (d *DB) GetCardioMetrics(sessionID int64) (*models.CardioMetrics, error) {
	query := `
		SELECT id, session_id, steps, distance, duration_ms
		FROM cardio_metrics
		WHERE session_id = ?
	`
	var m models.CardioMetrics
	var steps, durationMillis sql.NullInt64
	var distance sql.NullFloat64

	err := d.q.QueryRow(query, sessionID).Scan(&m.ID, &m.SessionID, &steps, &distance, &durationMillis)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cardio metrics for session %d: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("scan cardio metrics: %w", err)
	}

	if steps.Valid {
		m.Steps = &steps.Int64
	}
	if distance.Valid {
		m.Distance = &distance.Float64
	}
	if durationMillis.Valid {
		m.DurationMillis = &durationMillis.Int64
	}

	return &m, nil
}

// SetRecordAverages computes the flat mean weight and repetitions over
// every set record ever logged for a workout, via the session join.
func (d *DB) SetRecordAverages(workoutID int64) (*SetRecordAverages, error) {
	query := `
		SELECT COALESCE(AVG(r.weight), 0), COALESCE(AVG(r.repetitions), 0), COUNT(r.id)
		FROM set_records r
		JOIN sessions s ON s.id = r.session_id
		WHERE s.workout_id = ?
	`
	var a SetRecordAverages
	err := d.q.QueryRow(query, workoutID).Scan(&a.Weight, &a.Repetitions, &a.Count)
	if err != nil {
		return nil, fmt.Errorf("set record averages: %w", err)
	}
	return &a, nil
}

// CountExercises counts the exercise slots currently in a workout's template.
func (d *DB) CountExercises(workoutID int64) (int, error) {
	var count int
	err := d.q.QueryRow("SELECT COUNT(id) FROM exercises WHERE workout_id = ?", workoutID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return count, nil
}

// CardioAverages computes per-metric means over a workout's cardio
// sessions. AVG skips NULLs, so sessions that did not measure a metric
// stay out of that metric's denominator; a metric never measured at all
// averages to zero.
func (d *DB) CardioAverages(workoutID int64) (*CardioAverages, error) {
	query := `
		SELECT COALESCE(AVG(m.steps), 0), COALESCE(AVG(m.distance), 0), COALESCE(AVG(m.duration_ms), 0)
		FROM cardio_metrics m
		JOIN sessions s ON s.id = m.session_id
		WHERE s.workout_id = ?
	`
	var a CardioAverages
	err := d.q.QueryRow(query, workoutID).Scan(&a.Steps, &a.Distance, &a.DurationMillis)
	if err != nil {
		return nil, fmt.Errorf("cardio averages: %w", err)
	}
	return &a, nil
}
