// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for workouts, exercises, target sets, sessions, and session snapshots.
package storage

// initSchema creates or updates the database schema.
//
// Surrogate integer keys are the join keys inside the store; the stable_id
// columns carry the client-assigned UUIDs that identify exercise and set
// slots across template edits. Deleting a slot cascades through its
// historical set records.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('strength', 'cardio')),
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		stable_id TEXT NOT NULL,
		workout_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		UNIQUE (workout_id, stable_id),
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS target_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		stable_id TEXT NOT NULL,
		exercise_id INTEGER NOT NULL,
		weight REAL NOT NULL,
		repetitions INTEGER NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		UNIQUE (exercise_id, stable_id),
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL,
		completed_at DATETIME NOT NULL,
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS set_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		stable_id TEXT NOT NULL,
		target_set_id INTEGER NOT NULL,
		session_id INTEGER NOT NULL,
		weight REAL NOT NULL,
		repetitions INTEGER NOT NULL,
		FOREIGN KEY (target_set_id) REFERENCES target_sets(id) ON DELETE CASCADE,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS cardio_metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL UNIQUE,
		steps INTEGER,
		distance REAL,
		duration_ms INTEGER,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_workout ON exercises(workout_id, position);
	CREATE INDEX IF NOT EXISTS idx_target_sets_exercise ON target_sets(exercise_id, position);
	CREATE INDEX IF NOT EXISTS idx_sessions_workout ON sessions(workout_id, completed_at);
	CREATE INDEX IF NOT EXISTS idx_set_records_session ON set_records(session_id);
	CREATE INDEX IF NOT EXISTS idx_set_records_target_set ON set_records(target_set_id);
	`

	_, err := d.q.Exec(schema)
	return err
}
