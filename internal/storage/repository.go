// ABOUTME: Repository interface for workout template and session storage.
// ABOUTME: Defines the CRUD, aggregate, and transaction contract the engine consumes.
package storage

import (
	"github.com/harperreed/splits/internal/models"
)

// Repository defines the storage interface for training data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Workout template operations
	CreateWorkout(w *models.Workout) error
	GetWorkout(id int64) (*models.Workout, error)
	GetWorkoutByName(name string) (*models.Workout, error)
	ListWorkouts(kind *models.WorkoutKind, limit int) ([]*models.Workout, error)
	RenameWorkout(id int64, name string) error
	DeleteWorkout(id int64) error

	// Exercise operations
	CreateExercise(e *models.Exercise) error
	UpdateExercise(e *models.Exercise) error
	DeleteExercises(ids []int64) error
	ListExercises(workoutID int64) ([]*models.Exercise, error)

	// Target set operations
	CreateTargetSet(s *models.TargetSet) error
	UpdateTargetSet(s *models.TargetSet) error
	DeleteTargetSets(ids []int64) error
	ListTargetSets(exerciseID int64) ([]*models.TargetSet, error)

	// Session operations
	CreateSession(s *models.Session) error
	GetSession(id int64) (*models.Session, error)
	ListSessions(workoutID int64) ([]*models.Session, error)
	DeleteSession(id int64) error
	CreateSetRecord(r *models.SetRecord) error
	ListSetRecords(sessionID int64) ([]*models.SetRecord, error)
	CreateCardioMetrics(m *models.CardioMetrics) error
	GetCardioMetrics(sessionID int64) (*models.CardioMetrics, error)

	// Aggregates for workout statistics
	SetRecordAverages(workoutID int64) (*SetRecordAverages, error)
	CountExercises(workoutID int64) (int, error)
	CardioAverages(workoutID int64) (*CardioAverages, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error
	ExportJSON() ([]byte, error)
	ExportYAML() ([]byte, error)
	ImportJSON(raw []byte) error
	ImportYAML(raw []byte) error

	// Transactions and lifecycle
	Transact(fn func(Repository) error) error
	Close() error
}

// SetRecordAverages holds store-side means over every set record of a
// workout, plus the record count.
type SetRecordAverages struct {
	Weight      float64
	Repetitions float64
	Count       int
}

// CardioAverages holds store-side means over the cardio metrics of a
// workout's sessions. NULL metrics are excluded from each denominator, so
// an unmeasured session does not drag an average toward zero.
type CardioAverages struct {
	Steps          float64
	Distance       float64
	DurationMillis float64
}
