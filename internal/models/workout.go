// ABOUTME: Workout template models: workouts, exercises, and target sets.
// ABOUTME: Exercises and sets carry client-assigned stable UUIDs alongside surrogate keys.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutKind distinguishes the two template schemas.
type WorkoutKind string

const (
	KindStrength WorkoutKind = "strength"
	KindCardio   WorkoutKind = "cardio"
)

// IsValidWorkoutKind checks if a string is a valid workout kind.
func IsValidWorkoutKind(s string) bool {
	return s == string(KindStrength) || s == string(KindCardio)
}

// Workout is the root of a reusable template. Strength workouts own
// exercises with target sets; cardio workouts record metrics per session.
type Workout struct {
	ID        int64
	Name      string
	Kind      WorkoutKind
	CreatedAt time.Time
}

// NewWorkout creates a new workout template with the current timestamp.
func NewWorkout(name string, kind WorkoutKind) *Workout {
	return &Workout{
		Name:      name,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// Exercise is one slot in a strength template. StableID identifies the
// slot across edits; ID is the storage surrogate key and changes only if
// the slot is deleted and recreated.
type Exercise struct {
	ID          int64
	StableID    uuid.UUID
	WorkoutID   int64
	Name        string
	Description *string
	Position    int
	Sets        []TargetSet // Populated when fetching the full template
}

// NewExercise creates an exercise slot with a freshly assigned stable ID.
func NewExercise(workoutID int64, name string) *Exercise {
	return &Exercise{
		StableID:  uuid.New(),
		WorkoutID: workoutID,
		Name:      name,
	}
}

// WithDescription sets the exercise description.
func (e *Exercise) WithDescription(desc string) *Exercise {
	e.Description = &desc
	return e
}

// TargetSet is the planned weight and repetitions for one set slot of an
// exercise. Weight is stored in kilograms. StableID follows the same
// contract as Exercise.StableID.
type TargetSet struct {
	ID          int64
	StableID    uuid.UUID
	ExerciseID  int64
	Weight      float64
	Repetitions int
	Position    int
}

// NewTargetSet creates a set slot with a freshly assigned stable ID.
func NewTargetSet(exerciseID int64, weight float64, repetitions int) *TargetSet {
	return &TargetSet{
		StableID:    uuid.New(),
		ExerciseID:  exerciseID,
		Weight:      weight,
		Repetitions: repetitions,
	}
}
