// ABOUTME: Stats aggregator: longitudinal per-exercise series and scalar averages.
// ABOUTME: Weight series carry the last known value across gap sessions; repetitions do not.
package tracker

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/storage"
	"github.com/harperreed/splits/internal/units"
)

// WorkoutStats is the full statistics view of one workout.
type WorkoutStats struct {
	Workout   *models.Workout
	Exercises []ExerciseSeries // strength workouts
	Cardio    []CardioPoint    // cardio workouts
	Averages  Averages
}

// ExerciseSeries is the time series of one exercise slot, with one point
// per workout session so chart domains stay continuous.
type ExerciseSeries struct {
	ExerciseID int64
	StableID   uuid.UUID
	Name       string
	Points     []SeriesPoint
}

// SeriesPoint is the per-session summary for one exercise. Weights are in
// kilograms. A session in which the exercise was not performed reports
// the carried-forward weights and zero repetitions.
type SeriesPoint struct {
	SessionID      int64
	CompletedAt    time.Time
	MinWeight      float64
	MaxWeight      float64
	MinRepetitions int
	MaxRepetitions int
	Performed      bool
}

// CardioPoint is the raw per-session cardio sample. Nil fields mean the
// metric was not measured in that session; gaps are not filled.
type CardioPoint struct {
	SessionID      int64
	CompletedAt    time.Time
	Steps          *int64
	Distance       *float64
	DurationMillis *int64
}

// Averages are flat means across the workout's whole history, rounded to
// two decimal places. Metrics with no data average to zero.
type Averages struct {
	Weight          float64
	Repetitions     float64
	SetsPerExercise float64
	Steps           float64
	Distance        float64
	DurationMillis  float64
}

// WorkoutStats derives the statistics view for one workout. Returns
// ErrNotFound if the workout no longer exists.
func (t *Tracker) WorkoutStats(workoutID int64) (*WorkoutStats, error) {
	workout, err := t.repo.GetWorkout(workoutID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sessions, err := t.repo.ListSessions(workoutID)
	if err != nil {
		return nil, err
	}

	stats := &WorkoutStats{Workout: workout}

	switch workout.Kind {
	case models.KindCardio:
		if err := t.cardioSeries(stats, sessions); err != nil {
			return nil, err
		}
		averages, err := t.repo.CardioAverages(workoutID)
		if err != nil {
			return nil, err
		}
		stats.Averages.Steps = units.Round2(averages.Steps)
		stats.Averages.Distance = units.Round2(averages.Distance)
		stats.Averages.DurationMillis = units.Round2(averages.DurationMillis)

	default:
		if err := t.strengthSeries(stats, workoutID, sessions); err != nil {
			return nil, err
		}
		averages, err := t.repo.SetRecordAverages(workoutID)
		if err != nil {
			return nil, err
		}
		stats.Averages.Weight = units.Round2(averages.Weight)
		stats.Averages.Repetitions = units.Round2(averages.Repetitions)

		exerciseCount, err := t.repo.CountExercises(workoutID)
		if err != nil {
			return nil, err
		}
		if exerciseCount > 0 {
			stats.Averages.SetsPerExercise = units.Round2(float64(averages.Count) / float64(exerciseCount))
		}
	}

	return stats, nil
}

// strengthSeries builds one time series per exercise slot, joining set
// records to exercises through their target sets in memory.
func (t *Tracker) strengthSeries(stats *WorkoutStats, workoutID int64, sessions []*models.Session) error {
	exercises, err := t.repo.ListExercises(workoutID)
	if err != nil {
		return err
	}

	// Map each target set's surrogate key to its exercise slot. Records
	// of deleted sets are already gone via cascade, so every surviving
	// record resolves.
	setExercise := make(map[int64]int)
	for i, e := range exercises {
		sets, err := t.repo.ListTargetSets(e.ID)
		if err != nil {
			return err
		}
		for _, s := range sets {
			setExercise[s.ID] = i
		}
	}

	recordsBySession := make(map[int64][]*models.SetRecord, len(sessions))
	for _, s := range sessions {
		records, err := t.repo.ListSetRecords(s.ID)
		if err != nil {
			return err
		}
		recordsBySession[s.ID] = records
	}

	for i, e := range exercises {
		series := ExerciseSeries{
			ExerciseID: e.ID,
			StableID:   e.StableID,
			Name:       e.Name,
		}

		// The weight series carries the last known value across sessions
		// where this exercise was skipped; repetitions reset to zero
		// instead. The asymmetry is deliberate product behavior.
		carryMin, carryMax := 0.0, 0.0

		for _, session := range sessions {
			point := SeriesPoint{SessionID: session.ID, CompletedAt: session.CompletedAt}

			for _, r := range recordsBySession[session.ID] {
				if idx, ok := setExercise[r.TargetSetID]; !ok || idx != i {
					continue
				}
				if !point.Performed {
					point.Performed = true
					point.MinWeight, point.MaxWeight = r.Weight, r.Weight
					point.MinRepetitions, point.MaxRepetitions = r.Repetitions, r.Repetitions
					continue
				}
				point.MinWeight = min(point.MinWeight, r.Weight)
				point.MaxWeight = max(point.MaxWeight, r.Weight)
				point.MinRepetitions = min(point.MinRepetitions, r.Repetitions)
				point.MaxRepetitions = max(point.MaxRepetitions, r.Repetitions)
			}

			if point.Performed {
				carryMin, carryMax = point.MinWeight, point.MaxWeight
			} else {
				point.MinWeight, point.MaxWeight = carryMin, carryMax
			}

			series.Points = append(series.Points, point)
		}

		stats.Exercises = append(stats.Exercises, series)
	}

	return nil
}

// cardioSeries collects the raw per-session metric samples.
func (t *Tracker) cardioSeries(stats *WorkoutStats, sessions []*models.Session) error {
	for _, session := range sessions {
		point := CardioPoint{SessionID: session.ID, CompletedAt: session.CompletedAt}

		metrics, err := t.repo.GetCardioMetrics(session.ID)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return err
			}
		} else {
			point.Steps = metrics.Steps
			point.Distance = metrics.Distance
			point.DurationMillis = metrics.DurationMillis
		}

		stats.Cardio = append(stats.Cardio, point)
	}
	return nil
}
