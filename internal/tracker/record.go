// ABOUTME: Session recorder: turns performed sets or cardio metrics into immutable session rows.
// ABOUTME: Reconciliation and recording run as one transaction so snapshots reference fresh targets.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/storage"
	"github.com/harperreed/splits/internal/units"
)

// FinishStrength reconciles the edited template and records a session for
// the sets marked done, all in one transaction.
//
// When no set is marked done, no session is created and nil is returned —
// but the template edits still persist. The zero time means "now".
func (t *Tracker) FinishStrength(workoutID int64, name string, exercises []EditedExercise, weightUnit units.WeightUnit, at time.Time) (*models.Session, error) {
	var session *models.Session

	err := t.repo.Transact(func(repo storage.Repository) error {
		result, err := reconcile(repo, workoutID, name, exercises, weightUnit)
		if err != nil {
			return err
		}

		performed := 0
		for _, e := range exercises {
			for _, s := range e.Sets {
				if s.Done {
					performed++
				}
			}
		}
		if performed == 0 {
			return nil
		}

		if at.IsZero() {
			at = time.Now()
		}
		session = &models.Session{WorkoutID: workoutID, CompletedAt: at}
		if err := repo.CreateSession(session); err != nil {
			return err
		}

		for _, e := range exercises {
			for _, s := range e.Sets {
				if !s.Done {
					continue
				}
				target, ok := result.sets[s.StableID]
				if !ok {
					return fmt.Errorf("performed set %s not present in reconciled template", s.StableID)
				}
				record := &models.SetRecord{
					StableID:    target.StableID,
					TargetSetID: target.ID,
					SessionID:   session.ID,
					Weight:      target.Weight,
					Repetitions: target.Repetitions,
				}
				if err := repo.CreateSetRecord(record); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// FinishCardio records a cardio session. Unlike strength sessions there is
// no performed filter: the session is created unconditionally, carrying
// whichever metrics were measured. Zero-valued metrics are stored as
// absent, so "did not measure" and "measured zero" stay distinguishable.
// Distance arrives in the display unit and is stored in kilometers.
func (t *Tracker) FinishCardio(workoutID int64, steps int64, distance float64, distanceUnit units.DistanceUnit, duration time.Duration, at time.Time) (*models.Session, error) {
	var session *models.Session

	err := t.repo.Transact(func(repo storage.Repository) error {
		workout, err := repo.GetWorkout(workoutID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if workout.Kind != models.KindCardio {
			return fmt.Errorf("workout %q is not a cardio workout", workout.Name)
		}

		if at.IsZero() {
			at = time.Now()
		}
		session = &models.Session{WorkoutID: workoutID, CompletedAt: at}
		if err := repo.CreateSession(session); err != nil {
			return err
		}

		metrics := models.NewCardioMetrics(session.ID, steps, units.ToKilometers(distance, distanceUnit), duration)
		return repo.CreateCardioMetrics(metrics)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}
