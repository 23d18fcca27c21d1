// ABOUTME: Template reconciler: diffs an edited template against persisted rows by stable ID.
// ABOUTME: Applies deletes, in-place updates, and inserts without disturbing historical joins.
package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/storage"
	"github.com/harperreed/splits/internal/units"
)

// SaveTemplate reconciles an edited strength template against the store.
//
// Rows whose stable ID survives the edit are updated in place, keeping
// their surrogate keys and with them every historical set record. Rows
// whose stable ID is gone are deleted, cascading through their history.
// New stable IDs become inserts. Returns ErrNotFound if the workout does
// not exist; no partial effect is ever visible.
func (t *Tracker) SaveTemplate(workoutID int64, name string, exercises []EditedExercise, weightUnit units.WeightUnit) error {
	return t.repo.Transact(func(repo storage.Repository) error {
		_, err := reconcile(repo, workoutID, name, exercises, weightUnit)
		return err
	})
}

// reconcileResult exposes where each edited set slot landed, keyed by
// stable ID. The session recorder uses it to resolve snapshot targets.
type reconcileResult struct {
	sets map[uuid.UUID]*models.TargetSet
}

// reconcile runs the diff inside the caller's transaction.
func reconcile(repo storage.Repository, workoutID int64, name string, edited []EditedExercise, weightUnit units.WeightUnit) (*reconcileResult, error) {
	workout, err := repo.GetWorkout(workoutID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" && name != workout.Name {
		if err := repo.RenameWorkout(workoutID, name); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("workout %d disappeared during save: %w", workoutID, err)
			}
			return nil, err
		}
	}

	persisted, err := repo.ListExercises(workoutID)
	if err != nil {
		return nil, err
	}

	persistedByStable := make(map[uuid.UUID]*models.Exercise, len(persisted))
	for _, e := range persisted {
		persistedByStable[e.StableID] = e
	}

	// Deletions go first at each level, so a stable ID that was deleted
	// and recreated within one edit cannot trip the per-parent
	// uniqueness constraint.
	editedStable := make(map[uuid.UUID]bool, len(edited))
	for _, e := range edited {
		editedStable[e.StableID] = true
	}
	var doomed []int64
	for _, e := range persisted {
		if !editedStable[e.StableID] {
			doomed = append(doomed, e.ID)
		}
	}
	if err := repo.DeleteExercises(doomed); err != nil {
		return nil, err
	}

	result := &reconcileResult{sets: make(map[uuid.UUID]*models.TargetSet)}

	for i, ee := range edited {
		desc := normalizeDescription(ee.Description)

		exercise, ok := persistedByStable[ee.StableID]
		if ok {
			if exercise.Name != ee.Name || !equalStrings(exercise.Description, desc) || exercise.Position != i {
				exercise.Name = ee.Name
				exercise.Description = desc
				exercise.Position = i
				if err := repo.UpdateExercise(exercise); err != nil {
					return nil, err
				}
			}
		} else {
			exercise = &models.Exercise{
				StableID:    ee.StableID,
				WorkoutID:   workoutID,
				Name:        ee.Name,
				Description: desc,
				Position:    i,
			}
			if err := repo.CreateExercise(exercise); err != nil {
				return nil, err
			}
		}

		if err := reconcileSets(repo, exercise.ID, ee.Sets, weightUnit, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// reconcileSets applies the same diff one level down, for the set slots of
// a single exercise. Edited weights arrive in the display unit and are
// converted to kilograms before any comparison or write.
func reconcileSets(repo storage.Repository, exerciseID int64, edited []EditedSet, weightUnit units.WeightUnit, result *reconcileResult) error {
	persisted, err := repo.ListTargetSets(exerciseID)
	if err != nil {
		return err
	}

	persistedByStable := make(map[uuid.UUID]*models.TargetSet, len(persisted))
	for _, s := range persisted {
		persistedByStable[s.StableID] = s
	}

	editedStable := make(map[uuid.UUID]bool, len(edited))
	for _, s := range edited {
		editedStable[s.StableID] = true
	}
	var doomed []int64
	for _, s := range persisted {
		if !editedStable[s.StableID] {
			doomed = append(doomed, s.ID)
		}
	}
	if err := repo.DeleteTargetSets(doomed); err != nil {
		return err
	}

	for i, es := range edited {
		weight := units.ToKilograms(es.Weight, weightUnit)

		set, ok := persistedByStable[es.StableID]
		if ok {
			if set.Weight != weight || set.Repetitions != es.Repetitions || set.Position != i {
				set.Weight = weight
				set.Repetitions = es.Repetitions
				set.Position = i
				if err := repo.UpdateTargetSet(set); err != nil {
					return err
				}
			}
		} else {
			set = &models.TargetSet{
				StableID:    es.StableID,
				ExerciseID:  exerciseID,
				Weight:      weight,
				Repetitions: es.Repetitions,
				Position:    i,
			}
			if err := repo.CreateTargetSet(set); err != nil {
				return err
			}
		}

		result.sets[es.StableID] = set
	}

	return nil
}

// normalizeDescription maps an empty edited description to "none".
func normalizeDescription(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func equalStrings(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
