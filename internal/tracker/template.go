// ABOUTME: Template read path: loads a workout with exercises and sets, and converts to edit form.
// ABOUTME: Edit surfaces mutate the edited form and hand it back to the reconciler.
package tracker

import (
	"errors"

	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/storage"
	"github.com/harperreed/splits/internal/units"
)

// Template loads a workout and its full template: exercises in display
// order, each with its target sets populated.
func (t *Tracker) Template(workoutID int64) (*models.Workout, []*models.Exercise, error) {
	workout, err := t.repo.GetWorkout(workoutID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	exercises, err := t.repo.ListExercises(workoutID)
	if err != nil {
		return nil, nil, err
	}

	for _, e := range exercises {
		sets, err := t.repo.ListTargetSets(e.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, s := range sets {
			e.Sets = append(e.Sets, *s)
		}
	}

	return workout, exercises, nil
}

// EditedTemplate converts persisted exercises into edited form, with
// weights converted from kilograms to the given display unit. Callers
// apply their changes to the result and pass it back to SaveTemplate or
// FinishStrength.
func EditedTemplate(exercises []*models.Exercise, weightUnit units.WeightUnit) []EditedExercise {
	edited := make([]EditedExercise, 0, len(exercises))
	for _, e := range exercises {
		ee := EditedExercise{
			StableID: e.StableID,
			Name:     e.Name,
		}
		if e.Description != nil {
			ee.Description = *e.Description
		}
		for _, s := range e.Sets {
			ee.Sets = append(ee.Sets, EditedSet{
				StableID:    s.StableID,
				Weight:      units.FromKilograms(s.Weight, weightUnit),
				Repetitions: s.Repetitions,
			})
		}
		edited = append(edited, ee)
	}
	return edited
}
