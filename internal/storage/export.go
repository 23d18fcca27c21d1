// ABOUTME: Export and import functionality for training data.
// ABOUTME: Supports JSON and YAML formats with stable IDs preserved for history joins.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/splits/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for training data.
type ExportData struct {
	Version    string           `json:"version" yaml:"version"`
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Tool       string           `json:"tool" yaml:"tool"`
	Workouts   []*ExportWorkout `json:"workouts" yaml:"workouts"`
}

// ExportWorkout is one workout template with its full session history.
type ExportWorkout struct {
	Name      string             `json:"name" yaml:"name"`
	Kind      string             `json:"kind" yaml:"kind"`
	CreatedAt time.Time          `json:"created_at" yaml:"created_at"`
	Exercises []*ExportExercise  `json:"exercises,omitempty" yaml:"exercises,omitempty"`
	Sessions  []*ExportSession   `json:"sessions,omitempty" yaml:"sessions,omitempty"`
}

// ExportExercise is one exercise slot with its target sets.
type ExportExercise struct {
	StableID    string             `json:"stable_id" yaml:"stable_id"`
	Name        string             `json:"name" yaml:"name"`
	Description *string            `json:"description,omitempty" yaml:"description,omitempty"`
	Sets        []*ExportTargetSet `json:"sets,omitempty" yaml:"sets,omitempty"`
}

// ExportTargetSet is one set slot. Weight is in kilograms.
type ExportTargetSet struct {
	StableID    string  `json:"stable_id" yaml:"stable_id"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Repetitions int     `json:"repetitions" yaml:"repetitions"`
}

// ExportSession is one dated completion with its snapshot rows. Set
// records reference their target set by stable ID so the join survives
// the round trip through a file.
type ExportSession struct {
	CompletedAt time.Time          `json:"completed_at" yaml:"completed_at"`
	Records     []*ExportSetRecord `json:"records,omitempty" yaml:"records,omitempty"`
	Cardio      *ExportCardio      `json:"cardio,omitempty" yaml:"cardio,omitempty"`
}

// ExportSetRecord is one performed-set snapshot.
type ExportSetRecord struct {
	StableID    string  `json:"stable_id" yaml:"stable_id"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Repetitions int     `json:"repetitions" yaml:"repetitions"`
}

// ExportCardio is the metric snapshot of a cardio session.
type ExportCardio struct {
	Steps          *int64   `json:"steps,omitempty" yaml:"steps,omitempty"`
	Distance       *float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
	DurationMillis *int64   `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	workouts, err := d.ListWorkouts(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "splits",
	}

	for _, w := range workouts {
		ew := &ExportWorkout{
			Name:      w.Name,
			Kind:      string(w.Kind),
			CreatedAt: w.CreatedAt,
		}

		exercises, err := d.ListExercises(w.ID)
		if err != nil {
			return nil, fmt.Errorf("list exercises for workout %d: %w", w.ID, err)
		}
		for _, e := range exercises {
			ee := &ExportExercise{
				StableID:    e.StableID.String(),
				Name:        e.Name,
				Description: e.Description,
			}
			sets, err := d.ListTargetSets(e.ID)
			if err != nil {
				return nil, fmt.Errorf("list target sets for exercise %d: %w", e.ID, err)
			}
			for _, s := range sets {
				ee.Sets = append(ee.Sets, &ExportTargetSet{
					StableID:    s.StableID.String(),
					Weight:      s.Weight,
					Repetitions: s.Repetitions,
				})
			}
			ew.Exercises = append(ew.Exercises, ee)
		}

		sessions, err := d.ListSessions(w.ID)
		if err != nil {
			return nil, fmt.Errorf("list sessions for workout %d: %w", w.ID, err)
		}
		for _, s := range sessions {
			es := &ExportSession{CompletedAt: s.CompletedAt}

			records, err := d.ListSetRecords(s.ID)
			if err != nil {
				return nil, fmt.Errorf("list set records for session %d: %w", s.ID, err)
			}
			for _, r := range records {
				es.Records = append(es.Records, &ExportSetRecord{
					StableID:    r.StableID.String(),
					Weight:      r.Weight,
					Repetitions: r.Repetitions,
				})
			}

			if w.Kind == models.KindCardio {
				cardio, err := d.GetCardioMetrics(s.ID)
				if err == nil {
					es.Cardio = &ExportCardio{
						Steps:          cardio.Steps,
						Distance:       cardio.Distance,
						DurationMillis: cardio.DurationMillis,
					}
				}
			}

			ew.Sessions = append(ew.Sessions, es)
		}

		data.Workouts = append(data.Workouts, ew)
	}

	return data, nil
}

// ImportData loads exported data into the store. The destination should be
// empty before calling this function. The whole import runs in one
// transaction.
func (d *DB) ImportData(data *ExportData) error {
	return d.Transact(func(repo Repository) error {
		for _, ew := range data.Workouts {
			w := &models.Workout{
				Name:      ew.Name,
				Kind:      models.WorkoutKind(ew.Kind),
				CreatedAt: ew.CreatedAt,
			}
			if err := repo.CreateWorkout(w); err != nil {
				return fmt.Errorf("import workout %q: %w", ew.Name, err)
			}

			// Recreate template rows, remembering which surrogate key
			// each stable ID landed on so records can rejoin below.
			setIDs := make(map[string]*models.TargetSet)
			for i, ee := range ew.Exercises {
				stableID, err := uuid.Parse(ee.StableID)
				if err != nil {
					return fmt.Errorf("import exercise %q: bad stable ID: %w", ee.Name, err)
				}
				e := &models.Exercise{
					StableID:    stableID,
					WorkoutID:   w.ID,
					Name:        ee.Name,
					Description: ee.Description,
					Position:    i,
				}
				if err := repo.CreateExercise(e); err != nil {
					return fmt.Errorf("import exercise %q: %w", ee.Name, err)
				}

				for j, es := range ee.Sets {
					setStableID, err := uuid.Parse(es.StableID)
					if err != nil {
						return fmt.Errorf("import set for %q: bad stable ID: %w", ee.Name, err)
					}
					s := &models.TargetSet{
						StableID:    setStableID,
						ExerciseID:  e.ID,
						Weight:      es.Weight,
						Repetitions: es.Repetitions,
						Position:    j,
					}
					if err := repo.CreateTargetSet(s); err != nil {
						return fmt.Errorf("import set for %q: %w", ee.Name, err)
					}
					setIDs[es.StableID] = s
				}
			}

			for _, es := range ew.Sessions {
				session := &models.Session{WorkoutID: w.ID, CompletedAt: es.CompletedAt}
				if err := repo.CreateSession(session); err != nil {
					return fmt.Errorf("import session for %q: %w", ew.Name, err)
				}

				for _, er := range es.Records {
					target, ok := setIDs[er.StableID]
					if !ok {
						// The originating set slot was deleted after this
						// record was written; with it gone the record has
						// no surviving join target.
						continue
					}
					record := &models.SetRecord{
						StableID:    target.StableID,
						TargetSetID: target.ID,
						SessionID:   session.ID,
						Weight:      er.Weight,
						Repetitions: er.Repetitions,
					}
					if err := repo.CreateSetRecord(record); err != nil {
						return fmt.Errorf("import set record for %q: %w", ew.Name, err)
					}
				}

				if es.Cardio != nil {
					cardio := &models.CardioMetrics{
						SessionID:      session.ID,
						Steps:          es.Cardio.Steps,
						Distance:       es.Cardio.Distance,
						DurationMillis: es.Cardio.DurationMillis,
					}
					if err := repo.CreateCardioMetrics(cardio); err != nil {
						return fmt.Errorf("import cardio metrics for %q: %w", ew.Name, err)
					}
				}
			}
		}
		return nil
	})
}

// ExportJSON exports all data as indented JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from a JSON export.
func (d *DB) ImportJSON(raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse import data: %w", err)
	}
	return d.ImportData(&data)
}

// ImportYAML imports data from a YAML export.
func (d *DB) ImportYAML(raw []byte) error {
	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse import data: %w", err)
	}
	return d.ImportData(&data)
}
