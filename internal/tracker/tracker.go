// ABOUTME: Tracker is the template reconciliation and session recording engine.
// ABOUTME: Defines the edited-template input types and the engine's error contract.
package tracker

import (
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/splits/internal/storage"
)

// ErrNotFound signals that the referenced workout does not exist. Save and
// finish operations treat this as a no-op precondition; callers decide how
// to surface it.
var ErrNotFound = errors.New("workout not found")

// Tracker coordinates template edits, session recording, and stats reads
// against a Repository. All writes of one call run in one transaction.
type Tracker struct {
	repo storage.Repository
}

// New creates a Tracker backed by the given repository.
func New(repo storage.Repository) *Tracker {
	return &Tracker{repo: repo}
}

// EditedExercise is one exercise slot of an edited template, as assembled
// by the caller. StableID binds it to its persisted counterpart; a stable
// ID the store has never seen makes it an insert.
type EditedExercise struct {
	StableID    uuid.UUID
	Name        string
	Description string // empty means no description
	Sets        []EditedSet
}

// EditedSet is one set slot of an edited exercise. Weight is in the
// display unit supplied alongside the edit; Done marks the set as
// performed in the current sitting.
type EditedSet struct {
	StableID    uuid.UUID
	Weight      float64
	Repetitions int
	Done        bool
}

// NewEditedExercise builds an exercise slot with a fresh stable ID.
func NewEditedExercise(name string) EditedExercise {
	return EditedExercise{StableID: uuid.New(), Name: name}
}

// NewEditedSet builds a set slot with a fresh stable ID.
func NewEditedSet(weight float64, repetitions int) EditedSet {
	return EditedSet{StableID: uuid.New(), Weight: weight, Repetitions: repetitions}
}
