// ABOUTME: Session models: dated completions of a workout template.
// ABOUTME: Set records and cardio metrics are immutable snapshots taken at completion time.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one dated completion of a workout. It is created exactly once
// and never mutated; deleting its workout cascades to it.
type Session struct {
	ID          int64
	WorkoutID   int64
	CompletedAt time.Time
}

// SetRecord snapshots a target set as performed in one session: the
// weight (kilograms) and repetitions at the moment of recording, plus a
// copy of the target set's stable ID.
type SetRecord struct {
	ID          int64
	StableID    uuid.UUID
	TargetSetID int64
	SessionID   int64
	Weight      float64
	Repetitions int
}

// CardioMetrics holds the metrics recorded for one cardio session.
// Every field is independently optional: nil means the metric was not
// measured, which is distinct from a measured zero.
type CardioMetrics struct {
	ID             int64
	SessionID      int64
	Steps          *int64
	Distance       *float64 // kilometers
	DurationMillis *int64
}

// NewCardioMetrics builds a snapshot from raw values, normalizing zero
// values to "not recorded". A zero step count, zero distance, or zero
// duration is indistinguishable from an unmeasured metric at the input
// boundary, so it is stored as absent.
func NewCardioMetrics(sessionID int64, steps int64, distance float64, duration time.Duration) *CardioMetrics {
	m := &CardioMetrics{SessionID: sessionID}
	if steps != 0 {
		m.Steps = &steps
	}
	if distance != 0 {
		m.Distance = &distance
	}
	if duration != 0 {
		millis := duration.Milliseconds()
		m.DurationMillis = &millis
	}
	return m
}

// Empty reports whether no metric was recorded.
func (m *CardioMetrics) Empty() bool {
	return m.Steps == nil && m.Distance == nil && m.DurationMillis == nil
}
