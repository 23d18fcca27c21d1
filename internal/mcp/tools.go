// ABOUTME: MCP tool implementations for workout templates and sessions.
// ABOUTME: Provides template editing, session logging, and stats tools.
package mcp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/harperreed/splits/internal/models"
	"github.com/harperreed/splits/internal/tracker"
	"github.com/harperreed/splits/internal/units"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// create_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_workout",
		Description: "Create a new workout template (strength or cardio)",
	}, s.handleCreateWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workout templates, optionally filtered by kind",
	}, s.handleListWorkouts)

	// get_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout template with its exercises and target sets",
	}, s.handleGetWorkout)

	// rename_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rename_workout",
		Description: "Rename a workout template",
	}, s.handleRenameWorkout)

	// delete_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout template and its entire session history",
	}, s.handleDeleteWorkout)

	// save_template
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_template",
		Description: "Replace the exercises and target sets of a strength workout template",
	}, s.handleSaveTemplate)

	// log_strength_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_strength_session",
		Description: "Record a completed strength session, snapshotting the sets performed",
	}, s.handleLogStrength)

	// log_cardio_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_cardio_session",
		Description: "Record a cardio session with optional steps, distance, and duration",
	}, s.handleLogCardio)

	// get_workout_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout_stats",
		Description: "Get per-exercise history series and averages for a workout",
	}, s.handleGetStats)
}

// Tool input/output types

type createWorkoutInput struct {
	Name string `json:"name" jsonschema:"Workout name"`
	Kind string `json:"kind" jsonschema:"Workout kind: strength or cardio"`
}

type workoutOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type listWorkoutsInput struct {
	Kind  string `json:"kind,omitempty" jsonschema:"Filter by kind: strength or cardio"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type workoutRefInput struct {
	Workout string `json:"workout" jsonschema:"Workout name or numeric ID"`
}

type getWorkoutInput struct {
	Workout    string `json:"workout" jsonschema:"Workout name or numeric ID"`
	WeightUnit string `json:"weight_unit,omitempty" jsonschema:"Display unit for weights: kg or lb (default kg)"`
}

type renameWorkoutInput struct {
	Workout string `json:"workout" jsonschema:"Workout name or numeric ID"`
	Name    string `json:"name" jsonschema:"New workout name"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type setInput struct {
	Weight      float64 `json:"weight" jsonschema:"Target weight in the given weight unit"`
	Repetitions int     `json:"repetitions" jsonschema:"Target repetition count"`
	Done        *bool   `json:"done,omitempty" jsonschema:"Whether the set was performed (session logging only, default true)"`
}

type exerciseInput struct {
	Name        string     `json:"name" jsonschema:"Exercise name"`
	Description string     `json:"description,omitempty" jsonschema:"Optional exercise notes"`
	Sets        []setInput `json:"sets,omitempty" jsonschema:"Target sets in order"`
}

type saveTemplateInput struct {
	Workout    string          `json:"workout" jsonschema:"Workout name or numeric ID"`
	Exercises  []exerciseInput `json:"exercises" jsonschema:"Full replacement list of exercises in order"`
	WeightUnit string          `json:"weight_unit,omitempty" jsonschema:"Unit of the given weights: kg or lb (default kg)"`
}

type logStrengthInput struct {
	Workout     string          `json:"workout" jsonschema:"Workout name or numeric ID"`
	Exercises   []exerciseInput `json:"exercises,omitempty" jsonschema:"Edited template with done flags; omit to log every target set as performed"`
	WeightUnit  string          `json:"weight_unit,omitempty" jsonschema:"Unit of the given weights: kg or lb (default kg)"`
	CompletedAt string          `json:"completed_at,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
}

type sessionOutput struct {
	SessionID   int64  `json:"session_id,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	Message     string `json:"message"`
}

type logCardioInput struct {
	Workout         string  `json:"workout" jsonschema:"Workout name or numeric ID"`
	Steps           int64   `json:"steps,omitempty" jsonschema:"Step count (0 = not measured)"`
	Distance        float64 `json:"distance,omitempty" jsonschema:"Distance in the given distance unit (0 = not measured)"`
	DistanceUnit    string  `json:"distance_unit,omitempty" jsonschema:"Unit of the given distance: km or mi (default km)"`
	DurationMinutes float64 `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes (0 = not measured)"`
	CompletedAt     string  `json:"completed_at,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
}

// Tool handlers

func (s *Server) handleCreateWorkout(ctx context.Context, req *mcp.CallToolRequest, input createWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	if !models.IsValidWorkoutKind(input.Kind) {
		return nil, workoutOutput{}, fmt.Errorf("unknown workout kind: %s", input.Kind)
	}

	w := models.NewWorkout(input.Name, models.WorkoutKind(input.Kind))
	if err := s.repo.CreateWorkout(w); err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to create workout: %w", err)
	}

	return nil, workoutOutput{
		ID:      w.ID,
		Name:    w.Name,
		Kind:    string(w.Kind),
		Message: fmt.Sprintf("Created %s workout %q (ID: %d)", w.Kind, w.Name, w.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var kind *models.WorkoutKind
	if input.Kind != "" {
		if !models.IsValidWorkoutKind(input.Kind) {
			return nil, nil, fmt.Errorf("unknown workout kind: %s", input.Kind)
		}
		k := models.WorkoutKind(input.Kind)
		kind = &k
	}

	workouts, err := s.repo.ListWorkouts(kind, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if len(workouts) == 0 {
		return nil, map[string]interface{}{"message": "No workouts found."}, nil
	}

	return nil, workouts, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	unit, err := parseWeightUnit(input.WeightUnit)
	if err != nil {
		return nil, nil, err
	}

	w, err := s.resolveWorkout(input.Workout)
	if err != nil {
		return nil, nil, err
	}

	_, exercises, err := s.tracker.Template(w.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load template: %w", err)
	}

	return nil, map[string]interface{}{
		"workout":     w,
		"exercises":   tracker.EditedTemplate(exercises, unit),
		"weight_unit": string(unit),
	}, nil
}

func (s *Server) handleRenameWorkout(ctx context.Context, req *mcp.CallToolRequest, input renameWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	w, err := s.resolveWorkout(input.Workout)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.repo.RenameWorkout(w.ID, input.Name); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to rename workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Renamed workout %q to %q", w.Name, input.Name),
	}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	w, err := s.resolveWorkout(input.Workout)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.repo.DeleteWorkout(w.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout %q and its history", w.Name),
	}, nil
}

func (s *Server) handleSaveTemplate(ctx context.Context, req *mcp.CallToolRequest, input saveTemplateInput) (*mcp.CallToolResult, simpleOutput, error) {
	unit, err := parseWeightUnit(input.WeightUnit)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	w, err := s.resolveWorkout(input.Workout)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	edited, err := s.editedFromInput(w.ID, input.Exercises)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.tracker.SaveTemplate(w.ID, w.Name, edited, unit); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save template: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Saved template for %q (%d exercises)", w.Name, len(edited)),
	}, nil
}

func (s *Server) handleLogStrength(ctx context.Context, req *mcp.CallToolRequest, input logStrengthInput) (*mcp.CallToolResult, sessionOutput, error) {
	unit, err := parseWeightUnit(input.WeightUnit)
	if err != nil {
		return nil, sessionOutput{}, err
	}

	w, err := s.resolveWorkout(input.Workout)
	if err != nil {
		return nil, sessionOutput{}, err
	}
	if w.Kind != models.KindStrength {
		return nil, sessionOutput{}, fmt.Errorf("workout %q is not a strength workout", w.Name)
	}

	var edited []tracker.EditedExercise
	if len(input.Exercises) > 0 {
		edited, err = s.editedFromInput(w.ID, input.Exercises)
		if err != nil {
			return nil, sessionOutput{}, err
		}
	} else {
		// No edits supplied: log the current template with every set done.
		_, exercises, err := s.tracker.Template(w.ID)
		if err != nil {
			return nil, sessionOutput{}, fmt.Errorf("failed to load template: %w", err)
		}
		edited = tracker.EditedTemplate(exercises, unit)
		for i := range edited {
			for j := range edited[i].Sets {
				edited[i].Sets[j].Done = true
			}
		}
	}

	at, err := parseTimestamp(input.CompletedAt)
	if err != nil {
		return nil, sessionOutput{}, err
	}

	session, err := s.tracker.FinishStrength(w.ID, w.Name, edited, unit, at)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to log session: %w", err)
	}
	if session == nil {
		return nil, sessionOutput{Message: "No sets were marked done; template saved without a session."}, nil
	}

	return nil, sessionOutput{
		SessionID:   session.ID,
		CompletedAt: session.CompletedAt.Format(time.RFC3339),
		Message:     fmt.Sprintf("Logged strength session for %q (ID: %d)", w.Name, session.ID),
	}, nil
}

func (s *Server) handleLogCardio(ctx context.Context, req *mcp.CallToolRequest, input logCardioInput) (*mcp.CallToolResult, sessionOutput, error) {
	distUnit, err := parseDistanceUnit(input.DistanceUnit)
	if err != nil {
		return nil, sessionOutput{}, err
	}

	w, err := s.resolveWorkout(input.Workout)
	if err != nil {
		return nil, sessionOutput{}, err
	}

	at, err := parseTimestamp(input.CompletedAt)
	if err != nil {
		return nil, sessionOutput{}, err
	}

	duration := time.Duration(input.DurationMinutes * float64(time.Minute))
	session, err := s.tracker.FinishCardio(w.ID, input.Steps, input.Distance, distUnit, duration, at)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to log session: %w", err)
	}

	return nil, sessionOutput{
		SessionID:   session.ID,
		CompletedAt: session.CompletedAt.Format(time.RFC3339),
		Message:     fmt.Sprintf("Logged cardio session for %q (ID: %d)", w.Name, session.ID),
	}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input workoutRefInput) (*mcp.CallToolResult, any, error) {
	w, err := s.resolveWorkout(input.Workout)
	if err != nil {
		return nil, nil, err
	}

	stats, err := s.tracker.WorkoutStats(w.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return nil, stats, nil
}

// Helpers

// resolveWorkout looks a workout up by name first, then by numeric ID.
func (s *Server) resolveWorkout(ref string) (*models.Workout, error) {
	w, err := s.repo.GetWorkoutByName(ref)
	if err == nil {
		return w, nil
	}

	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		if w, err = s.repo.GetWorkout(id); err == nil {
			return w, nil
		}
	}
	return nil, fmt.Errorf("workout not found: %s", ref)
}

// editedFromInput converts tool input to edited-template form. Input rows
// keep the stable ID of the persisted row at the same position, so
// positional edits preserve history; rows past the current template get
// fresh IDs and become inserts.
func (s *Server) editedFromInput(workoutID int64, in []exerciseInput) ([]tracker.EditedExercise, error) {
	_, existing, err := s.tracker.Template(workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	edited := make([]tracker.EditedExercise, 0, len(in))
	for i, ex := range in {
		e := tracker.NewEditedExercise(ex.Name)
		if i < len(existing) {
			e.StableID = existing[i].StableID
		}
		e.Description = ex.Description

		for j, set := range ex.Sets {
			es := tracker.NewEditedSet(set.Weight, set.Repetitions)
			if i < len(existing) && j < len(existing[i].Sets) {
				es.StableID = existing[i].Sets[j].StableID
			}
			if set.Done != nil {
				es.Done = *set.Done
			} else {
				es.Done = true
			}
			e.Sets = append(e.Sets, es)
		}
		edited = append(edited, e)
	}
	return edited, nil
}

func parseWeightUnit(s string) (units.WeightUnit, error) {
	if s == "" {
		return units.Kilograms, nil
	}
	return units.ParseWeightUnit(s)
}

func parseDistanceUnit(s string) (units.DistanceUnit, error) {
	if s == "" {
		return units.Kilometers, nil
	}
	return units.ParseDistanceUnit(s)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02 15:04", s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %s", s)
	}
	return t, nil
}
