// ABOUTME: MCP resource implementations for workout data.
// ABOUTME: Provides splits://workouts and splits://recent resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/splits/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// splits://workouts - All workout templates with their exercises
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "splits://workouts",
		Name:        "Workout Templates",
		Description: "All workout templates with exercises and target sets",
		MIMEType:    "application/json",
	}, s.handleWorkoutsResource)

	// splits://recent - Last 10 sessions across all workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "splits://recent",
		Name:        "Recent Sessions",
		Description: "The 10 most recent sessions across all workouts",
		MIMEType:    "application/json",
	}, s.handleRecentResource)
}

// Resource handlers

func (s *Server) handleWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListWorkouts(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	type entry struct {
		Workout   *models.Workout    `json:"workout"`
		Exercises []*models.Exercise `json:"exercises,omitempty"`
	}
	entries := make([]entry, 0, len(workouts))
	for _, w := range workouts {
		_, exercises, err := s.tracker.Template(w.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load template: %w", err)
		}
		entries = append(entries, entry{Workout: w, Exercises: exercises})
	}

	data, err := json.MarshalIndent(map[string]interface{}{"workouts": entries}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "splits://workouts",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListWorkouts(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	type entry struct {
		Session *models.Session `json:"session"`
		Workout string          `json:"workout"`
		Kind    string          `json:"kind"`
	}
	var entries []entry
	for _, w := range workouts {
		sessions, err := s.repo.ListSessions(w.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		for _, session := range sessions {
			entries = append(entries, entry{Session: session, Workout: w.Name, Kind: string(w.Kind)})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Session.CompletedAt.After(entries[j].Session.CompletedAt)
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"sessions":     entries,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "splits://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
