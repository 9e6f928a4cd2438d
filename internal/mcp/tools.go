// ABOUTME: MCP tool implementations for the fitness log.
// ABOUTME: Provides workout CRUD, stats, goal progress, and CSV export.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/fitlog/internal/export"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Log a workout with its type, duration in minutes, and calories burned",
	}, s.handleAddWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List logged workouts, newest first, optionally filtered by type",
	}, s.handleListWorkouts)

	// delete_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout by ID",
	}, s.handleDeleteWorkout)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get total calories, total minutes, workout count, and the current daily streak",
	}, s.handleGetStats)

	// get_goal_progress
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_goal_progress",
		Description: "Get this week's progress against the weekly time and calorie goals",
	}, s.handleGetGoalProgress)

	// set_goals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_goals",
		Description: "Set the weekly time (minutes) and calorie goals",
	}, s.handleSetGoals)

	// export_csv
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_csv",
		Description: "Export every workout as CSV text",
	}, s.handleExportCSV)
}

// Tool input/output types

type addWorkoutInput struct {
	Type     string `json:"type" jsonschema:"Exercise type (Running, Cycling, Yoga, etc.)"`
	Duration int    `json:"duration" jsonschema:"Duration in minutes"`
	Calories int    `json:"calories" jsonschema:"Calories burned"`
	Date     string `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
}

type workoutOutput struct {
	Workout models.Workout `json:"workout"`
	Message string         `json:"message"`
}

type listWorkoutsInput struct {
	Type  string `json:"type,omitempty" jsonschema:"Filter by exercise type (case-insensitive)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listWorkoutsOutput struct {
	Workouts []models.Workout `json:"workouts"`
	Count    int              `json:"count"`
}

type deleteWorkoutInput struct {
	ID int64 `json:"id" jsonschema:"Workout ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type emptyInput struct{}

type statsOutput struct {
	Totals stats.Totals `json:"totals"`
	Streak int          `json:"streak"`
}

type setGoalsInput struct {
	Time     int `json:"time" jsonschema:"Weekly time goal in minutes"`
	Calories int `json:"calories" jsonschema:"Weekly calorie goal"`
}

type exportOutput struct {
	Filename string `json:"filename"`
	CSV      string `json:"csv"`
}

// Tool handlers

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, any, error) {
	date := s.session.Today()
	if input.Date != "" {
		d, err := models.ParseDate(input.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", models.ErrInvalidWorkout, err)
		}
		date = d
	}

	w, err := s.session.AddWorkout(models.Workout{
		Type:     strings.TrimSpace(input.Type),
		Duration: input.Duration,
		Calories: input.Calories,
		Date:     date,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add workout: %w", err)
	}

	return nil, workoutOutput{
		Workout: w,
		Message: fmt.Sprintf("Added %s: %d min, %d cal on %s (ID: %d)", w.Type, w.Duration, w.Calories, w.Date, w.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	all := s.session.Workouts()
	if input.Type != "" {
		filtered := all[:0]
		for _, w := range all {
			if strings.EqualFold(w.Type, input.Type) {
				filtered = append(filtered, w)
			}
		}
		all = filtered
	}

	workouts := stats.Recent(all, input.Limit)
	if workouts == nil {
		workouts = []models.Workout{}
	}
	return nil, listWorkoutsOutput{Workouts: workouts, Count: len(workouts)}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input deleteWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	deleted, err := s.session.Delete(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}
	if !deleted {
		return nil, simpleOutput{Message: fmt.Sprintf("No workout with ID %d.", input.ID)}, nil
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %d", input.ID),
	}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, statsOutput, error) {
	d := s.session.Dashboard()
	return nil, statsOutput{Totals: d.Totals, Streak: d.Streak}, nil
}

func (s *Server) handleGetGoalProgress(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	return nil, s.session.Dashboard().Weekly, nil
}

func (s *Server) handleSetGoals(ctx context.Context, req *mcp.CallToolRequest, input setGoalsInput) (*mcp.CallToolResult, simpleOutput, error) {
	goals := models.Goals{Time: input.Time, Calories: input.Calories}
	if err := s.session.UpdateGoals(goals); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to set goals: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Weekly goals set: %d min, %d cal", goals.Time, goals.Calories),
	}, nil
}

func (s *Server) handleExportCSV(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, exportOutput, error) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, s.session.Workouts()); err != nil {
		return nil, exportOutput{}, fmt.Errorf("failed to export: %w", err)
	}

	return nil, exportOutput{
		Filename: export.Filename(s.session.Today()),
		CSV:      buf.String(),
	}, nil
}
