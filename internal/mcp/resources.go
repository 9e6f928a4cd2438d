// ABOUTME: MCP resource implementations for the fitness log.
// ABOUTME: Provides fitness://dashboard and fitness://recent resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	dashboardURI = "fitness://dashboard"
	recentURI    = "fitness://recent"
)

func (s *Server) registerResources() {
	// fitness://dashboard - every aggregate the terminal dashboard shows
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "Fitness Dashboard",
		Description: "Totals, streak, weekly goal progress, 7-day trend, and minutes by type",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	// fitness://recent - last 10 workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Workouts",
		Description: "Last 10 logged workouts, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)
}

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(dashboardURI, s.session.Dashboard())
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	d := s.session.Dashboard()
	return jsonResource(recentURI, map[string]any{
		"workouts": d.Recent,
		"count":    len(d.Recent),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
