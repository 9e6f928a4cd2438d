// ABOUTME: Ports the session uses to reach the user.
// ABOUTME: Confirmation prompts and rendering are swappable for tests and servers.
package tracker

import (
	"fmt"

	"github.com/harperreed/fitlog/internal/models"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// AlwaysConfirm approves every prompt. Used when the caller already made an
// explicit choice (--yes, an HTTP DELETE, an MCP tool call).
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) (bool, error) { return true, nil })

// Renderer receives a freshly computed dashboard after every state change.
type Renderer interface {
	Render(d *Dashboard) error
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(d *Dashboard) error

// Render calls f.
func (f RenderFunc) Render(d *Dashboard) error {
	return f(d)
}

// NopRenderer ignores every dashboard.
var NopRenderer Renderer = RenderFunc(func(*Dashboard) error { return nil })

// deletePrompt is the question asked before removing a workout.
func deletePrompt(w models.Workout) string {
	return fmt.Sprintf("Are you sure you want to delete this workout? (%s, %d min on %s)",
		w.Type, w.Duration, w.Date)
}
