// ABOUTME: Weekly goal targets for workout time and calories.
// ABOUTME: Provides defaults and validation for goal updates.
package models

import (
	"errors"
	"fmt"
)

// Default weekly targets used when no goals have been saved.
const (
	DefaultTimeGoal    = 150
	DefaultCalorieGoal = 2000
)

// ErrInvalidGoals is returned when a goal update is rejected.
var ErrInvalidGoals = errors.New("invalid goals")

// Goals holds the weekly targets.
type Goals struct {
	Time     int `json:"time" yaml:"time"`         // minutes per week
	Calories int `json:"calories" yaml:"calories"` // kcal per week
}

// DefaultGoals returns the targets used for a fresh log.
func DefaultGoals() Goals {
	return Goals{Time: DefaultTimeGoal, Calories: DefaultCalorieGoal}
}

// Validate requires both targets to be positive.
func (g Goals) Validate() error {
	if g.Time <= 0 {
		return fmt.Errorf("%w: weekly time goal must be positive, got %d", ErrInvalidGoals, g.Time)
	}
	if g.Calories <= 0 {
		return fmt.Errorf("%w: weekly calorie goal must be positive, got %d", ErrInvalidGoals, g.Calories)
	}
	return nil
}
