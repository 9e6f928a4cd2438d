// ABOUTME: Workout record model for the fitness log.
// ABOUTME: Covers form input parsing and validation before records are stored.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidWorkout is returned when workout input fails validation.
var ErrInvalidWorkout = errors.New("invalid workout")

// Workout is a single logged exercise session.
// ID is the creation timestamp in Unix milliseconds.
type Workout struct {
	ID       int64  `json:"id" yaml:"id"`
	Type     string `json:"type" yaml:"type"`
	Duration int    `json:"duration" yaml:"duration"`
	Calories int    `json:"calories" yaml:"calories"`
	Date     Date   `json:"date" yaml:"date"`
}

// Validate checks the invariants of a stored record.
func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Type) == "" {
		return fmt.Errorf("%w: exercise type is required", ErrInvalidWorkout)
	}
	if w.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidWorkout)
	}
	if w.Calories < 0 {
		return fmt.Errorf("%w: calories must not be negative", ErrInvalidWorkout)
	}
	if w.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidWorkout)
	}
	return nil
}

// WorkoutInput is the raw text of the workout form.
type WorkoutInput struct {
	Type     string
	Duration string
	Calories string
	Date     string
}

// Parse converts form text into a Workout. An empty date means today.
// The returned workout has no ID; the session assigns one when storing it.
func (in WorkoutInput) Parse(today Date) (*Workout, error) {
	duration, err := parseCount("duration", in.Duration)
	if err != nil {
		return nil, err
	}
	calories, err := parseCount("calories", in.Calories)
	if err != nil {
		return nil, err
	}

	date := today
	if s := strings.TrimSpace(in.Date); s != "" {
		date, err = ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkout, err)
		}
	}

	w := &Workout{
		Type:     strings.TrimSpace(in.Type),
		Duration: duration,
		Calories: calories,
		Date:     date,
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func parseCount(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %q", ErrInvalidWorkout, field, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidWorkout, field)
	}
	return n, nil
}
