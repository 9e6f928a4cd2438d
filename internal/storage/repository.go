// ABOUTME: Record and goal stores on top of the KV port.
// ABOUTME: Serializes the workouts and goals slots as JSON with safe fallbacks.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitlog/internal/models"
)

// Fixed slot keys, shared by every backend.
const (
	WorkoutsKey = "workouts"
	GoalsKey    = "goals"
)

// Repository persists the workout list and the goal config independently.
type Repository struct {
	kv     KV
	logger *log.Logger
}

// NewRepository wraps a KV backend. A nil logger discards warnings.
func NewRepository(kv KV, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Repository{kv: kv, logger: logger}
}

// KV returns the underlying backend.
func (r *Repository) KV() KV {
	return r.kv
}

// LoadWorkouts returns the stored records in insertion order.
// A missing slot yields an empty list; a corrupt slot is logged and also
// yields an empty list.
func (r *Repository) LoadWorkouts() ([]models.Workout, error) {
	data, err := r.kv.Get(WorkoutsKey)
	if errors.Is(err, ErrNotFound) {
		return []models.Workout{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}

	var workouts []models.Workout
	if err := json.Unmarshal(data, &workouts); err != nil {
		r.logger.Warn("stored workouts are unreadable, starting empty", "err", err)
		return []models.Workout{}, nil
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	return workouts, nil
}

// SaveWorkouts replaces the stored record list.
func (r *Repository) SaveWorkouts(workouts []models.Workout) error {
	if workouts == nil {
		workouts = []models.Workout{}
	}
	data, err := json.Marshal(workouts)
	if err != nil {
		return fmt.Errorf("marshal workouts: %w", err)
	}
	if err := r.kv.Set(WorkoutsKey, data); err != nil {
		return fmt.Errorf("save workouts: %w", err)
	}
	return nil
}

// LoadGoals returns the stored goals, or the defaults when the slot is
// missing or corrupt.
func (r *Repository) LoadGoals() (models.Goals, error) {
	data, err := r.kv.Get(GoalsKey)
	if errors.Is(err, ErrNotFound) {
		return models.DefaultGoals(), nil
	}
	if err != nil {
		return models.Goals{}, fmt.Errorf("load goals: %w", err)
	}

	var goals models.Goals
	if err := json.Unmarshal(data, &goals); err != nil {
		r.logger.Warn("stored goals are unreadable, using defaults", "err", err)
		return models.DefaultGoals(), nil
	}
	return goals, nil
}

// SaveGoals replaces the stored goals.
func (r *Repository) SaveGoals(goals models.Goals) error {
	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}
	if err := r.kv.Set(GoalsKey, data); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}

// Close closes the backend.
func (r *Repository) Close() error {
	return r.kv.Close()
}
