// ABOUTME: Data migration between fitness log storage backends.
// ABOUTME: Copies the workouts and goals slots from source to destination.

package storage

import (
	"errors"
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Workouts int
	Goals    bool
}

// ErrDestinationNotEmpty is returned when the destination already holds data.
var ErrDestinationNotEmpty = errors.New("destination already contains fitness data")

// MigrateData copies both slots from src to dst. Slots missing in src are
// left untouched in dst. Unless force is set, the destination must not hold
// a workouts or goals slot yet.
func MigrateData(src, dst KV, force bool) (*MigrateSummary, error) {
	if !force {
		nonEmpty, err := HasData(dst)
		if err != nil {
			return nil, err
		}
		if nonEmpty {
			return nil, ErrDestinationNotEmpty
		}
	}

	summary := &MigrateSummary{}
	srcRepo := NewRepository(src, nil)
	dstRepo := NewRepository(dst, nil)

	if _, err := src.Get(WorkoutsKey); err == nil {
		workouts, err := srcRepo.LoadWorkouts()
		if err != nil {
			return nil, fmt.Errorf("read source workouts: %w", err)
		}
		if err := dstRepo.SaveWorkouts(workouts); err != nil {
			return nil, fmt.Errorf("write workouts: %w", err)
		}
		summary.Workouts = len(workouts)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("read source workouts: %w", err)
	}

	if _, err := src.Get(GoalsKey); err == nil {
		goals, err := srcRepo.LoadGoals()
		if err != nil {
			return nil, fmt.Errorf("read source goals: %w", err)
		}
		if err := dstRepo.SaveGoals(goals); err != nil {
			return nil, fmt.Errorf("write goals: %w", err)
		}
		summary.Goals = true
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("read source goals: %w", err)
	}

	return summary, nil
}

// HasData reports whether kv holds a workouts or goals slot.
func HasData(kv KV) (bool, error) {
	for _, key := range []string{WorkoutsKey, GoalsKey} {
		_, err := kv.Get(key)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return false, fmt.Errorf("check %s: %w", key, err)
		}
	}
	return false, nil
}
