// ABOUTME: Aggregation engine for the fitness log.
// ABOUTME: Pure functions for totals, streaks, weekly goal progress, and chart series.
package stats

import (
	"sort"
	"time"

	"github.com/harperreed/fitlog/internal/models"
)

// Totals summarizes every logged workout.
type Totals struct {
	Calories int `json:"total_calories"`
	Duration int `json:"total_duration"`
	Count    int `json:"count"`
}

// GoalProgress is the weekly sum for one target.
// Defined is false when the target is not positive; Percent is then 0.
type GoalProgress struct {
	Actual  int     `json:"actual"`
	Target  int     `json:"target"`
	Percent float64 `json:"percent"`
	Defined bool    `json:"defined"`
}

// Progress is the current week's standing against both goals.
type Progress struct {
	WeekStart models.Date  `json:"week_start"`
	Time      GoalProgress `json:"time"`
	Calories  GoalProgress `json:"calories"`
}

// TotalsOf sums calories and duration across all records.
func TotalsOf(records []models.Workout) Totals {
	t := Totals{Count: len(records)}
	for _, w := range records {
		t.Calories += w.Calories
		t.Duration += w.Duration
	}
	return t
}

// StreakOf counts consecutive calendar days, ending today, that have at least
// one workout. A missing day ends the streak; future dates are ignored.
func StreakOf(records []models.Workout, today models.Date) int {
	if len(records) == 0 {
		return 0
	}

	seen := make(map[models.Date]struct{}, len(records))
	dates := make([]models.Date, 0, len(records))
	for _, w := range records {
		if _, ok := seen[w.Date]; ok {
			continue
		}
		seen[w.Date] = struct{}{}
		dates = append(dates, w.Date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	streak := 0
	for _, d := range dates {
		diff := today.DaysSince(d)
		if diff == streak {
			streak++
		} else if diff > streak {
			break
		}
	}
	return streak
}

// WeekStart returns the Monday of the week containing today.
func WeekStart(today models.Date) models.Date {
	offset := int(today.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday belongs to the week that started six days earlier
	}
	return today.AddDays(-offset)
}

// WeeklyProgress sums the workouts dated on or after this week's Monday and
// reports each total as a percentage of its goal, capped at 100.
func WeeklyProgress(records []models.Workout, goals models.Goals, today models.Date) Progress {
	start := WeekStart(today)

	var minutes, calories int
	for _, w := range records {
		if w.Date.Before(start) {
			continue
		}
		minutes += w.Duration
		calories += w.Calories
	}

	return Progress{
		WeekStart: start,
		Time:      progressOf(minutes, goals.Time),
		Calories:  progressOf(calories, goals.Calories),
	}
}

func progressOf(actual, target int) GoalProgress {
	p := GoalProgress{Actual: actual, Target: target}
	if target <= 0 {
		return p
	}
	p.Defined = true
	p.Percent = float64(actual) / float64(target) * 100
	switch {
	case p.Percent > 100:
		p.Percent = 100
	case p.Percent < 0:
		p.Percent = 0
	}
	return p
}

// SeriesByDay returns the summed duration for each day in days, in order.
// Days without workouts yield 0.
func SeriesByDay(records []models.Workout, days []models.Date) []int {
	byDay := make(map[models.Date]int, len(days))
	for _, w := range records {
		byDay[w.Date] += w.Duration
	}

	series := make([]int, len(days))
	for i, d := range days {
		series[i] = byDay[d]
	}
	return series
}

// GroupByType sums duration per workout type.
// The result is never nil; it is empty when there are no records.
func GroupByType(records []models.Workout) map[string]int {
	groups := make(map[string]int)
	for _, w := range records {
		groups[w.Type] += w.Duration
	}
	return groups
}

// LastNDays returns the n days ending today, oldest first.
func LastNDays(today models.Date, n int) []models.Date {
	if n <= 0 {
		return nil
	}
	days := make([]models.Date, n)
	for i := range days {
		days[i] = today.AddDays(i - (n - 1))
	}
	return days
}

// Recent returns up to n of the most recently entered records, newest first.
func Recent(records []models.Workout, n int) []models.Workout {
	if n <= 0 || len(records) == 0 {
		return nil
	}
	start := len(records) - n
	if start < 0 {
		start = 0
	}
	recent := make([]models.Workout, 0, len(records)-start)
	for i := len(records) - 1; i >= start; i-- {
		recent = append(recent, records[i])
	}
	return recent
}

// SortedTypes returns the keys of a GroupByType result ordered by minutes
// descending, then by name.
func SortedTypes(groups map[string]int) []string {
	types := make([]string, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if groups[types[i]] != groups[types[j]] {
			return groups[types[i]] > groups[types[j]]
		}
		return types[i] < types[j]
	})
	return types
}
