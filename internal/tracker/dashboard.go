// ABOUTME: Dashboard snapshot computed from the full record list.
// ABOUTME: Every view, chart, and API response is derived from this value.
package tracker

import (
	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/stats"
)

const (
	// TrendDays is the length of the activity trend window.
	TrendDays = 7
	// RecentLimit is how many records the log panel shows.
	RecentLimit = 10
)

// DayPoint is one day of the activity trend.
type DayPoint struct {
	Date    models.Date `json:"date"`
	Minutes int         `json:"minutes"`
}

// TypeShare is the total duration logged for one workout type.
type TypeShare struct {
	Type    string `json:"type"`
	Minutes int    `json:"minutes"`
}

// Dashboard holds every aggregate shown to the user.
type Dashboard struct {
	Today  models.Date      `json:"today"`
	Totals stats.Totals     `json:"totals"`
	Streak int              `json:"streak"`
	Weekly stats.Progress   `json:"weekly"`
	Goals  models.Goals     `json:"goals"`
	Trend  []DayPoint       `json:"trend"`
	ByType []TypeShare      `json:"by_type"`
	Recent []models.Workout `json:"recent"`
}

// Compute derives a dashboard from scratch.
func Compute(workouts []models.Workout, goals models.Goals, today models.Date) *Dashboard {
	days := stats.LastNDays(today, TrendDays)
	series := stats.SeriesByDay(workouts, days)
	trend := make([]DayPoint, len(days))
	for i, d := range days {
		trend[i] = DayPoint{Date: d, Minutes: series[i]}
	}

	groups := stats.GroupByType(workouts)
	byType := make([]TypeShare, 0, len(groups))
	for _, t := range stats.SortedTypes(groups) {
		byType = append(byType, TypeShare{Type: t, Minutes: groups[t]})
	}

	recent := stats.Recent(workouts, RecentLimit)
	if recent == nil {
		recent = []models.Workout{}
	}

	return &Dashboard{
		Today:  today,
		Totals: stats.TotalsOf(workouts),
		Streak: stats.StreakOf(workouts, today),
		Weekly: stats.WeeklyProgress(workouts, goals, today),
		Goals:  goals,
		Trend:  trend,
		ByType: byType,
		Recent: recent,
	}
}

// TypeMinutes returns the by-type breakdown as a map.
func (d *Dashboard) TypeMinutes() map[string]int {
	m := make(map[string]int, len(d.ByType))
	for _, s := range d.ByType {
		m[s.Type] = s.Minutes
	}
	return m
}
