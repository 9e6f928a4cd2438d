// ABOUTME: Terminal presentation of the fitness dashboard.
// ABOUTME: Each panel is a pure function of a tracker.Dashboard.
package view

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/tracker"
)

// Empty-state messages.
const (
	EmptyLog    = "No workouts logged yet. Start tracking your fitness journey!"
	EmptyChart  = "No data available. Log workouts to see distribution."
	barWidth    = 30
	sparkWidth  = 24
	dayLabelFmt = "Mon Jan 2"
)

var (
	accent = lipgloss.Color("#3498db")
	muted  = lipgloss.Color("#7f8c8d")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Foreground(muted)
	valueStyle = lipgloss.NewStyle().Bold(true)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
)

func panel(title string, lines ...string) string {
	body := append([]string{titleStyle.Render(title)}, lines...)
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

// Stats renders the four headline numbers.
func Stats(d *tracker.Dashboard) string {
	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-16s", label)) + valueStyle.Render(value)
	}
	return panel("Stats",
		row("Calories burned", humanize.Comma(int64(d.Totals.Calories))),
		row("Total minutes", humanize.Comma(int64(d.Totals.Duration))),
		row("Workouts", humanize.Comma(int64(d.Totals.Count))),
		row("Current streak", plural(d.Streak, "day")),
	)
}

// Progress renders both weekly goals as progress bars.
func Progress(d *tracker.Dashboard) string {
	return panel("Weekly Goals",
		goalLine("Time", "minutes", d.Weekly.Time.Actual, d.Weekly.Time.Target, d.Weekly.Time.Percent, d.Weekly.Time.Defined),
		goalLine("Calories", "calories", d.Weekly.Calories.Actual, d.Weekly.Calories.Target, d.Weekly.Calories.Percent, d.Weekly.Calories.Defined),
		labelStyle.Render("Week of "+d.Weekly.WeekStart.Format(dayLabelFmt)),
	)
}

func goalLine(name, unit string, actual, target int, percent float64, defined bool) string {
	text := fmt.Sprintf("%s / %s %s", humanize.Comma(int64(actual)), humanize.Comma(int64(target)), unit)
	if !defined {
		return fmt.Sprintf("%-9s%s  %s", name, text, labelStyle.Render("(no goal set)"))
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage())
	return fmt.Sprintf("%-9s%s %3d%%  %s", name, bar.ViewAs(percent/100), int(math.Round(percent)), text)
}

// Log renders the most recent workouts, newest first.
func Log(d *tracker.Dashboard) string {
	if len(d.Recent) == 0 {
		return panel("Recent Workouts", labelStyle.Render(EmptyLog))
	}
	lines := make([]string, 0, len(d.Recent))
	for _, w := range d.Recent {
		lines = append(lines, LogLine(w))
	}
	return panel("Recent Workouts", lines...)
}

// LogLine formats one workout for list output.
func LogLine(w models.Workout) string {
	return fmt.Sprintf("%s  %s  %s  %s  %s",
		labelStyle.Render(fmt.Sprintf("%d", w.ID)),
		w.Date,
		valueStyle.Render(w.Type),
		fmt.Sprintf("%d min", w.Duration),
		fmt.Sprintf("%s cal", humanize.Comma(int64(w.Calories))),
	)
}

// Charts renders the 7-day trend and the type breakdown as text bars.
func Charts(d *tracker.Dashboard) string {
	peak := 0
	for _, p := range d.Trend {
		if p.Minutes > peak {
			peak = p.Minutes
		}
	}
	trend := make([]string, 0, len(d.Trend))
	for _, p := range d.Trend {
		trend = append(trend, fmt.Sprintf("%-10s %s %d", p.Date.Format(dayLabelFmt), bar(p.Minutes, peak), p.Minutes))
	}

	total := 0
	for _, s := range d.ByType {
		total += s.Minutes
	}
	var types []string
	if total == 0 {
		types = []string{labelStyle.Render(EmptyChart)}
	} else {
		for _, s := range d.ByType {
			share := float64(s.Minutes) / float64(total) * 100
			types = append(types, fmt.Sprintf("%-12s %s %d min (%.0f%%)", s.Type, bar(s.Minutes, total), s.Minutes, share))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		panel("Activity (last 7 days)", trend...),
		panel("Exercise Types", types...),
	)
}

func bar(v, peak int) string {
	if peak <= 0 || v <= 0 {
		return strings.Repeat(" ", sparkWidth)
	}
	n := int(math.Round(float64(v) / float64(peak) * sparkWidth))
	if n == 0 {
		n = 1
	}
	return lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", n)) + strings.Repeat(" ", sparkWidth-n)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Dashboard joins every panel.
func Dashboard(d *tracker.Dashboard) string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, Stats(d), " ", Progress(d))
	return lipgloss.JoinVertical(lipgloss.Left, top, Charts(d), Log(d))
}

// Terminal writes the full dashboard to a writer on every render.
type Terminal struct {
	w io.Writer
}

var _ tracker.Renderer = (*Terminal)(nil)

// NewTerminal returns a renderer writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Render implements tracker.Renderer.
func (t *Terminal) Render(d *tracker.Dashboard) error {
	_, err := fmt.Fprintln(t.w, Dashboard(d))
	return err
}
