// ABOUTME: Full backups and human-readable exports of the fitness log.
// ABOUTME: Supports JSON, YAML, and Markdown output plus JSON/YAML import.
package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/stats"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written into every backup.
const FormatVersion = "1.0"

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a CLI argument to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format %q (use csv, json, yaml, or markdown)", s)
}

// Backup is the full-fidelity export document.
type Backup struct {
	Version    string           `json:"version" yaml:"version"`
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Tool       string           `json:"tool" yaml:"tool"`
	Goals      *models.Goals    `json:"goals,omitempty" yaml:"goals,omitempty"`
	Workouts   []models.Workout `json:"workouts" yaml:"workouts"`
}

// NewBackup captures the current state.
func NewBackup(workouts []models.Workout, goals models.Goals, now time.Time) *Backup {
	if workouts == nil {
		workouts = []models.Workout{}
	}
	return &Backup{
		Version:    FormatVersion,
		ExportedAt: now,
		Tool:       "fitlog",
		Goals:      &goals,
		Workouts:   workouts,
	}
}

// JSON encodes b as indented JSON.
func (b *Backup) JSON() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// YAML encodes b as YAML.
func (b *Backup) YAML() ([]byte, error) {
	return yaml.Marshal(b)
}

// DecodeBackup parses a JSON or YAML backup. The format is chosen from the
// file extension of name; anything other than .yaml/.yml is read as JSON.
func DecodeBackup(name string, data []byte) (*Backup, error) {
	var b Backup
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("unmarshal YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	}
	return &b, nil
}

// Markdown renders a summary header and a table of every workout.
func Markdown(workouts []models.Workout, goals models.Goals, today models.Date) (string, error) {
	if len(workouts) == 0 {
		return "", ErrNoWorkouts
	}

	totals := stats.TotalsOf(workouts)
	weekly := stats.WeeklyProgress(workouts, goals, today)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Fitness Log - %s\n\n", today)
	fmt.Fprintf(&sb, "- Workouts: %s\n", humanize.Comma(int64(totals.Count)))
	fmt.Fprintf(&sb, "- Total time: %s min\n", humanize.Comma(int64(totals.Duration)))
	fmt.Fprintf(&sb, "- Calories burned: %s\n", humanize.Comma(int64(totals.Calories)))
	fmt.Fprintf(&sb, "- Current streak: %d days\n\n", stats.StreakOf(workouts, today))

	sb.WriteString("## Weekly Goals\n\n")
	fmt.Fprintf(&sb, "- Time: %s / %s min (%.0f%%)\n",
		humanize.Comma(int64(weekly.Time.Actual)), humanize.Comma(int64(goals.Time)), weekly.Time.Percent)
	fmt.Fprintf(&sb, "- Calories: %s / %s (%.0f%%)\n\n",
		humanize.Comma(int64(weekly.Calories.Actual)), humanize.Comma(int64(goals.Calories)), weekly.Calories.Percent)

	sb.WriteString("## Workouts\n\n")
	sb.WriteString("| Date | Type | Duration | Calories |\n")
	sb.WriteString("|------|------|----------|----------|\n")
	for _, w := range workouts {
		fmt.Fprintf(&sb, "| %s | %s | %d min | %d |\n",
			w.Date, strings.ReplaceAll(w.Type, "|", `\|`), w.Duration, w.Calories)
	}
	return sb.String(), nil
}
