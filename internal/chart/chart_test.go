// ABOUTME: Tests for the chart adapter.
// ABOUTME: Checks image signatures and the empty-data paths.
package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/tracker"
)

func week(minutes ...int) []tracker.DayPoint {
	start := models.NewDate(2024, time.March, 7)
	points := make([]tracker.DayPoint, len(minutes))
	for i, m := range minutes {
		points[i] = tracker.DayPoint{Date: start.AddDays(i), Minutes: m}
	}
	return points
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestActivityPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Activity(&buf, PNG, week(0, 30, 0, 45, 20, 0, 60)); err != nil {
		t.Fatalf("Activity failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestActivitySVGAllZero(t *testing.T) {
	var buf bytes.Buffer
	if err := Activity(&buf, SVG, week(0, 0, 0, 0, 0, 0, 0)); err != nil {
		t.Fatalf("Activity failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Error("output is not an SVG")
	}
	if !strings.Contains(out, "Mar 13") {
		t.Error("missing day label")
	}
}

func TestActivityEmpty(t *testing.T) {
	if err := Activity(&bytes.Buffer{}, PNG, nil); !errors.Is(err, ErrNoData) {
		t.Errorf("Activity(nil) error = %v, want ErrNoData", err)
	}
}

func TestTypes(t *testing.T) {
	var buf bytes.Buffer
	shares := []tracker.TypeShare{{Type: "Running", Minutes: 90}, {Type: "Yoga", Minutes: 30}}
	if err := Types(&buf, SVG, shares); err != nil {
		t.Fatalf("Types failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Running: 90 min") {
		t.Error("missing slice label")
	}
}

func TestTypesNoData(t *testing.T) {
	tests := []struct {
		name   string
		shares []tracker.TypeShare
	}{
		{"nil", nil},
		{"all zero", []tracker.TypeShare{{Type: "Stretching", Minutes: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Types(&buf, PNG, tt.shares); !errors.Is(err, ErrNoData) {
				t.Errorf("Types error = %v, want ErrNoData", err)
			}
			if buf.Len() != 0 {
				t.Error("wrote output for empty data")
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(".SVG"); err != nil || f != SVG {
		t.Errorf("ParseFormat(.SVG) = %q, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != PNG {
		t.Errorf("ParseFormat(\"\") = %q, %v", f, err)
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("expected error for gif")
	}
	if SVG.ContentType() != "image/svg+xml" || PNG.ContentType() != "image/png" {
		t.Error("wrong content types")
	}
}
