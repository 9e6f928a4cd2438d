// ABOUTME: Chart adapter rendering the activity trend and type breakdown.
// ABOUTME: Produces PNG or SVG images with go-chart from dashboard data.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/harperreed/fitlog/internal/tracker"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when the type breakdown has nothing to draw.
var ErrNoData = errors.New("no data available")

// Format is an image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat maps a flag or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unknown chart format %q (use png or svg)", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() gochart.RendererProvider {
	if f == SVG {
		return gochart.SVG
	}
	return gochart.PNG
}

const (
	width  = 800
	height = 400
)

var (
	lineColor = drawing.ColorFromHex("3498db")
	fillColor = drawing.ColorFromHex("3498db").WithAlpha(26)

	// Slice colors, reused in order when there are more types than colors.
	palette = []drawing.Color{
		drawing.ColorFromHex("3498db"),
		drawing.ColorFromHex("e74c3c"),
		drawing.ColorFromHex("27ae60"),
		drawing.ColorFromHex("f39c12"),
		drawing.ColorFromHex("9b59b6"),
		drawing.ColorFromHex("1abc9c"),
		drawing.ColorFromHex("34495e"),
		drawing.ColorFromHex("e67e22"),
	}
)

// Activity draws workout minutes per day as a filled line chart.
// Days without workouts are plotted at zero.
func Activity(w io.Writer, f Format, trend []tracker.DayPoint) error {
	if len(trend) == 0 {
		return ErrNoData
	}

	xs := make([]float64, len(trend))
	ys := make([]float64, len(trend))
	ticks := make([]gochart.Tick, len(trend))
	peak := 0.0
	for i, p := range trend {
		xs[i] = float64(i)
		ys[i] = float64(p.Minutes)
		ticks[i] = gochart.Tick{Value: float64(i), Label: p.Date.Format("Jan 2")}
		peak = math.Max(peak, ys[i])
	}
	// A single point has no x extent; widen it so the axis can be drawn.
	if len(trend) == 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[0])
	}

	ch := gochart.Chart{
		Title:      "Workout Minutes",
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 0, Max: math.Max(float64(len(trend)-1), 1)},
		},
		YAxis: gochart.YAxis{
			Name:  "min",
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax(peak)},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Workout Minutes",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 3,
					FillColor:   fillColor,
					DotColor:    lineColor,
					DotWidth:    5,
				},
			},
		},
	}

	if err := ch.Render(f.provider(), w); err != nil {
		return fmt.Errorf("render activity chart: %w", err)
	}
	return nil
}

// yMax rounds the peak up to a step of 10 with some headroom.
func yMax(peak float64) float64 {
	if peak <= 0 {
		return 10
	}
	return math.Ceil(peak*1.1/10) * 10
}

// Types draws the share of minutes per workout type as a pie chart.
// Types with zero minutes are left out; if nothing remains ErrNoData is
// returned.
func Types(w io.Writer, f Format, shares []tracker.TypeShare) error {
	values := make([]gochart.Value, 0, len(shares))
	for i, s := range shares {
		if s.Minutes <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s: %d min", s.Type, s.Minutes),
			Value: float64(s.Minutes),
			Style: gochart.Style{
				FillColor:   palette[i%len(palette)],
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
				FontColor:   drawing.ColorWhite,
			},
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	pie := gochart.PieChart{
		Title:  "Exercise Types",
		Width:  height,
		Height: height,
		Values: values,
	}
	if err := pie.Render(f.provider(), w); err != nil {
		return fmt.Errorf("render types chart: %w", err)
	}
	return nil
}
