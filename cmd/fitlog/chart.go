// ABOUTME: CLI command for rendering dashboard charts to image files.
// ABOUTME: Draws the 7-day activity line or the minutes-by-type pie as PNG or SVG.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/chart"
	"github.com/harperreed/fitlog/internal/view"
	"github.com/spf13/cobra"
)

var (
	chartOutput string
	chartFormat string
)

var chartCmd = &cobra.Command{
	Use:   "chart <activity|types>",
	Short: "Render a chart image",
	Long: `Render one of the dashboard charts to an image file.

CHARTS:

  activity   Minutes per day over the last 7 days (line chart)
  types      Total minutes per exercise type (pie chart)

EXAMPLES:

  fitlog chart activity                 # Writes activity.png
  fitlog chart types --format svg       # Writes types.svg
  fitlog chart activity -o week.png`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"activity", "types"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := chart.ParseFormat(chartFormat)
		if err != nil {
			return err
		}

		d := session.Dashboard()
		var buf bytes.Buffer
		switch args[0] {
		case "activity":
			err = chart.Activity(&buf, format, d.Trend)
		case "types":
			err = chart.Types(&buf, format, d.ByType)
		default:
			return fmt.Errorf("unknown chart: %s (use activity or types)", args[0])
		}
		if errors.Is(err, chart.ErrNoData) {
			color.Yellow(view.EmptyChart)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}

		out := chartOutput
		if out == "" {
			out = fmt.Sprintf("%s.%s", args[0], format)
		}
		if err := os.WriteFile(out, buf.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		color.Green("✓ Chart written to %s", out)
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "output file (default: <chart>.<format>)")
	chartCmd.Flags().StringVar(&chartFormat, "format", "png", "image format: png or svg")
	rootCmd.AddCommand(chartCmd)
}
