// ABOUTME: CLI command for listing logged workouts.
// ABOUTME: Shows the most recent entries, newest first.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/stats"
	"github.com/harperreed/fitlog/internal/view"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent workouts",
	Long: `List logged workouts, newest first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  TYPE  DURATION  CALORIES

  Use the ID with 'fitlog delete'.

EXAMPLES:

  fitlog list          # Last 10 workouts
  fitlog list -n 50    # Last 50 workouts
  fitlog list -n 0     # Everything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts := session.Workouts()
		if len(workouts) == 0 {
			color.Yellow(view.EmptyLog)
			return nil
		}

		limit := listLimit
		if limit <= 0 {
			limit = len(workouts)
		}

		out := cmd.OutOrStdout()
		for _, w := range stats.Recent(workouts, limit) {
			fmt.Fprintln(out, view.LogLine(w))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "max workouts to show (0 for all)")
	rootCmd.AddCommand(listCmd)
}
