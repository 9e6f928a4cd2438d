// ABOUTME: CLI command rendering the full dashboard.
// ABOUTME: Stats, weekly goals, activity trend, type breakdown, and recent log.
package main

import (
	"github.com/harperreed/fitlog/internal/view"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"dashboard", "s"},
	Short:   "Show the fitness dashboard",
	Long: `Show every aggregate at once: total calories, total minutes, workout
count, current streak, weekly goal progress, the last 7 days of activity,
minutes by exercise type, and the 10 most recent workouts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session.SetRenderer(view.NewTerminal(cmd.OutOrStdout()))
		return session.Refresh()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
