// ABOUTME: CLI command for viewing and setting weekly goals.
// ABOUTME: Shows weekly progress when called without flags.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/view"
	"github.com/spf13/cobra"
)

var (
	goalTime     int
	goalCalories int
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "View or set weekly goals",
	Long: `View or set the weekly time and calorie goals.

Weeks run Monday through Sunday. Both goals must be positive. A flag that
is omitted keeps its current value.

EXAMPLES:

  fitlog goals                              # Show this week's progress
  fitlog goals --time 200                   # 200 minutes per week
  fitlog goals --time 180 --calories 2500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeSet := cmd.Flags().Changed("time")
		caloriesSet := cmd.Flags().Changed("calories")
		if timeSet || caloriesSet {
			goals := session.Goals()
			if timeSet {
				goals.Time = goalTime
			}
			if caloriesSet {
				goals.Calories = goalCalories
			}
			if err := session.UpdateGoals(goals); err != nil {
				return fmt.Errorf("failed to set goals: %w", err)
			}
			color.Green("✓ Weekly goals set: %d min, %d cal", goals.Time, goals.Calories)
		}

		fmt.Fprintln(cmd.OutOrStdout(), view.Progress(session.Dashboard()))
		return nil
	},
}

func init() {
	goalsCmd.Flags().IntVar(&goalTime, "time", 0, "weekly time goal in minutes")
	goalsCmd.Flags().IntVar(&goalCalories, "calories", 0, "weekly calorie goal")
	rootCmd.AddCommand(goalsCmd)
}
