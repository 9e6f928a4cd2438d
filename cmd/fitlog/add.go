// ABOUTME: CLI command for logging a workout.
// ABOUTME: Parses form-style input and stores it through the session.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	addDuration string
	addCalories string
	addDate     string
)

var addCmd = &cobra.Command{
	Use:     "add <type>",
	Aliases: []string{"a", "log"},
	Short:   "Log a workout",
	Long: `Log a workout with its duration and calories burned.

The exercise type is freeform: Running, Cycling, Swimming, Weights, Yoga,
HIIT, Walking, or anything else. Quote types that contain spaces.

Duration and calories must be whole, non-negative numbers. The date defaults
to today.

EXAMPLES:

  fitlog add Running -d 30 -c 300
  fitlog add "Open water swim" -d 40 -c 350
  fitlog add Yoga -d 45 -c 150 --date 2024-03-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := session.Add(models.WorkoutInput{
			Type:     args[0],
			Duration: addDuration,
			Calories: addCalories,
			Date:     addDate,
		})
		if err != nil {
			return fmt.Errorf("failed to add workout: %w", err)
		}

		color.Green("✓ Added %s", w.Type)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %d min, %d cal on %s\n",
			color.New(color.Faint).Sprint(w.ID), w.Duration, w.Calories, w.Date)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDuration, "duration", "d", "", "duration in minutes (required)")
	addCmd.Flags().StringVarP(&addCalories, "calories", "c", "", "calories burned (required)")
	addCmd.Flags().StringVar(&addDate, "date", "", "workout date as YYYY-MM-DD (default: today)")
	_ = addCmd.MarkFlagRequired("duration")
	_ = addCmd.MarkFlagRequired("calories")

	rootCmd.AddCommand(addCmd)
}
