// ABOUTME: CLI command for deleting a workout.
// ABOUTME: Asks for confirmation on the terminal unless --yes is given.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/tracker"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout by its ID.

The ID is shown in the first column of 'fitlog list' output. You are asked
to confirm before anything is removed; pass --yes to skip the prompt.

EXAMPLES:

  fitlog delete 1710320400000
  fitlog rm 1710320400000 --yes

CAUTION:

  This permanently deletes the workout. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id: %s", args[0])
		}

		w, ok := session.Find(id)
		if !ok {
			color.Yellow("No workout with ID %d", id)
			return nil
		}

		if deleteYes {
			session.SetConfirmer(tracker.AlwaysConfirm)
		} else {
			session.SetConfirmer(promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout()))
		}

		deleted, err := session.Delete(id)
		if err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}
		if !deleted {
			fmt.Fprintln(cmd.OutOrStdout(), "Deletion canceled.")
			return nil
		}

		color.Yellow("✗ Deleted %s", w.Type)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %d min, %d cal on %s\n",
			color.New(color.Faint).Sprint(w.ID), w.Duration, w.Calories, w.Date)
		return nil
	},
}

// promptConfirmer asks a yes/no question on out and reads the answer from in.
func promptConfirmer(in io.Reader, out io.Writer) tracker.Confirmer {
	reader := bufio.NewReader(in)
	return tracker.ConfirmFunc(func(prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		response, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		return response == "y" || response == "yes", nil
	})
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
