// ABOUTME: CLI commands for the Charm sync backend.
// ABOUTME: Shows account status, pulls remote changes, and resets local data.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/charm"
	"github.com/harperreed/fitlog/internal/config"
	"github.com/spf13/cobra"
)

var syncYes bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync workouts across devices with Charm",
	Long: `Sync workouts and goals across devices using Charm Cloud.

These commands need the charm backend:

  fitlog --backend charm sync status
  or set "backend": "charm" in ~/.config/fitlog/config.json

Your data is E2E encrypted with your SSH key before upload. Every write is
pushed immediately. After a write, remote changes are pulled too unless
"charm_auto_sync" is false in the config file.

COMMANDS:

  status   Show the linked Charm account and local data
  now      Pull changes made on other devices
  reset    Delete local data and restore from the cloud (destructive)`,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, ok := charmBackend()
		if !ok {
			return nil
		}

		out := cmd.OutOrStdout()
		id, err := client.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'charm link' to connect this device.")
			return nil
		}

		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Server:", cfg.GetCharmHost())
		fmt.Fprintln(out, "Auto sync:", cfg.GetCharmAutoSync())
		fmt.Fprintln(out)

		color.Green("✓ Connected to Charm")
		d := session.Dashboard()
		fmt.Fprintf(out, "  Workouts: %d\n", d.Totals.Count)
		fmt.Fprintf(out, "  Goals: %d min, %d cal per week\n", d.Goals.Time, d.Goals.Calories)
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Pull changes from other devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, ok := charmBackend()
		if !ok {
			return nil
		}

		if err := client.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if err := session.Load(); err != nil {
			return fmt.Errorf("failed to reload fitness log: %w", err)
		}

		color.Green("✓ Synced %s", plural(len(session.Workouts()), "workout"))
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	Long: `Delete all local data and restore from Charm Cloud.

This is a destructive operation. Workouts that never reached the cloud are
lost. Use this to fix sync conflicts or reset a device to the cloud state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, ok := charmBackend()
		if !ok {
			return nil
		}

		if !syncYes {
			confirmed, err := promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout()).
				Confirm("This will DELETE all local fitness data and restore from cloud. Continue?")
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
				return nil
			}
		}

		if err := client.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		if err := session.Load(); err != nil {
			return fmt.Errorf("failed to reload fitness log: %w", err)
		}

		color.Green("✓ Local data reset and restored from cloud")
		return nil
	},
}

// charmBackend returns the open Charm client, or prints a notice when the
// active backend is something else.
func charmBackend() (*charm.Client, bool) {
	client, ok := store.KV().(*charm.Client)
	if !ok {
		color.Yellow("Sync needs the %s backend (active backend: %s)", config.BackendCharm, cfg.GetBackend())
		return nil, false
	}
	return client, true
}

func init() {
	syncResetCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "skip the confirmation prompt")

	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncResetCmd)
	rootCmd.AddCommand(syncCmd)
}
