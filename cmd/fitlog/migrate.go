// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies workouts and goals from the active backend to another one.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo    string
	migrateForce bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy workouts and goals from the active backend to another backend.

The source is the backend selected by --backend or the config file. The
destination must be empty unless --force is given.

BACKENDS:

  sqlite   ~/.local/share/fitlog/fitlog.db (default)
  badger   ~/.local/share/fitlog/badger/
  charm    Charm KV, synced to your Charm account

EXAMPLES:

  fitlog migrate --to charm                    # sqlite -> charm
  fitlog --backend charm migrate --to sqlite   # charm -> sqlite
  fitlog migrate --to badger --force           # Overwrite existing data

AFTER MIGRATION:

  Set "backend" in ~/.config/fitlog/config.json to use the new store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		to := strings.ToLower(strings.TrimSpace(migrateTo))
		if to == "" {
			return fmt.Errorf("--to is required")
		}
		if to == cfg.GetBackend() {
			return fmt.Errorf("source and destination are both %s", to)
		}

		dst, err := cfg.OpenKV(to)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", to, err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(store.KV(), dst, migrateForce)
		if errors.Is(err, storage.ErrDestinationNotEmpty) {
			color.Yellow("%s already contains fitness data. Use --force to overwrite.", to)
			return nil
		}
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s to %s", plural(summary.Workouts, "workout"), to)
		if summary.Goals {
			fmt.Fprintln(cmd.OutOrStdout(), "  Weekly goals copied")
		}
		return nil
	},
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, badger, charm")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite data already in the destination")
	rootCmd.AddCommand(migrateCmd)
}
