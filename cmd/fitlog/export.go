// ABOUTME: CLI commands for exporting and importing the fitness log.
// ABOUTME: CSV for spreadsheets; JSON, YAML, and Markdown for backups and sharing.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/export"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [format]",
	Short: "Export workouts",
	Long: `Export logged workouts.

FORMATS:

  csv        Spreadsheet file: Date,Exercise Type,Duration (min),Calories (default)
  json       Full JSON backup including goals (suitable for 'fitlog import')
  yaml       YAML backup (human-readable)
  markdown   Markdown summary and table (for sharing)

CSV exports are written to fitness-tracker-YYYY-MM-DD.csv unless --output
is given. Other formats print to stdout.

EXAMPLES:

  fitlog export                        # CSV file named after today
  fitlog export csv -o workouts.csv
  fitlog export json -o backup.json    # Save a backup
  fitlog export markdown               # Print a Markdown report`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"csv", "json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		format, err := export.ParseFormat(name)
		if err != nil {
			return err
		}

		workouts := session.Workouts()
		out := exportOutput

		var data []byte
		switch format {
		case export.FormatCSV:
			var buf bytes.Buffer
			err = export.WriteCSV(&buf, workouts)
			data = buf.Bytes()
			if out == "" {
				out = export.Filename(session.Today())
			}
		case export.FormatJSON:
			data, err = export.NewBackup(workouts, session.Goals(), time.Now()).JSON()
		case export.FormatYAML:
			data, err = export.NewBackup(workouts, session.Goals(), time.Now()).YAML()
		case export.FormatMarkdown:
			var md string
			md, err = export.Markdown(workouts, session.Goals(), session.Today())
			data = []byte(md)
		}
		if errors.Is(err, export.ErrNoWorkouts) {
			color.Yellow("No workouts to export!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if out != "" {
			if err := os.WriteFile(out, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported %d workouts to %s", len(workouts), out)
		} else {
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON or YAML backup",
	Long: `Import workouts and goals from a backup written by 'fitlog export json'
or 'fitlog export yaml'. Files ending in .yaml or .yml are read as YAML;
everything else is read as JSON.

Workouts whose ID already exists are skipped. Goals in the backup replace
the current goals.

EXAMPLES:

  fitlog import backup.json
  fitlog import backup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		backup, err := export.DecodeBackup(filename, data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		added, err := session.Import(backup.Workouts, backup.Goals)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d workouts from %s", added, filename)
		if skipped := len(backup.Workouts) - added; skipped > 0 {
			color.Yellow("  %d already present, skipped", skipped)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: CSV file named after today, stdout otherwise)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
