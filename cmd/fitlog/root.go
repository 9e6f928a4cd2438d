// ABOUTME: Root Cobra command for the fitlog CLI.
// ABOUTME: Opens config, logger, storage, and the session via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitlog/internal/config"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/harperreed/fitlog/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	logger  *log.Logger
	store   *storage.Repository
	session *tracker.Session

	backendFlag string
	dataDirFlag string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "fitlog",
	Short: "Personal fitness log and weekly goal tracker",
	Long: `Fitlog is a CLI tool for logging workouts and tracking weekly goals.

WHAT IT TRACKS:

  Workouts       exercise type, duration (minutes), calories, date
  Weekly goals   minutes and calories per week (Monday to Sunday)
  Streak         consecutive days with at least one workout

QUICK START:

  $ fitlog add Running -d 30 -c 300              # Log a workout for today
  $ fitlog add Yoga -d 45 -c 150 --date 2024-03-01
  $ fitlog list                                  # Recent workouts
  $ fitlog stats                                 # Full dashboard
  $ fitlog goals --time 200 --calories 2500      # Set weekly goals

CHARTS AND EXPORTS:

  $ fitlog chart activity -o week.png    # 7-day activity line chart
  $ fitlog chart types --format svg      # Minutes by exercise type
  $ fitlog export                        # CSV file for spreadsheets
  $ fitlog export json -o backup.json    # Full backup

SERVERS:

  $ fitlog serve     # Local dashboard API, charts, and /metrics
  $ fitlog mcp       # Model Context Protocol server on stdio

DATA STORAGE:

  Workouts and goals are stored in ~/.local/share/fitlog/fitlog.db.
  Use --backend (sqlite, badger, charm, memory) or set "backend" in
  ~/.config/fitlog/config.json to choose another store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if backendFlag != "" {
			cfg.Backend = backendFlag
		}
		if dataDirFlag != "" {
			cfg.DataDir = dataDirFlag
		}

		level, err := cfg.GetLogLevel()
		if err != nil {
			return err
		}
		if verbose {
			level = log.DebugLevel
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "fitlog",
			Level:  level,
		})

		store, err = cfg.OpenStore(logger)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		session = tracker.New(store, tracker.WithLogger(logger))
		if err := session.Load(); err != nil {
			return fmt.Errorf("failed to load fitness log: %w", err)
		}
		logger.Debug("storage ready", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if session != nil {
			err := session.Close()
			session = nil
			store = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: sqlite, badger, charm, memory (default from config, else sqlite)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.local/share/fitlog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
