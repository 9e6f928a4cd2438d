// ABOUTME: CLI command for starting the HTTP dashboard server.
// ABOUTME: Serves the JSON API, chart images, and Prometheus metrics.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitlog/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start a local HTTP server exposing the fitness log.

ENDPOINTS:

  GET    /api/dashboard          Every aggregate as JSON
  GET    /api/workouts           All workouts
  POST   /api/workouts           Log a workout
  DELETE /api/workouts/{id}      Delete a workout
  GET    /api/goals              Weekly goals
  PUT    /api/goals              Set weekly goals
  GET    /api/export.csv         CSV download
  GET    /charts/activity.png    7-day activity chart (.svg also works)
  GET    /charts/types.png       Minutes by type chart (.svg also works)
  GET    /metrics                Prometheus metrics

The address defaults to "listen_addr" in the config file, then 127.0.0.1:8080.

EXAMPLES:

  fitlog serve
  fitlog serve --addr :9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetListenAddr()
		}

		srv := server.New(session, logger)
		session.SetRenderer(srv)
		if err := session.Refresh(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, else 127.0.0.1:8080)")
	rootCmd.AddCommand(serveCmd)
}
