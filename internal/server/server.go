// ABOUTME: Local dashboard server exposing the session over HTTP.
// ABOUTME: gorilla/mux routes for the JSON API, chart images, and /metrics.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/harperreed/fitlog/internal/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Server serves one session.
type Server struct {
	session  *tracker.Session
	logger   *log.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	router   *mux.Router
}

var _ tracker.Renderer = (*Server)(nil)

// New builds the router. A nil logger discards output.
func New(session *tracker.Session, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{
		session:  session,
		logger:   logger,
		registry: reg,
		metrics:  NewMetrics("fitlog", reg),
		router:   mux.NewRouter(),
	}
	s.setupRoutes()
	s.metrics.Observe(session.Dashboard())
	return s
}

func (s *Server) setupRoutes() {
	r := s.router
	r.HandleFunc("/api/dashboard", s.handleDashboard).Methods("GET").Name("dashboard")
	r.HandleFunc("/api/workouts", s.handleListWorkouts).Methods("GET").Name("list-workouts")
	r.HandleFunc("/api/workouts", s.handleAddWorkout).Methods("POST").Name("add-workout")
	r.HandleFunc("/api/workouts/{id:[0-9]+}", s.handleDeleteWorkout).Methods("DELETE").Name("delete-workout")
	r.HandleFunc("/api/goals", s.handleGetGoals).Methods("GET").Name("get-goals")
	r.HandleFunc("/api/goals", s.handleSetGoals).Methods("PUT").Name("set-goals")
	r.HandleFunc("/api/export.csv", s.handleExportCSV).Methods("GET").Name("export-csv")

	r.HandleFunc("/charts/activity.{format:png|svg}", s.handleActivityChart).Methods("GET").Name("activity-chart")
	r.HandleFunc("/charts/types.{format:png|svg}", s.handleTypesChart).Methods("GET").Name("types-chart")

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET").Name("metrics")

	// Path matched with the wrong method.
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Use(s.instrument)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Render implements tracker.Renderer so gauges follow every session change.
func (s *Server) Render(d *tracker.Dashboard) error {
	s.metrics.Observe(d)
	return nil
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Debug("graceful shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("dashboard server shut down")
	return nil
}
