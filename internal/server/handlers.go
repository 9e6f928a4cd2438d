// ABOUTME: HTTP handlers for workouts, goals, exports, and charts.
// ABOUTME: Every handler reads or mutates the shared session.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/harperreed/fitlog/internal/chart"
	"github.com/harperreed/fitlog/internal/export"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/stats"
)

const maxBodyBytes = 1 << 20

type workoutRequest struct {
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	Calories int    `json:"calories"`
	Date     string `json:"date,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidWorkout), errors.Is(err, models.ErrInvalidGoals):
		return http.StatusBadRequest
	case errors.Is(err, export.ErrNoWorkouts), errors.Is(err, chart.ErrNoData):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(op, "err", err)
		s.writeError(w, status, "internal server error")
		return
	}
	s.writeError(w, status, err.Error())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Dashboard())
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts := s.session.Workouts()

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		workouts = stats.Recent(workouts, limit)
	}

	s.writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleAddWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	date := s.session.Today()
	if req.Date != "" {
		d, err := models.ParseDate(req.Date)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		date = d
	}

	added, err := s.session.AddWorkout(models.Workout{
		Type:     strings.TrimSpace(req.Type),
		Duration: req.Duration,
		Calories: req.Calories,
		Date:     date,
	})
	if err != nil {
		s.fail(w, "add workout", err)
		return
	}
	s.metrics.CounterWorkoutsAdded.Inc()

	s.writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid workout id")
		return
	}

	deleted, err := s.session.Delete(id)
	if err != nil {
		s.fail(w, "delete workout", err)
		return
	}
	if !deleted {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("no workout with id %d", id))
		return
	}
	s.metrics.CounterWorkoutsDeleted.Inc()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetGoals(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Goals())
}

func (s *Server) handleSetGoals(w http.ResponseWriter, r *http.Request) {
	var goals models.Goals
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&goals); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := s.session.UpdateGoals(goals); err != nil {
		s.fail(w, "set goals", err)
		return
	}
	s.writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, s.session.Workouts()); err != nil {
		if errors.Is(err, export.ErrNoWorkouts) {
			s.writeError(w, http.StatusNotFound, "No workouts to export!")
			return
		}
		s.fail(w, "export csv", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(s.session.Today())))
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("write csv", "err", err)
	}
}

func (s *Server) writeImage(w http.ResponseWriter, f chart.Format, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("write chart", "err", err)
	}
}

func (s *Server) handleActivityChart(w http.ResponseWriter, r *http.Request) {
	f, err := chart.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := chart.Activity(&buf, f, s.session.Dashboard().Trend); err != nil {
		s.fail(w, "activity chart", err)
		return
	}
	s.writeImage(w, f, &buf)
}

func (s *Server) handleTypesChart(w http.ResponseWriter, r *http.Request) {
	f, err := chart.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := chart.Types(&buf, f, s.session.Dashboard().ByType); err != nil {
		s.fail(w, "types chart", err)
		return
	}
	s.writeImage(w, f, &buf)
}
