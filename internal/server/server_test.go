// ABOUTME: Tests for the dashboard HTTP server.
// ABOUTME: Drives the router with httptest against an in-memory session.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/harperreed/fitlog/internal/tracker"
)

// Wednesday.
var now = time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)

func setupTestServer(t *testing.T) (*Server, *tracker.Session) {
	t.Helper()

	session := tracker.New(storage.NewRepository(storage.NewMemoryKV(), nil),
		tracker.WithClock(func() time.Time { return now }))
	if err := session.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	srv := New(session, nil)
	session.SetRenderer(srv)
	return srv, session
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAddAndListWorkouts(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := do(t, srv, "POST", "/api/workouts", `{"type":"Running","duration":30,"calories":300}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body %s", rec.Code, rec.Body)
	}
	var added models.Workout
	if err := json.Unmarshal(rec.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if added.ID != now.UnixMilli() || added.Date.String() != "2024-03-13" {
		t.Errorf("added = %+v", added)
	}

	do(t, srv, "POST", "/api/workouts", `{"type":"Yoga","duration":20,"calories":80,"date":"2024-03-12"}`)

	rec = do(t, srv, "GET", "/api/workouts", "")
	var all []models.Workout
	json.Unmarshal(rec.Body.Bytes(), &all)
	if len(all) != 2 || all[0].Type != "Running" {
		t.Errorf("list = %+v, want insertion order", all)
	}

	rec = do(t, srv, "GET", "/api/workouts?limit=1", "")
	var recent []models.Workout
	json.Unmarshal(rec.Body.Bytes(), &recent)
	if len(recent) != 1 || recent[0].Type != "Yoga" {
		t.Errorf("limited list = %+v, want newest only", recent)
	}
}

func TestAddWorkoutRejectsBadInput(t *testing.T) {
	srv, session := setupTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"type":`},
		{"missing type", `{"duration":10,"calories":10}`},
		{"negative calories", `{"type":"Run","duration":10,"calories":-1}`},
		{"string duration", `{"type":"Run","duration":"ten","calories":1}`},
		{"bad date", `{"type":"Run","duration":10,"calories":1,"date":"yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, "POST", "/api/workouts", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
			}
		})
	}
	if len(session.Workouts()) != 0 {
		t.Error("invalid workouts were stored")
	}
}

func TestDeleteWorkout(t *testing.T) {
	srv, session := setupTestServer(t)
	w, _ := session.Add(models.WorkoutInput{Type: "Running", Duration: "30", Calories: "300"})

	rec := do(t, srv, "DELETE", "/api/workouts/"+itoa(w.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", rec.Code)
	}
	if len(session.Workouts()) != 0 {
		t.Error("workout still present")
	}

	rec = do(t, srv, "DELETE", "/api/workouts/"+itoa(w.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", rec.Code)
	}
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestGoals(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := do(t, srv, "GET", "/api/goals", "")
	if strings.TrimSpace(rec.Body.String()) != `{"time":150,"calories":2000}` {
		t.Errorf("default goals = %s", rec.Body)
	}

	rec = do(t, srv, "PUT", "/api/goals", `{"time":0,"calories":100}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid PUT status = %d, want 400", rec.Code)
	}

	rec = do(t, srv, "PUT", "/api/goals", `{"time":200,"calories":2500}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d", rec.Code)
	}
	rec = do(t, srv, "GET", "/api/goals", "")
	if strings.TrimSpace(rec.Body.String()) != `{"time":200,"calories":2500}` {
		t.Errorf("goals after PUT = %s", rec.Body)
	}
}

func TestDashboard(t *testing.T) {
	srv, session := setupTestServer(t)
	session.Add(models.WorkoutInput{Type: "Running", Duration: "75", Calories: "500"})

	rec := do(t, srv, "GET", "/api/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var d tracker.Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Streak != 1 || d.Weekly.Time.Percent != 50 || len(d.ByType) != 1 {
		t.Errorf("dashboard = %+v", d)
	}
}

func TestExportCSV(t *testing.T) {
	srv, session := setupTestServer(t)

	rec := do(t, srv, "GET", "/api/export.csv", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "No workouts to export!") {
		t.Errorf("empty export = %d %s", rec.Code, rec.Body)
	}

	session.Add(models.WorkoutInput{Type: "Running", Duration: "30", Calories: "300", Date: "2024-01-01"})
	rec = do(t, srv, "GET", "/api/export.csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="fitness-tracker-2024-03-13.csv"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if rec.Body.String() != "Date,Exercise Type,Duration (min),Calories\n2024-01-01,Running,30,300\n" {
		t.Errorf("body = %q", rec.Body)
	}
}

func TestCharts(t *testing.T) {
	srv, session := setupTestServer(t)

	rec := do(t, srv, "GET", "/charts/types.png", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("empty types chart status = %d, want 404", rec.Code)
	}

	rec = do(t, srv, "GET", "/charts/activity.svg", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/svg+xml" {
		t.Errorf("activity chart = %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}

	session.Add(models.WorkoutInput{Type: "Running", Duration: "30", Calories: "300"})
	rec = do(t, srv, "GET", "/charts/types.png", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("types chart = %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = do(t, srv, "GET", "/charts/types.gif", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown format status = %d, want 404", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, session := setupTestServer(t)
	session.Add(models.WorkoutInput{Type: "Running", Duration: "30", Calories: "300"})
	do(t, srv, "GET", "/api/dashboard", "")

	rec := do(t, srv, "GET", "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"fitlog_workouts 1",
		"fitlog_streak_days 1",
		`fitlog_http_requests_total{method="GET",route="/api/dashboard",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := setupTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{"PATCH", "/api/goals"},
		{"DELETE", "/api/dashboard"},
		{"POST", "/charts/activity.png"},
	} {
		rec := do(t, srv, tc.method, tc.path, "{}")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s status = %d, want 405", tc.method, tc.path, rec.Code)
		}
	}

	rec := do(t, srv, "GET", "/api/nothing-here", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}
