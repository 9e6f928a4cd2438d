// ABOUTME: Tests for the session controller.
// ABOUTME: Uses in-memory storage, fake confirmers, and a recording renderer.
package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

// Wednesday, 2024-03-13 09:00 UTC.
var fixedNow = time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)

type recordingRenderer struct {
	calls int
	last  *Dashboard
}

func (r *recordingRenderer) Render(d *Dashboard) error {
	r.calls++
	r.last = d
	return nil
}

func setupSession(t *testing.T, opts ...Option) (*Session, *storage.MemoryKV, *recordingRenderer) {
	t.Helper()
	kv := storage.NewMemoryKV()
	rr := &recordingRenderer{}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithRenderer(rr)}, opts...)
	s := New(storage.NewRepository(kv, nil), opts...)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s, kv, rr
}

func mustAdd(t *testing.T, s *Session, typ, duration, calories, date string) models.Workout {
	t.Helper()
	w, err := s.Add(models.WorkoutInput{Type: typ, Duration: duration, Calories: calories, Date: date})
	if err != nil {
		t.Fatalf("Add(%s) failed: %v", typ, err)
	}
	return w
}

func TestLoadEmptyRendersZeroDashboard(t *testing.T) {
	_, _, rr := setupSession(t)

	if rr.calls != 1 {
		t.Fatalf("render calls = %d, want 1", rr.calls)
	}
	d := rr.last
	if d.Totals.Count != 0 || d.Streak != 0 {
		t.Errorf("dashboard = %+v, want empty", d)
	}
	if d.Goals != models.DefaultGoals() {
		t.Errorf("goals = %+v, want defaults", d.Goals)
	}
	if len(d.Trend) != TrendDays || len(d.ByType) != 0 || len(d.Recent) != 0 {
		t.Errorf("trend/byType/recent = %d/%d/%d", len(d.Trend), len(d.ByType), len(d.Recent))
	}
}

func TestAddPersistsAndRenders(t *testing.T) {
	s, kv, rr := setupSession(t)

	w := mustAdd(t, s, "Running", "30", "300", "")

	if w.ID != fixedNow.UnixMilli() {
		t.Errorf("ID = %d, want creation timestamp %d", w.ID, fixedNow.UnixMilli())
	}
	if w.Date.String() != "2024-03-13" {
		t.Errorf("Date = %s, want today", w.Date)
	}
	if rr.calls != 2 {
		t.Errorf("render calls = %d, want 2", rr.calls)
	}
	if rr.last.Streak != 1 || rr.last.Totals.Calories != 300 {
		t.Errorf("dashboard streak/calories = %d/%d, want 1/300", rr.last.Streak, rr.last.Totals.Calories)
	}

	// A fresh session over the same storage sees the record.
	again := New(storage.NewRepository(kv, nil), WithClock(func() time.Time { return fixedNow }))
	if err := again.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := again.Workouts(); len(got) != 1 || got[0].ID != w.ID {
		t.Errorf("reloaded workouts = %+v", got)
	}
}

func TestAddAssignsMonotonicIDs(t *testing.T) {
	s, _, _ := setupSession(t)

	a := mustAdd(t, s, "Running", "10", "100", "")
	b := mustAdd(t, s, "Running", "10", "100", "")
	c := mustAdd(t, s, "Running", "10", "100", "")

	if !(a.ID < b.ID && b.ID < c.ID) {
		t.Errorf("IDs not increasing: %d %d %d", a.ID, b.ID, c.ID)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	s, _, rr := setupSession(t)

	_, err := s.Add(models.WorkoutInput{Type: "Running", Duration: "thirty", Calories: "300"})
	if !errors.Is(err, models.ErrInvalidWorkout) {
		t.Fatalf("Add error = %v, want ErrInvalidWorkout", err)
	}
	if len(s.Workouts()) != 0 {
		t.Error("invalid workout was stored")
	}
	if rr.calls != 1 {
		t.Errorf("render calls = %d, want no re-render", rr.calls)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s, _, _ := setupSession(t)

	a := mustAdd(t, s, "Running", "30", "300", "2024-03-10")
	b := mustAdd(t, s, "Yoga", "20", "80", "2024-03-11")
	c := mustAdd(t, s, "Cycling", "45", "400", "2024-03-12")

	deleted, err := s.Delete(b.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Fatal("expected record to be deleted")
	}

	got := s.Workouts()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != a || got[1] != c {
		t.Errorf("remaining = %+v, want [%+v %+v] unchanged", got, a, c)
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	s, _, rr := setupSession(t)
	mustAdd(t, s, "Running", "30", "300", "")
	calls := rr.calls

	deleted, err := s.Delete(42)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted {
		t.Error("expected no deletion")
	}
	if len(s.Workouts()) != 1 {
		t.Error("record list changed")
	}
	if rr.calls != calls {
		t.Error("unexpected re-render")
	}
}

func TestDeleteDeclined(t *testing.T) {
	var prompts []string
	decline := ConfirmFunc(func(p string) (bool, error) {
		prompts = append(prompts, p)
		return false, nil
	})
	s, _, _ := setupSession(t, WithConfirmer(decline))
	w := mustAdd(t, s, "Running", "30", "300", "")

	deleted, err := s.Delete(w.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted || len(s.Workouts()) != 1 {
		t.Error("declined delete removed the record")
	}
	if len(prompts) != 1 {
		t.Errorf("prompts = %d, want 1", len(prompts))
	}
}

func TestDeleteConfirmError(t *testing.T) {
	boom := errors.New("stdin closed")
	s, _, _ := setupSession(t, WithConfirmer(ConfirmFunc(func(string) (bool, error) { return false, boom })))
	w := mustAdd(t, s, "Running", "30", "300", "")

	if _, err := s.Delete(w.ID); !errors.Is(err, boom) {
		t.Errorf("Delete error = %v, want wrapped confirm error", err)
	}
}

func TestUpdateGoals(t *testing.T) {
	s, kv, rr := setupSession(t)
	mustAdd(t, s, "Running", "60", "600", "")

	if err := s.UpdateGoals(models.Goals{Time: 120, Calories: 1200}); err != nil {
		t.Fatalf("UpdateGoals failed: %v", err)
	}
	if rr.last.Weekly.Time.Percent != 50 || rr.last.Weekly.Calories.Percent != 50 {
		t.Errorf("weekly = %+v, want 50%% / 50%%", rr.last.Weekly)
	}

	goals, _ := storage.NewRepository(kv, nil).LoadGoals()
	if goals.Time != 120 {
		t.Errorf("persisted goals = %+v", goals)
	}

	if err := s.UpdateGoals(models.Goals{Time: 0, Calories: 100}); !errors.Is(err, models.ErrInvalidGoals) {
		t.Errorf("UpdateGoals(0) error = %v, want ErrInvalidGoals", err)
	}
	if s.Goals().Time != 120 {
		t.Error("rejected goals were applied")
	}
}

func TestImportSkipsExistingIDs(t *testing.T) {
	s, _, _ := setupSession(t)
	w := mustAdd(t, s, "Running", "30", "300", "")

	day := models.NewDate(2024, time.March, 1)
	in := []models.Workout{
		w,
		{ID: 5, Type: "Yoga", Duration: 20, Calories: 80, Date: day},
		{Type: "Hiking", Duration: 90, Calories: 500, Date: day},
	}
	goals := models.Goals{Time: 300, Calories: 3000}

	added, err := s.Import(in, &goals)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	got := s.Workouts()
	if len(got) != 3 || got[2].ID <= w.ID {
		t.Errorf("workouts after import = %+v", got)
	}
	if s.Goals() != goals {
		t.Errorf("goals = %+v, want %+v", s.Goals(), goals)
	}
}

func TestDashboardRecentAndTrend(t *testing.T) {
	s, _, _ := setupSession(t)
	for i := 0; i < 12; i++ {
		mustAdd(t, s, "Running", "10", "50", "2024-03-13")
	}
	mustAdd(t, s, "Yoga", "5", "10", "2024-03-12")

	d := s.Dashboard()
	if len(d.Recent) != RecentLimit {
		t.Errorf("recent = %d, want %d", len(d.Recent), RecentLimit)
	}
	if d.Recent[0].Type != "Yoga" {
		t.Errorf("newest entry = %s, want Yoga", d.Recent[0].Type)
	}
	if d.Trend[6].Minutes != 120 || d.Trend[5].Minutes != 5 || d.Trend[0].Minutes != 0 {
		t.Errorf("trend = %+v", d.Trend)
	}
	if d.ByType[0].Type != "Running" || d.TypeMinutes()["Yoga"] != 5 {
		t.Errorf("by type = %+v", d.ByType)
	}
	if d.Streak != 2 {
		t.Errorf("streak = %d, want 2", d.Streak)
	}
}

func TestSessionsSharingStorageKeepEachOthersWrites(t *testing.T) {
	kv := storage.NewMemoryKV()
	open := func() *Session {
		s := New(storage.NewRepository(kv, nil), WithClock(func() time.Time { return fixedNow }))
		if err := s.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		return s
	}
	server := open()
	cli := open()

	running := mustAdd(t, cli, "Running", "30", "300", "")
	yoga := mustAdd(t, server, "Yoga", "20", "80", "")

	if yoga.ID <= running.ID {
		t.Errorf("IDs %d then %d, want increasing across sessions", running.ID, yoga.ID)
	}
	if got := server.Workouts(); len(got) != 2 {
		t.Fatalf("server sees %d workouts, want 2", len(got))
	}

	stored, _ := storage.NewRepository(kv, nil).LoadWorkouts()
	if len(stored) != 2 || stored[0].Type != "Running" || stored[1].Type != "Yoga" {
		t.Fatalf("stored workouts = %+v, want Running then Yoga", stored)
	}

	// Goals set by one session survive a delete made by the other.
	if err := cli.UpdateGoals(models.Goals{Time: 200, Calories: 1800}); err != nil {
		t.Fatalf("UpdateGoals failed: %v", err)
	}
	deleted, err := server.Delete(running.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}
	if server.Goals().Time != 200 {
		t.Errorf("server goals = %+v, want the cli update", server.Goals())
	}
	if got := cli.Dashboard(); got.Totals.Count != 1 || got.Recent[0].Type != "Yoga" {
		t.Errorf("cli dashboard = %+v, want only Yoga", got.Totals)
	}
}
