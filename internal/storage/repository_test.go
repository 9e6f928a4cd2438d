// ABOUTME: Tests for KV backends and the workouts/goals repository.
// ABOUTME: Runs the same contract against memory, SQLite, and badger backends.
package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/fitlog/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "fitlog.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestBadger(t *testing.T) *BadgerKV {
	t.Helper()
	b, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory badger: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func backends(t *testing.T) map[string]KV {
	return map[string]KV{
		"memory": NewMemoryKV(),
		"sqlite": setupTestDB(t),
		"badger": setupTestBadger(t),
	}
}

func TestKVContract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
			}

			if err := kv.Set("goals", []byte(`{"time":1}`)); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := kv.Set("goals", []byte(`{"time":2}`)); err != nil {
				t.Fatalf("Set overwrite failed: %v", err)
			}
			got, err := kv.Get("goals")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(got) != `{"time":2}` {
				t.Errorf("Get = %s, want overwritten value", got)
			}

			keys, err := kv.Keys()
			if err != nil {
				t.Fatalf("Keys failed: %v", err)
			}
			if len(keys) != 1 || keys[0] != "goals" {
				t.Errorf("Keys = %v, want [goals]", keys)
			}

			if err := kv.Delete("goals"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, err := kv.Get("goals"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestRepositoryDefaults(t *testing.T) {
	repo := NewRepository(NewMemoryKV(), nil)

	workouts, err := repo.LoadWorkouts()
	if err != nil {
		t.Fatalf("LoadWorkouts failed: %v", err)
	}
	if workouts == nil || len(workouts) != 0 {
		t.Errorf("LoadWorkouts = %v, want empty list", workouts)
	}

	goals, err := repo.LoadGoals()
	if err != nil {
		t.Fatalf("LoadGoals failed: %v", err)
	}
	if goals != models.DefaultGoals() {
		t.Errorf("LoadGoals = %+v, want defaults", goals)
	}
}

func TestRepositoryCorruptFallback(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set(WorkoutsKey, []byte("{not json"))
	kv.Set(GoalsKey, []byte("[]"))
	repo := NewRepository(kv, nil)

	workouts, err := repo.LoadWorkouts()
	if err != nil {
		t.Fatalf("LoadWorkouts should not fail on corrupt data: %v", err)
	}
	if len(workouts) != 0 {
		t.Errorf("expected empty list, got %d records", len(workouts))
	}

	goals, err := repo.LoadGoals()
	if err != nil {
		t.Fatalf("LoadGoals should not fail on corrupt data: %v", err)
	}
	if goals != models.DefaultGoals() {
		t.Errorf("LoadGoals = %+v, want defaults", goals)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewRepository(kv, nil)
			day := models.NewDate(2024, time.January, 1)
			in := []models.Workout{
				{ID: 1, Type: "Running", Duration: 30, Calories: 300, Date: day},
				{ID: 2, Type: "Yoga", Duration: 20, Calories: 80, Date: day.AddDays(-1)},
			}

			if err := repo.SaveWorkouts(in); err != nil {
				t.Fatalf("SaveWorkouts failed: %v", err)
			}
			if err := repo.SaveGoals(models.Goals{Time: 200, Calories: 2500}); err != nil {
				t.Fatalf("SaveGoals failed: %v", err)
			}

			out, err := repo.LoadWorkouts()
			if err != nil {
				t.Fatalf("LoadWorkouts failed: %v", err)
			}
			if len(out) != 2 || out[0].ID != 1 || out[1].Type != "Yoga" || !out[1].Date.Equal(day.AddDays(-1)) {
				t.Errorf("LoadWorkouts = %+v, want insertion order preserved", out)
			}

			goals, err := repo.LoadGoals()
			if err != nil {
				t.Fatalf("LoadGoals failed: %v", err)
			}
			if goals.Time != 200 || goals.Calories != 2500 {
				t.Errorf("LoadGoals = %+v, want 200/2500", goals)
			}
		})
	}
}

func TestRepositoryReadsBrowserLayout(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set(WorkoutsKey, []byte(`[{"id":1704103200000,"type":"Running","duration":30,"calories":300,"date":"2024-01-01"}]`))
	kv.Set(GoalsKey, []byte(`{"time":150,"calories":2000}`))
	repo := NewRepository(kv, nil)

	workouts, err := repo.LoadWorkouts()
	if err != nil {
		t.Fatalf("LoadWorkouts failed: %v", err)
	}
	if len(workouts) != 1 || workouts[0].ID != 1704103200000 || workouts[0].Date.String() != "2024-01-01" {
		t.Errorf("LoadWorkouts = %+v", workouts)
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitlog.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := db.Set(GoalsKey, []byte(`{"time":99,"calories":999}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	goals, err := NewRepository(db, nil).LoadGoals()
	if err != nil {
		t.Fatalf("LoadGoals failed: %v", err)
	}
	if goals.Time != 99 {
		t.Errorf("goals.Time = %d, want 99", goals.Time)
	}
}

func TestBadgerOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	b, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	if err := b.Set(WorkoutsKey, []byte("[]")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	b.Close()

	b, err = OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b.Close()
	if got, err := b.Get(WorkoutsKey); err != nil || string(got) != "[]" {
		t.Errorf("Get = %q, %v; want [] and no error", got, err)
	}
}
