// ABOUTME: Session controller owning the workout list and weekly goals.
// ABOUTME: Every mutation persists, recomputes the dashboard, and re-renders.
package tracker

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/harperreed/fitlog/internal/storage"
)

// Session is the single owner of fitness log state.
type Session struct {
	mu       sync.Mutex
	repo     *storage.Repository
	confirm  Confirmer
	render   Renderer
	now      func() time.Time
	logger   *log.Logger
	workouts []models.Workout
	goals    models.Goals
	lastID   int64
}

// Option configures a Session.
type Option func(*Session)

// WithConfirmer sets the confirmation port used before deletes.
func WithConfirmer(c Confirmer) Option {
	return func(s *Session) { s.confirm = c }
}

// WithRenderer sets the render port called after every change.
func WithRenderer(r Renderer) Option {
	return func(s *Session) { s.render = r }
}

// WithClock overrides the clock used for "today" and record IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a session over repo. Call Load before use.
func New(repo *storage.Repository, opts ...Option) *Session {
	s := &Session{
		repo:    repo,
		confirm: AlwaysConfirm,
		render:  NopRenderer,
		now:     time.Now,
		goals:   models.DefaultGoals(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// SetRenderer swaps the render port.
func (s *Session) SetRenderer(r Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.render = r
}

// SetConfirmer swaps the confirmation port.
func (s *Session) SetConfirmer(c Confirmer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirm = c
}

// Load reads both slots from storage and renders the result.
func (s *Session) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(); err != nil {
		return err
	}
	s.logger.Debug("loaded fitness log", "workouts", len(s.workouts), "time_goal", s.goals.Time, "calorie_goal", s.goals.Calories)

	return s.refreshLocked()
}

// reloadLocked replaces the in-memory state with the stored slots. lastID
// only moves forward.
func (s *Session) reloadLocked() error {
	workouts, err := s.repo.LoadWorkouts()
	if err != nil {
		return err
	}
	goals, err := s.repo.LoadGoals()
	if err != nil {
		return err
	}

	s.workouts = workouts
	s.goals = goals
	for _, w := range workouts {
		if w.ID > s.lastID {
			s.lastID = w.ID
		}
	}
	return nil
}

// readLocked refreshes state for read paths. On failure the last known
// state is kept.
func (s *Session) readLocked() {
	if err := s.reloadLocked(); err != nil {
		s.logger.Warn("reload failed, using cached fitness log", "err", err)
	}
}

// Today returns the current calendar day according to the session clock.
func (s *Session) Today() models.Date {
	return models.DateOf(s.now())
}

// Add parses form input and stores a new workout.
func (s *Session) Add(in models.WorkoutInput) (models.Workout, error) {
	w, err := in.Parse(s.Today())
	if err != nil {
		return models.Workout{}, err
	}
	return s.AddWorkout(*w)
}

// AddWorkout validates and stores w. Any ID on w is replaced.
func (s *Session) AddWorkout(w models.Workout) (models.Workout, error) {
	if err := w.Validate(); err != nil {
		return models.Workout{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(); err != nil {
		return models.Workout{}, err
	}
	w.ID = s.nextIDLocked()
	s.workouts = append(s.workouts, w)
	if err := s.repo.SaveWorkouts(s.workouts); err != nil {
		s.workouts = s.workouts[:len(s.workouts)-1]
		return models.Workout{}, err
	}
	s.lastID = w.ID
	s.logger.Info("workout added", "id", w.ID, "type", w.Type, "date", w.Date)

	return w, s.refreshLocked()
}

// nextIDLocked returns a creation timestamp strictly greater than every
// existing ID.
func (s *Session) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	return id
}

// Delete removes the workout with id after confirmation. It reports whether
// a record was removed; unknown ids and declined prompts are no-ops.
func (s *Session) Delete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(); err != nil {
		return false, err
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		s.logger.Debug("delete ignored, no such workout", "id", id)
		return false, nil
	}

	ok, err := s.confirm.Confirm(deletePrompt(s.workouts[idx]))
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	remaining := make([]models.Workout, 0, len(s.workouts)-1)
	remaining = append(remaining, s.workouts[:idx]...)
	remaining = append(remaining, s.workouts[idx+1:]...)
	if err := s.repo.SaveWorkouts(remaining); err != nil {
		return false, err
	}
	s.workouts = remaining
	s.logger.Info("workout deleted", "id", id)

	return true, s.refreshLocked()
}

// Find returns the workout with id.
func (s *Session) Find(id int64) (models.Workout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readLocked()
	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Workout{}, false
	}
	return s.workouts[idx], true
}

func (s *Session) indexLocked(id int64) int {
	for i, w := range s.workouts {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// UpdateGoals replaces both weekly targets.
func (s *Session) UpdateGoals(g models.Goals) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(); err != nil {
		return err
	}
	if err := s.repo.SaveGoals(g); err != nil {
		return err
	}
	s.goals = g
	s.logger.Info("goals updated", "time", g.Time, "calories", g.Calories)

	return s.refreshLocked()
}

// Import appends workouts whose IDs are not already present and, when goals
// is non-nil, replaces the goals. It returns how many workouts were added.
func (s *Session) Import(workouts []models.Workout, goals *models.Goals) (int, error) {
	for _, w := range workouts {
		if err := w.Validate(); err != nil {
			return 0, fmt.Errorf("import workout %d: %w", w.ID, err)
		}
	}
	if goals != nil {
		if err := goals.Validate(); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(); err != nil {
		return 0, err
	}
	merged := append([]models.Workout(nil), s.workouts...)
	added := 0
	lastID := s.lastID
	for _, w := range workouts {
		if w.ID != 0 && containsID(merged, w.ID) {
			continue
		}
		if w.ID == 0 {
			w.ID = s.now().UnixMilli()
			if w.ID <= lastID {
				w.ID = lastID + 1
			}
		}
		merged = append(merged, w)
		if w.ID > lastID {
			lastID = w.ID
		}
		added++
	}

	if added > 0 {
		if err := s.repo.SaveWorkouts(merged); err != nil {
			return 0, err
		}
		s.workouts = merged
		s.lastID = lastID
	}
	if goals != nil {
		if err := s.repo.SaveGoals(*goals); err != nil {
			return added, err
		}
		s.goals = *goals
	}
	s.logger.Info("import finished", "added", added, "goals", goals != nil)

	return added, s.refreshLocked()
}

func containsID(workouts []models.Workout, id int64) bool {
	for _, w := range workouts {
		if w.ID == id {
			return true
		}
	}
	return false
}

// Workouts returns a copy of the records in insertion order.
func (s *Session) Workouts() []models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readLocked()
	return append([]models.Workout{}, s.workouts...)
}

// Goals returns the current weekly targets.
func (s *Session) Goals() models.Goals {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readLocked()
	return s.goals
}

// Dashboard recomputes every aggregate.
func (s *Session) Dashboard() *Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readLocked()
	return Compute(s.workouts, s.goals, s.Today())
}

// Refresh re-reads storage, recomputes the dashboard and hands it to the
// renderer.
func (s *Session) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reloadLocked(); err != nil {
		return err
	}
	return s.refreshLocked()
}

func (s *Session) refreshLocked() error {
	d := Compute(s.workouts, s.goals, s.Today())
	if err := s.render.Render(d); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Close closes the underlying storage.
func (s *Session) Close() error {
	return s.repo.Close()
}
