package task

import (
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Store holds the ordered task list. All methods are safe for concurrent use;
// the sweep timer and user actions serialize on a single mutex.
type Store struct {
	mu     sync.Mutex
	tasks  []Task
	clock  Clock
	newID  func() ID
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used by Sweep.
func WithClock(c Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithIDFunc sets the identifier generator used by Add.
func WithIDFunc(fn func() ID) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithLogger sets the logger for store events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		clock:  SystemClock{},
		newID:  newUUID,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newUUID returns a UUIDv7, which sorts by creation time.
func newUUID() ID {
	return ID(uuid.Must(uuid.NewV7()).String())
}

// Add creates a task and re-sorts the list. It reports false, leaving the
// list unchanged, when text is blank or due is the zero Date.
func (s *Store) Add(text string, due Date) (Task, bool) {
	if strings.TrimSpace(text) == "" || due.IsZero() {
		s.logger.Debug("add rejected", "text", text, "due", due)
		return Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:   s.newID(),
		Text: text,
		Due:  due,
	}
	s.tasks = append(s.tasks, t)
	slices.SortStableFunc(s.tasks, func(a, b Task) int {
		return a.Due.Compare(b.Due)
	})
	s.logger.Info("task added", "id", t.ID, "due", t.Due)
	return t, true
}

// AddInput is Add with a raw date string as typed by the user. An empty or
// unparseable date rejects the add.
func (s *Store) AddInput(text, rawDate string) (Task, bool) {
	due, err := ParseDate(rawDate)
	if err != nil {
		s.logger.Debug("add rejected", "date", rawDate, "err", err)
		return Task{}, false
	}
	return s.Add(text, due)
}

// Toggle flips the completion flag of the task with id. It reports whether
// the task exists.
func (s *Store) Toggle(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Info("task toggled", "id", id, "completed", s.tasks[i].Completed)
	return true
}

// Delete removes a completed task. It reports false when the task does not
// exist or is not completed.
func (s *Store) Delete(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	if !s.tasks[i].Completed {
		s.logger.Debug("delete refused", "id", id, "reason", "not completed")
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.logger.Info("task deleted", "id", id)
	return true
}

// SweepExpired removes every task due strictly before the calendar day of
// ref, completed or not, and returns the removed IDs in list order.
func (s *Store) SweepExpired(ref time.Time) []ID {
	today := DateOf(ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []ID
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Due.Before(today) {
			removed = append(removed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept

	if len(removed) > 0 {
		s.logger.Info("expired tasks removed", "count", len(removed), "today", today)
	}
	return removed
}

// Sweep runs SweepExpired against the store's clock.
func (s *Store) Sweep() []ID {
	return s.SweepExpired(s.clock.Now())
}

// Now returns the store clock's current instant.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Tasks returns a copy of the list in display order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id ID) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stats counts total and completed tasks.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	return st
}

func (s *Store) indexOf(id ID) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool {
		return t.ID == id
	})
}
