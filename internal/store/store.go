// Package store holds the authoritative in-memory task collection and keeps
// the persisted snapshot in step with it.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/dori/daybook/internal/model"
)

// ErrDuplicateID is returned when a task id is already in the store
var ErrDuplicateID = errors.New("duplicate task id")

// Persister loads and saves the serialized task collection.
// LoadTasks reports false when nothing has ever been saved.
type Persister interface {
	LoadTasks() ([]model.Task, bool, error)
	SaveTasks(tasks []model.Task) error
}

// Store owns every task. Nothing outside the store mutates a task directly.
type Store struct {
	tasks     []model.Task
	persister Persister
	version   uint64

	// OnSaveError receives persistence failures; saves are fire-and-forget
	OnSaveError func(error)
}

// New creates an empty store backed by p
func New(p Persister) *Store {
	return &Store{persister: p}
}

// Load replaces the collection with the saved snapshot.
// It returns false without touching the store when no snapshot exists.
func (s *Store) Load() (bool, error) {
	tasks, ok, err := s.persister.LoadTasks()
	if err != nil {
		return false, fmt.Errorf("failed to load tasks: %w", err)
	}
	if !ok {
		return false, nil
	}

	seen := make(map[string]bool, len(tasks))
	s.tasks = s.tasks[:0]
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
	}
	s.version++
	return true, nil
}

// Seed replaces the collection with the first-run example tasks and saves them
func (s *Store) Seed(now time.Time, newID func() string) error {
	s.tasks = SeedTasks(now, newID)
	s.version++
	if err := s.persister.SaveTasks(s.snapshot()); err != nil {
		return fmt.Errorf("failed to save seed tasks: %w", err)
	}
	return nil
}

// Open loads the saved snapshot, seeding the store on first run.
// It returns true when seeding happened.
func (s *Store) Open(now time.Time, newID func() string) (bool, error) {
	ok, err := s.Load()
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	return true, s.Seed(now, newID)
}

// SeedTasks returns the example tasks shown on first run
func SeedTasks(now time.Time, newID func() string) []model.Task {
	today := model.DateOf(now)
	tomorrow := model.AddDays(today, 1)

	return []model.Task{
		{
			ID: newID(), Title: "Buy groceries", Date: today, Category: "Personal",
			Priority: model.PriorityHigh, Status: model.StatusToday,
			Notes: "Milk, eggs, veggies", CreatedAt: now,
		},
		{
			ID: newID(), Title: "Team standup notes", Date: today, Category: "Work",
			Priority: model.PriorityMedium, Status: model.StatusToday,
			Notes: "Prepare updates", CreatedAt: now,
		},
		{
			ID: newID(), Title: "Finish report", Date: tomorrow, Category: "Work",
			Priority: model.PriorityHigh, Status: model.StatusUpcoming,
			Notes: "Quarterly sales", CreatedAt: now,
		},
	}
}

// Version changes on every mutation; views use it as the collection identity
func (s *Store) Version() uint64 {
	return s.version
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}

// All returns a copy of every task in store order
func (s *Store) All() []model.Task {
	return s.snapshot()
}

// Get returns a copy of the task with the given id
func (s *Store) Get(id string) (model.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return model.Task{}, false
}

// Prepend adds tasks in front of the collection, keeping their order.
// Nothing is added if any id is already present.
func (s *Store) Prepend(tasks ...model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.ID == "" || seen[t.ID] || s.index(t.ID) >= 0 {
			return fmt.Errorf("%w: %q", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = true
	}

	next := make([]model.Task, 0, len(tasks)+len(s.tasks))
	for _, t := range tasks {
		next = append(next, t.Clone())
	}
	s.tasks = append(next, s.tasks...)
	s.changed()
	return nil
}

// Update applies fn to the task with the given id. fn reports whether it
// changed anything; the id is restored if fn touched it.
func (s *Store) Update(id string, fn func(t *model.Task) bool) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}

	t := s.tasks[i].Clone()
	if !fn(&t) {
		return false
	}
	t.ID = id
	s.tasks[i] = t
	s.changed()
	return true
}

// UpdateAll applies fn to every task and saves once if anything changed.
// It returns how many tasks fn changed.
func (s *Store) UpdateAll(fn func(t *model.Task) bool) int {
	n := 0
	for i := range s.tasks {
		t := s.tasks[i].Clone()
		if fn(&t) {
			t.ID = s.tasks[i].ID
			s.tasks[i] = t
			n++
		}
	}
	if n > 0 {
		s.changed()
	}
	return n
}

// Remove deletes the task with the given id
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.changed()
	return true
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// changed bumps the version and persists the new snapshot
func (s *Store) changed() {
	s.version++
	if err := s.persister.SaveTasks(s.snapshot()); err != nil && s.OnSaveError != nil {
		s.OnSaveError(fmt.Errorf("failed to save tasks: %w", err))
	}
}
