// Package lifecycle implements the task status rules: creation, the manual
// status operations, checklist aggregation, free moves, edits, deletion and
// the overdue sweep. Every operation goes through the task store.
//
// Failures are absorbed: an operation on an unknown id, an empty reason or an
// out-of-range checklist index changes nothing and reports false.
package lifecycle

import (
	"strings"
	"time"

	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/notify"
	"github.com/dori/daybook/internal/schedule"
	"github.com/dori/daybook/internal/store"
	"github.com/google/uuid"
)

// Notification messages emitted by accepted operations
const (
	MsgAdded            = "Task added"
	MsgUpdated          = "Task updated"
	MsgDeleted          = "Task deleted"
	MsgMoved            = "Task moved"
	MsgComplete         = "Marked complete"
	MsgIncomplete       = "Marked not completed"
	MsgPending          = "Marked pending"
	MsgDone             = "Marked done"
	MsgUndone           = "Marked undone"
	MsgChecklistCreated = "Checklist task created"
	MsgUploaded         = "Uploaded schedule created"
)

// Defaults for checklist tasks
const (
	ChecklistTitle    = "Checklist Task"
	ChecklistCategory = "Checklist"
)

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to a Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt)
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Confirmed approves without asking, for callers that already asked
var Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })

// Engine applies lifecycle rules to the tasks in a store
type Engine struct {
	store  *store.Store
	notify notify.Sink
	now    func() time.Time
	newID  func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the engine's clock
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs overrides task id generation
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New creates an engine over s that reports accepted operations to sink
func New(s *store.Store, sink notify.Sink, opts ...Option) *Engine {
	if sink == nil {
		sink = notify.Discard
	}
	e := &Engine{
		store:  s,
		notify: sink,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine's current instant
func (e *Engine) Now() time.Time {
	return e.now()
}

// Today returns the engine's current calendar date
func (e *Engine) Today() time.Time {
	return model.DateOf(e.now())
}

// NewID returns a fresh task id
func (e *Engine) NewID() string {
	return e.newID()
}

// Store returns the underlying task store
func (e *Engine) Store() *store.Store {
	return e.store
}

// Open loads the saved tasks (seeding on first run) and runs the overdue
// sweep once. It returns the number of tasks the sweep marked incomplete.
func (e *Engine) Open() (swept int, err error) {
	if _, err := e.store.Open(e.now(), e.newID); err != nil {
		return 0, err
	}
	return e.SweepOverdue(), nil
}

// Draft holds the fields of a manually created task
type Draft struct {
	Title    string
	Date     time.Time // zero means today
	Category string
	Priority model.Priority
	Notes    string
}

// InitialStatus returns the status a new task gets for the given date
func InitialStatus(date, today time.Time) model.Status {
	if date.After(today) {
		return model.StatusUpcoming
	}
	return model.StatusToday
}

// Create adds a manual task in front of the collection
func (e *Engine) Create(d Draft) (model.Task, bool) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return model.Task{}, false
	}

	today := e.Today()
	date := today
	if !d.Date.IsZero() {
		date = model.DateOf(d.Date)
	}
	priority := d.Priority
	if !priority.Valid() {
		priority = model.PriorityMedium
	}

	task := model.Task{
		ID:        e.newID(),
		Title:     title,
		Date:      date,
		Category:  strings.TrimSpace(d.Category),
		Priority:  priority,
		Notes:     d.Notes,
		Status:    InitialStatus(date, today),
		CreatedAt: e.now(),
	}
	if err := e.store.Prepend(task); err != nil {
		return model.Task{}, false
	}
	e.notify.Notify(MsgAdded)
	return task, true
}

// CreateChecklist adds a checklist task dated today with one unchecked item
// per non-blank line. An empty title falls back to ChecklistTitle.
func (e *Engine) CreateChecklist(title string, items []string) (model.Task, bool) {
	var list []model.ChecklistItem
	for _, item := range items {
		if text := strings.TrimSpace(item); text != "" {
			list = append(list, model.ChecklistItem{Text: text})
		}
	}
	if len(list) == 0 {
		return model.Task{}, false
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = ChecklistTitle
	}

	task := model.Task{
		ID:          e.newID(),
		Title:       title,
		Date:        e.Today(),
		Category:    ChecklistCategory,
		Priority:    model.PriorityLow,
		Status:      model.StatusToday,
		IsChecklist: true,
		Checklist:   list,
		CreatedAt:   e.now(),
	}
	if err := e.store.Prepend(task); err != nil {
		return model.Task{}, false
	}
	e.notify.Notify(MsgChecklistCreated)
	return task, true
}

// Upload parses raw schedule text, materializes it with policy and prepends
// the resulting tasks. It returns the schedule to show in the banner.
func (e *Engine) Upload(raw string, policy schedule.StartPolicy) (schedule.Schedule, []model.Task, bool) {
	entries := schedule.Parse(raw)
	if len(entries) == 0 {
		return schedule.Schedule{}, nil, false
	}

	now := e.now()
	tasks := schedule.Materialize(entries, policy, now, e.newID)
	if err := e.store.Prepend(tasks...); err != nil {
		return schedule.Schedule{}, nil, false
	}

	e.notify.Notify(MsgUploaded)
	return schedule.New(entries, policy.Resolve(model.DateOf(now))), tasks, true
}

// Patch lists the fields an edit may change; nil fields are left alone
type Patch struct {
	Title    *string
	Date     *time.Time
	Category *string
	Priority *model.Priority
	Notes    *string
	Reason   *string
}

// Edit merges patch into the task without changing its status
func (e *Engine) Edit(id string, p Patch) bool {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return false
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return false
	}

	ok := e.store.Update(id, func(t *model.Task) bool {
		if p.Title != nil {
			t.Title = strings.TrimSpace(*p.Title)
		}
		if p.Date != nil {
			t.Date = model.DateOf(*p.Date)
		}
		if p.Category != nil {
			t.Category = strings.TrimSpace(*p.Category)
		}
		if p.Priority != nil {
			t.Priority = *p.Priority
		}
		if p.Notes != nil {
			t.Notes = *p.Notes
		}
		if p.Reason != nil {
			t.Reason = strings.TrimSpace(*p.Reason)
		}
		return true
	})
	if ok {
		e.notify.Notify(MsgUpdated)
	}
	return ok
}

// Move overwrites a simple task's status with any status, keeping the
// finish time consistent. Checklist tasks only change through Toggle.
func (e *Engine) Move(id string, status model.Status) bool {
	if !status.Valid() {
		return false
	}
	if _, ok := e.Simple(id); !ok {
		return false
	}

	now := e.now()
	ok := e.store.Update(id, func(t *model.Task) bool {
		if t.Status == status {
			return false
		}
		t.Status = status
		setFinished(t, now)
		return true
	})
	if ok {
		e.notify.Notify(MsgMoved)
	}
	return ok
}

// Delete removes a task once c approves
func (e *Engine) Delete(id string, c Confirmer) bool {
	task, ok := e.store.Get(id)
	if !ok {
		return false
	}
	if c == nil || !c.Confirm("Delete \""+task.Title+"\"?") {
		return false
	}
	if !e.store.Remove(id) {
		return false
	}
	e.notify.Notify(MsgDeleted)
	return true
}

// SweepOverdue marks every task dated before today incomplete unless it is
// already finished, incomplete or pending. Any existing reason is kept.
func (e *Engine) SweepOverdue() int {
	today := e.Today()
	return e.store.UpdateAll(func(t *model.Task) bool {
		if !t.IsOverdue(today) {
			return false
		}
		t.Status = model.StatusIncomplete
		t.FinishedAt = nil
		return true
	})
}

// MarkComplete finishes a simple task
func (e *Engine) MarkComplete(id string) bool {
	s, ok := e.Simple(id)
	return ok && s.MarkComplete()
}

// MarkIncomplete marks a simple task not completed with a reason
func (e *Engine) MarkIncomplete(id, reason string) bool {
	s, ok := e.Simple(id)
	return ok && s.MarkIncomplete(reason)
}

// MarkPending marks a simple task pending with a reason
func (e *Engine) MarkPending(id, reason string) bool {
	s, ok := e.Simple(id)
	return ok && s.MarkPending(reason)
}

// ToggleChecklistItem sets one item of a checklist task
func (e *Engine) ToggleChecklistItem(id string, index int, checked bool) bool {
	c, ok := e.Checklist(id)
	return ok && c.Toggle(index, checked)
}

// setFinished keeps FinishedAt set exactly while the status is finished
func setFinished(t *model.Task, now time.Time) {
	if t.Status == model.StatusFinished {
		if t.FinishedAt == nil {
			at := now
			t.FinishedAt = &at
		}
		return
	}
	t.FinishedAt = nil
}
