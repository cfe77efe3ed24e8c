package model

import (
	"time"
)

// Status represents where a task sits in its lifecycle
type Status string

const (
	StatusToday      Status = "today"
	StatusUpcoming   Status = "upcoming"
	StatusPending    Status = "pending"
	StatusIncomplete Status = "incomplete"
	StatusFinished   Status = "finished"
)

// Statuses lists every status in display order
func Statuses() []Status {
	return []Status{StatusToday, StatusPending, StatusUpcoming, StatusFinished, StatusIncomplete}
}

// Valid returns true if s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusToday, StatusUpcoming, StatusPending, StatusIncomplete, StatusFinished:
		return true
	}
	return false
}

// Handled returns true for the stored states that override date-based bucketing
func (s Status) Handled() bool {
	return s == StatusPending || s == StatusIncomplete || s == StatusFinished
}

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority from lowest to highest
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Weight returns the fixed ordinal used for sorting by priority
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid returns true if p is a known priority
func (p Priority) Valid() bool {
	return p.Weight() > 0
}

// Next cycles Low -> Medium -> High -> Low
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// ChecklistItem is one line of a checklist task
type ChecklistItem struct {
	Text    string `json:"text" yaml:"text"`
	Checked bool   `json:"checked" yaml:"checked"`
}

// Task represents a tracked task
type Task struct {
	ID          string          `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Date        time.Time       `json:"date" yaml:"date"` // calendar date, UTC midnight
	Category    string          `json:"category,omitempty" yaml:"category,omitempty"`
	Priority    Priority        `json:"priority" yaml:"priority"`
	Notes       string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status      Status          `json:"status" yaml:"status"`
	Reason      string          `json:"reason,omitempty" yaml:"reason,omitempty"`
	FinishedAt  *time.Time      `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	IsChecklist bool            `json:"checklist" yaml:"checklist"`
	Checklist   []ChecklistItem `json:"checklist_items,omitempty" yaml:"checklist_items,omitempty"`
	CreatedAt   time.Time       `json:"created_at" yaml:"created_at"`
}

// Clone returns a deep copy so callers cannot alias store-owned slices
func (t Task) Clone() Task {
	c := t
	if t.FinishedAt != nil {
		at := *t.FinishedAt
		c.FinishedAt = &at
	}
	if t.Checklist != nil {
		c.Checklist = make([]ChecklistItem, len(t.Checklist))
		copy(c.Checklist, t.Checklist)
	}
	return c
}

// IsFinished returns true if the task is finished
func (t *Task) IsFinished() bool {
	return t.Status == StatusFinished
}

// IsOverdue returns true if the task's date has passed and nothing handles it yet
func (t *Task) IsOverdue(today time.Time) bool {
	if t.Status.Handled() {
		return false
	}
	return t.Date.Before(today)
}

// IsDueToday returns true if the task is scheduled for today
func (t *Task) IsDueToday(today time.Time) bool {
	return t.Date.Equal(today)
}

// AllChecked returns true when every checklist item is checked
func (t *Task) AllChecked() bool {
	for _, item := range t.Checklist {
		if !item.Checked {
			return false
		}
	}
	return true
}

// CheckedCount returns how many checklist items are checked
func (t *Task) CheckedCount() int {
	n := 0
	for _, item := range t.Checklist {
		if item.Checked {
			n++
		}
	}
	return n
}
