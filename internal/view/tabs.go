// Package view derives what is displayed from the task collection: tab
// buckets, search/filter/sort, aggregate stats and the rotating banner.
// Everything here is a read-only projection; nothing is written back.
package view

import (
	"strings"
	"time"

	"github.com/dori/daybook/internal/model"
)

// Tab is one of the task browser tabs
type Tab int

const (
	TabToday Tab = iota
	TabPending
	TabUpcoming
	TabFinished
	TabIncomplete
	TabStats
)

// Tabs returns every tab in display order
func Tabs() []Tab {
	return []Tab{TabToday, TabPending, TabUpcoming, TabFinished, TabIncomplete, TabStats}
}

// String returns the display name for a tab
func (t Tab) String() string {
	switch t {
	case TabToday:
		return "Today"
	case TabPending:
		return "Pending"
	case TabUpcoming:
		return "Upcoming"
	case TabFinished:
		return "Finished"
	case TabIncomplete:
		return "Incomplete"
	case TabStats:
		return "Stats"
	default:
		return "Unknown"
	}
}

// ParseTab returns the tab with the given name, case-insensitively
func ParseTab(name string) (Tab, bool) {
	for _, t := range Tabs() {
		if strings.EqualFold(t.String(), strings.TrimSpace(name)) {
			return t, true
		}
	}
	return TabToday, false
}

// DropStatus returns the status a task gets when dropped on the tab
func (t Tab) DropStatus() (model.Status, bool) {
	switch t {
	case TabToday:
		return model.StatusToday, true
	case TabPending:
		return model.StatusPending, true
	case TabUpcoming:
		return model.StatusUpcoming, true
	case TabFinished:
		return model.StatusFinished, true
	case TabIncomplete:
		return model.StatusIncomplete, true
	default:
		return "", false
	}
}

// In returns true if the task belongs to the tab's bucket on the given day
func (t Tab) In(task model.Task, today time.Time) bool {
	switch t {
	case TabToday:
		return task.Date.Equal(today) && !task.Status.Handled()
	case TabPending:
		return task.Status == model.StatusPending
	case TabUpcoming:
		return task.Date.After(today) && !task.Status.Handled()
	case TabFinished:
		return task.Status == model.StatusFinished
	case TabIncomplete:
		return task.Status == model.StatusIncomplete
	case TabStats:
		return true
	default:
		return false
	}
}

// Bucket returns the tasks in the tab, in collection order
func Bucket(tasks []model.Task, tab Tab, today time.Time) []model.Task {
	var out []model.Task
	for _, task := range tasks {
		if tab.In(task, today) {
			out = append(out, task)
		}
	}
	return out
}
