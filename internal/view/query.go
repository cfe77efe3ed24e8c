package view

import (
	"slices"
	"strings"
	"time"

	"github.com/dori/daybook/internal/model"
)

// SortKey selects the field a list is ordered by
type SortKey int

const (
	SortByDate SortKey = iota
	SortByPriority
)

// String returns the display name for a sort key
func (k SortKey) String() string {
	if k == SortByPriority {
		return "priority"
	}
	return "date"
}

// ParseSortKey parses "date" or "priority"
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date", "d":
		return SortByDate, true
	case "priority", "pri", "p":
		return SortByPriority, true
	}
	return SortByDate, false
}

// Query holds the optional search, filters and ordering for a tab
type Query struct {
	Search   string
	Priority model.Priority // empty means any
	Category string         // empty means any
	SortBy   SortKey
	Desc     bool
}

// Active returns true if any filter narrows the list
func (q Query) Active() bool {
	return strings.TrimSpace(q.Search) != "" || q.Priority != "" || q.Category != ""
}

// Matches returns true if the task passes the search and both filters
func (q Query) Matches(task model.Task) bool {
	if !matchesSearch(task, q.Search) {
		return false
	}
	if q.Priority != "" && task.Priority != q.Priority {
		return false
	}
	if q.Category != "" && task.Category != q.Category {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match over title, category and notes
func matchesSearch(task model.Task, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(task.Title), needle) ||
		strings.Contains(strings.ToLower(task.Category), needle) ||
		strings.Contains(strings.ToLower(task.Notes), needle)
}

// Apply filters tasks with q and sorts the result. Ties keep arrival order.
func Apply(tasks []model.Task, q Query) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if q.Matches(task) {
			out = append(out, task)
		}
	}

	cmp := compareDate
	if q.SortBy == SortByPriority {
		cmp = comparePriority
	}
	slices.SortStableFunc(out, func(a, b model.Task) int {
		if q.Desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}

func compareDate(a, b model.Task) int {
	return a.Date.Compare(b.Date)
}

func comparePriority(a, b model.Task) int {
	return a.Priority.Weight() - b.Priority.Weight()
}

// State is the derived, never persisted view state
type State struct {
	Tab         Tab
	Query       Query
	BannerIndex int
	SelectedDay int
}

// Derive returns the list to display for the state's tab
func Derive(tasks []model.Task, s State, today time.Time) []model.Task {
	return Apply(Bucket(tasks, s.Tab, today), s.Query)
}

// Categories returns the distinct non-empty categories in first-seen order
func Categories(tasks []model.Task) []string {
	seen := make(map[string]bool)
	var out []string
	for _, task := range tasks {
		if task.Category == "" || seen[task.Category] {
			continue
		}
		seen[task.Category] = true
		out = append(out, task.Category)
	}
	return out
}
