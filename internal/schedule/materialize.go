package schedule

import (
	"time"

	"github.com/dori/daybook/internal/model"
)

// Fields stamped on every uploaded task
const (
	UploadCategory = "Uploaded"
	UploadNotes    = "From upload"
)

// StartPolicy decides the calendar date that schedule day 1 falls on
type StartPolicy struct {
	fromToday bool
	date      time.Time
}

// BeginToday starts the schedule on the current date
func BeginToday() StartPolicy {
	return StartPolicy{fromToday: true}
}

// StartOn starts the schedule on an explicit date
func StartOn(date time.Time) StartPolicy {
	return StartPolicy{date: model.DateOf(date)}
}

// Resolve returns the start date given the current date
func (p StartPolicy) Resolve(today time.Time) time.Time {
	if p.fromToday || p.date.IsZero() {
		return today
	}
	return p.date
}

// DateFor returns the calendar date of a schedule day
func DateFor(start time.Time, day int) time.Time {
	return model.AddDays(start, day-1)
}

// Materialize converts parsed entries into tasks in entry order.
// newID must return a fresh unique id on every call.
func Materialize(entries []model.ScheduleEntry, policy StartPolicy, now time.Time, newID func() string) []model.Task {
	today := model.DateOf(now)
	start := policy.Resolve(today)

	tasks := make([]model.Task, 0, len(entries))
	for _, e := range entries {
		date := DateFor(start, e.Day)
		status := model.StatusUpcoming
		if date.Equal(today) {
			status = model.StatusToday
		}

		tasks = append(tasks, model.Task{
			ID:        newID(),
			Title:     e.Title,
			Date:      date,
			Category:  UploadCategory,
			Priority:  model.PriorityMedium,
			Notes:     UploadNotes,
			Status:    status,
			CreatedAt: now,
		})
	}

	return tasks
}
