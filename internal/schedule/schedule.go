package schedule

import (
	"time"

	"github.com/dori/daybook/internal/model"
)

// Schedule is the most recently uploaded schedule, grouped by day for the banner
type Schedule struct {
	Start   time.Time
	Entries []model.ScheduleEntry
}

// New builds a schedule from parsed entries and a resolved start date
func New(entries []model.ScheduleEntry, start time.Time) Schedule {
	return Schedule{Start: model.DateOf(start), Entries: entries}
}

// Empty returns true if no schedule has been uploaded
func (s Schedule) Empty() bool {
	return len(s.Entries) == 0
}

// Days returns the highest day number in the schedule
func (s Schedule) Days() int {
	max := 0
	for _, e := range s.Entries {
		if e.Day > max {
			max = e.Day
		}
	}
	return max
}

// ForDay returns the entries scheduled on the given day, in upload order
func (s Schedule) ForDay(day int) []model.ScheduleEntry {
	var out []model.ScheduleEntry
	for _, e := range s.Entries {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}
