package view

import (
	"time"

	"github.com/dori/daybook/internal/model"
)

// Stats holds aggregate counts for the stats tab
type Stats struct {
	Total     int
	PerTab    map[Tab]int
	Checklist int

	// Completions per day for the last 7 days, oldest first
	Daily []DayCount
}

// DayCount is the number of tasks finished on a calendar date
type DayCount struct {
	Date  time.Time
	Count int
}

// Finished returns the finished count
func (s Stats) Finished() int { return s.PerTab[TabFinished] }

// Incomplete returns the incomplete count
func (s Stats) Incomplete() int { return s.PerTab[TabIncomplete] }

// CompletionRate returns finished/total as a percentage
func (s Stats) CompletionRate() int {
	if s.Total == 0 {
		return 0
	}
	return s.Finished() * 100 / s.Total
}

// Summarize computes the stats tab over the full, unfiltered collection
func Summarize(tasks []model.Task, today time.Time) Stats {
	s := Stats{Total: len(tasks), PerTab: make(map[Tab]int)}

	daily := make([]DayCount, 7)
	for i := range daily {
		daily[i].Date = model.AddDays(today, i-6)
	}

	for _, task := range tasks {
		for _, tab := range Tabs() {
			if tab != TabStats && tab.In(task, today) {
				s.PerTab[tab]++
			}
		}
		if task.IsChecklist {
			s.Checklist++
		}
		if task.FinishedAt != nil {
			day := model.DateOf(*task.FinishedAt)
			for i := range daily {
				if daily[i].Date.Equal(day) {
					daily[i].Count++
				}
			}
		}
	}

	s.Daily = daily
	return s
}
