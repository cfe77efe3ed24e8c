package view

import (
	"fmt"
	"time"

	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/schedule"
)

// BannerItem is one featured entry in the rotating banner
type BannerItem struct {
	ID    string
	Title string
	Date  time.Time
	Notes string
}

// Candidates returns the banner items: the selected day of the uploaded
// schedule when one exists, otherwise the today bucket.
func Candidates(tasks []model.Task, sched schedule.Schedule, selectedDay int, today time.Time) []BannerItem {
	if !sched.Empty() {
		var items []BannerItem
		for _, e := range sched.ForDay(selectedDay) {
			items = append(items, BannerItem{
				ID:    fmt.Sprintf("u-%d-%d", e.Day, e.Index),
				Title: e.Title,
				Date:  schedule.DateFor(sched.Start, e.Day),
			})
		}
		return items
	}

	var items []BannerItem
	for _, task := range Bucket(tasks, TabToday, today) {
		items = append(items, BannerItem{
			ID:    task.ID,
			Title: task.Title,
			Date:  task.Date,
			Notes: task.Notes,
		})
	}
	return items
}

// Wrap maps any index, negative or overflowing, into [0, count)
func Wrap(index, count int) int {
	if count <= 0 {
		return 0
	}
	return (index%count + count) % count
}

// Pick returns the item shown for the banner index.
// It returns false when there are no candidates.
func Pick(items []BannerItem, index int) (BannerItem, bool) {
	if len(items) == 0 {
		return BannerItem{}, false
	}
	return items[Wrap(index, len(items))], true
}

// Subtitle returns the notes, or the date when there are none
func (b BannerItem) Subtitle() string {
	if b.Notes != "" {
		return b.Notes
	}
	return model.FormatDate(b.Date)
}
