// Package quickadd parses the one-line task syntax used by `daybook add`
// and the date field of the task form.
package quickadd

import (
	"strings"
	"time"

	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/model"
)

// Parse turns quick-add text into a draft.
//
//	Buy milk @errands !high on:tomorrow
//
// @word sets the category, !low/!medium/!high the priority and on:<date>
// the date. Tokens that do not parse stay in the title.
func Parse(text string, today time.Time) lifecycle.Draft {
	draft := lifecycle.Draft{Priority: model.PriorityMedium}

	var titleParts []string
	for _, word := range strings.Fields(text) {
		lower := strings.ToLower(word)
		switch {
		case strings.HasPrefix(word, "@") && len(word) > 1:
			draft.Category = strings.TrimPrefix(word, "@")

		case strings.HasPrefix(word, "!"):
			if p, ok := ParsePriority(strings.TrimPrefix(word, "!")); ok {
				draft.Priority = p
			} else {
				titleParts = append(titleParts, word)
			}

		case strings.HasPrefix(lower, "on:"), strings.HasPrefix(lower, "due:"):
			value := lower[strings.Index(lower, ":")+1:]
			if d, ok := ParseDate(value, today); ok {
				draft.Date = d
			} else {
				titleParts = append(titleParts, word)
			}

		default:
			titleParts = append(titleParts, word)
		}
	}

	draft.Title = strings.Join(titleParts, " ")
	return draft
}

// ParsePriority accepts low/medium/high and their short forms
func ParsePriority(s string) (model.Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return model.PriorityLow, true
	case "medium", "med", "m":
		return model.PriorityMedium, true
	case "high", "hi", "h":
		return model.PriorityHigh, true
	}
	return "", false
}

// ParseDate resolves a date relative to today: today, tomorrow, weekday
// names (the next such day), nextweek, or an explicit date.
func ParseDate(s string, today time.Time) (time.Time, bool) {
	today = model.DateOf(today)

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, true
	case "tomorrow", "tom":
		return model.AddDays(today, 1), true
	case "yesterday":
		return model.AddDays(today, -1), true
	case "monday", "mon":
		return nextWeekday(today, time.Monday), true
	case "tuesday", "tue":
		return nextWeekday(today, time.Tuesday), true
	case "wednesday", "wed":
		return nextWeekday(today, time.Wednesday), true
	case "thursday", "thu":
		return nextWeekday(today, time.Thursday), true
	case "friday", "fri":
		return nextWeekday(today, time.Friday), true
	case "saturday", "sat":
		return nextWeekday(today, time.Saturday), true
	case "sunday", "sun":
		return nextWeekday(today, time.Sunday), true
	case "nextweek":
		return model.AddDays(today, 7), true
	}

	formats := []string{
		model.DateLayout,
		"01/02/2006",
		"01-02-2006",
		"Jan 2, 2006",
		"Jan 2",
	}
	for _, format := range formats {
		t, err := time.ParseInLocation(format, strings.TrimSpace(s), time.UTC)
		if err != nil {
			continue
		}
		// If no year, use current year
		if t.Year() == 0 {
			t = time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, true
	}

	return time.Time{}, false
}

// nextWeekday returns the next date after today falling on day
func nextWeekday(today time.Time, day time.Weekday) time.Time {
	daysUntil := int(day - today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return model.AddDays(today, daysUntil)
}
