package quickadd

import (
	"testing"
	"time"

	"github.com/dori/daybook/internal/model"
)

// Wednesday
var today = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		text     string
		title    string
		category string
		priority model.Priority
		date     string
	}{
		{"Buy groceries", "Buy groceries", "", model.PriorityMedium, ""},
		{"Review PR @work !high on:tomorrow", "Review PR", "work", model.PriorityHigh, "2024-01-11"},
		{"Call mom !l due:fri", "Call mom", "", model.PriorityLow, "2024-01-12"},
		{"Fix !!! bug on:someday", "Fix !!! bug on:someday", "", model.PriorityMedium, ""},
		{"Plan trip on:2024-03-05 @Personal", "Plan trip", "Personal", model.PriorityMedium, "2024-03-05"},
		{"Email @ bob", "Email @ bob", "", model.PriorityMedium, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d := Parse(tt.text, today)
			if d.Title != tt.title {
				t.Errorf("title = %q, want %q", d.Title, tt.title)
			}
			if d.Category != tt.category {
				t.Errorf("category = %q, want %q", d.Category, tt.category)
			}
			if d.Priority != tt.priority {
				t.Errorf("priority = %q, want %q", d.Priority, tt.priority)
			}
			got := ""
			if !d.Date.IsZero() {
				got = model.FormatDate(d.Date)
			}
			if got != tt.date {
				t.Errorf("date = %q, want %q", got, tt.date)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "2024-01-10"},
		{"today", "2024-01-10"},
		{"Tomorrow", "2024-01-11"},
		{"wed", "2024-01-17"}, // today is Wednesday, so next week
		{"monday", "2024-01-15"},
		{"nextweek", "2024-01-17"},
		{"2024-02-29", "2024-02-29"},
		{"02/03/2024", "2024-02-03"},
		{"Mar 4", "2024-03-04"},
		{"Mar 4, 2025", "2025-03-04"},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in, today)
		if !ok {
			t.Errorf("ParseDate(%q) failed", tt.in)
			continue
		}
		if model.FormatDate(got) != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, model.FormatDate(got), tt.want)
		}
	}

	for _, bad := range []string{"someday", "2024-13-01", "32/01/2024"} {
		if _, ok := ParseDate(bad, today); ok {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}
