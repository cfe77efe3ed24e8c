package schedule

import (
	"reflect"
	"testing"

	"github.com/dori/daybook/internal/model"
)

func TestParseDayPrefixed(t *testing.T) {
	got := Parse("Day1 - Wake up\nDay1 - Jog\nDay2 - Work")
	want := []model.ScheduleEntry{
		{Day: 1, Title: "Wake up", Index: 1},
		{Day: 1, Title: "Jog", Index: 2},
		{Day: 2, Title: "Work", Index: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParsePositionalFallback(t *testing.T) {
	got := Parse("Go shopping\nCall Sam")
	want := []model.ScheduleEntry{
		{Day: 1, Title: "Go shopping", Index: 1},
		{Day: 2, Title: "Call Sam", Index: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseLineVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []model.ScheduleEntry
	}{
		{
			name:  "empty input",
			input: "",
			want:  []model.ScheduleEntry{},
		},
		{
			name:  "only blank lines",
			input: "\n   \r\n\t\n",
			want:  []model.ScheduleEntry{},
		},
		{
			name:  "crlf endings and padding",
			input: "  day 3 -   Stretch  \r\n\r\nDAY  4-Read\r\n",
			want: []model.ScheduleEntry{
				{Day: 3, Title: "Stretch", Index: 1},
				{Day: 4, Title: "Read", Index: 2},
			},
		},
		{
			name:  "mixed prefixed and plain lines",
			input: "Day 2 - Swim\nLaundry\nDay 1 - Plan",
			want: []model.ScheduleEntry{
				{Day: 2, Title: "Swim", Index: 1},
				{Day: 2, Title: "Laundry", Index: 2},
				{Day: 1, Title: "Plan", Index: 3},
			},
		},
		{
			name:  "day without dash falls back",
			input: "Day 5 Rest",
			want: []model.ScheduleEntry{
				{Day: 1, Title: "Day 5 Rest", Index: 1},
			},
		},
		{
			name:  "day zero falls back",
			input: "x\nDay 0 - Nothing",
			want: []model.ScheduleEntry{
				{Day: 1, Title: "x", Index: 1},
				{Day: 2, Title: "Day 0 - Nothing", Index: 2},
			},
		},
		{
			name:  "day past the maximum falls back",
			input: "Day 3000000 - Far away\nDay 3660 - Last day",
			want: []model.ScheduleEntry{
				{Day: 1, Title: "Day 3000000 - Far away", Index: 1},
				{Day: 3660, Title: "Last day", Index: 2},
			},
		},
		{
			name:  "day overflowing int falls back",
			input: "Day 99999999999999999999 - Never",
			want: []model.ScheduleEntry{
				{Day: 1, Title: "Day 99999999999999999999 - Never", Index: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
