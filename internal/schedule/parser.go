// Package schedule turns uploaded schedule text into day-indexed entries and
// materializes those entries into concrete tasks.
package schedule

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dori/daybook/internal/model"
)

// MaxDay is the highest day a "Day N -" prefix may name; larger numbers
// fall back to the line's position like Day 0 does
const MaxDay = 3660

// dayLine matches "Day <N> - <title>" with optional spacing, any case
var dayLine = regexp.MustCompile(`(?i)^day\s*(\d+)\s*-\s*(.+)$`)

// Parse converts raw upload text into schedule entries.
// Lines without a "Day N -" prefix are assigned to the day matching their
// position among the non-blank lines. Parse never fails.
func Parse(raw string) []model.ScheduleEntry {
	lines := splitLines(raw)
	entries := make([]model.ScheduleEntry, 0, len(lines))

	for i, line := range lines {
		index := i + 1
		entry := model.ScheduleEntry{Day: index, Title: line, Index: index}

		if m := dayLine.FindStringSubmatch(line); m != nil {
			if day, err := strconv.Atoi(m[1]); err == nil && day > 0 && day <= MaxDay {
				entry.Day = day
				entry.Title = strings.TrimSpace(m[2])
			}
		}

		entries = append(entries, entry)
	}

	return entries
}

// splitLines normalizes CRLF and LF endings and drops blank lines
func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
