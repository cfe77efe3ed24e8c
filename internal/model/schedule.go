package model

// ScheduleEntry is one parsed line of an uploaded schedule.
// Entries are transient: they feed task materialization and the banner day selector.
type ScheduleEntry struct {
	Day   int    `json:"day"`
	Title string `json:"title"`
	Index int    `json:"index"` // 1-based line position
}
