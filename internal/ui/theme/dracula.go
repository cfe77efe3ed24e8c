package theme

import "github.com/charmbracelet/lipgloss"

// Dracula theme - Dark theme with vibrant colors
// https://draculatheme.com/
var Dracula = Theme{
	Name: "dracula",

	Background: lipgloss.Color("#282A36"),
	Foreground: lipgloss.Color("#F8F8F2"),
	Subtle:     lipgloss.Color("#6272A4"),
	Highlight:  lipgloss.Color("#44475A"),
	Border:     lipgloss.Color("#6272A4"),

	Primary:   lipgloss.Color("#BD93F9"), // Purple
	Secondary: lipgloss.Color("#8BE9FD"), // Cyan
	Info:      lipgloss.Color("#8BE9FD"),

	Success: lipgloss.Color("#50FA7B"),
	Warning: lipgloss.Color("#F1FA8C"),
	Error:   lipgloss.Color("#FF5555"),

	PriorityLow:    lipgloss.Color("#50FA7B"),
	PriorityMedium: lipgloss.Color("#F1FA8C"),
	PriorityHigh:   lipgloss.Color("#FFB86C"),

	StatusToday:      lipgloss.Color("#BD93F9"),
	StatusUpcoming:   lipgloss.Color("#8BE9FD"),
	StatusPending:    lipgloss.Color("#F1FA8C"),
	StatusIncomplete: lipgloss.Color("#FF5555"),
	StatusFinished:   lipgloss.Color("#50FA7B"),

	Banner: [4]Gradient{
		{From: lipgloss.Color("#BD93F9"), To: lipgloss.Color("#FF79C6")},
		{From: lipgloss.Color("#6272A4"), To: lipgloss.Color("#8BE9FD")},
		{From: lipgloss.Color("#50FA7B"), To: lipgloss.Color("#8BE9FD")},
		{From: lipgloss.Color("#FFB86C"), To: lipgloss.Color("#FF5555")},
	},
}
