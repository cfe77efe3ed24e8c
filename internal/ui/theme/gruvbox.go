package theme

import "github.com/charmbracelet/lipgloss"

// Gruvbox theme - Retro groove color scheme
// https://github.com/morhetz/gruvbox
var Gruvbox = Theme{
	Name: "gruvbox",

	// Dark mode
	Background: lipgloss.Color("#282828"),
	Foreground: lipgloss.Color("#EBDBB2"),
	Subtle:     lipgloss.Color("#928374"),
	Highlight:  lipgloss.Color("#3C3836"),
	Border:     lipgloss.Color("#504945"),

	Primary:   lipgloss.Color("#83A598"), // Aqua
	Secondary: lipgloss.Color("#8EC07C"),
	Info:      lipgloss.Color("#83A598"),

	Success: lipgloss.Color("#B8BB26"),
	Warning: lipgloss.Color("#FABD2F"),
	Error:   lipgloss.Color("#FB4934"),

	PriorityLow:    lipgloss.Color("#B8BB26"),
	PriorityMedium: lipgloss.Color("#FABD2F"),
	PriorityHigh:   lipgloss.Color("#FE8019"),

	StatusToday:      lipgloss.Color("#83A598"),
	StatusUpcoming:   lipgloss.Color("#8EC07C"),
	StatusPending:    lipgloss.Color("#FABD2F"),
	StatusIncomplete: lipgloss.Color("#FB4934"),
	StatusFinished:   lipgloss.Color("#B8BB26"),

	Banner: [4]Gradient{
		{From: lipgloss.Color("#458588"), To: lipgloss.Color("#83A598")},
		{From: lipgloss.Color("#B16286"), To: lipgloss.Color("#D3869B")},
		{From: lipgloss.Color("#98971A"), To: lipgloss.Color("#B8BB26")},
		{From: lipgloss.Color("#D65D0E"), To: lipgloss.Color("#FABD2F")},
	},
}
