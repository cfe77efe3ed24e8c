package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin theme - Soothing pastel theme (Mocha variant)
// https://github.com/catppuccin/catppuccin
var Catppuccin = Theme{
	Name: "catppuccin",

	// Mocha
	Background: lipgloss.Color("#1E1E2E"),
	Foreground: lipgloss.Color("#CDD6F4"),
	Subtle:     lipgloss.Color("#6C7086"),
	Highlight:  lipgloss.Color("#313244"),
	Border:     lipgloss.Color("#45475A"),

	Primary:   lipgloss.Color("#89B4FA"), // Blue
	Secondary: lipgloss.Color("#CBA6F7"), // Mauve
	Info:      lipgloss.Color("#74C7EC"), // Sapphire

	Success: lipgloss.Color("#A6E3A1"),
	Warning: lipgloss.Color("#F9E2AF"),
	Error:   lipgloss.Color("#F38BA8"),

	PriorityLow:    lipgloss.Color("#A6E3A1"),
	PriorityMedium: lipgloss.Color("#F9E2AF"),
	PriorityHigh:   lipgloss.Color("#FAB387"),

	StatusToday:      lipgloss.Color("#89B4FA"),
	StatusUpcoming:   lipgloss.Color("#CBA6F7"),
	StatusPending:    lipgloss.Color("#F9E2AF"),
	StatusIncomplete: lipgloss.Color("#F38BA8"),
	StatusFinished:   lipgloss.Color("#A6E3A1"),

	Banner: [4]Gradient{
		{From: lipgloss.Color("#89B4FA"), To: lipgloss.Color("#B4BEFE")},
		{From: lipgloss.Color("#CBA6F7"), To: lipgloss.Color("#F5C2E7")},
		{From: lipgloss.Color("#94E2D5"), To: lipgloss.Color("#A6E3A1")},
		{From: lipgloss.Color("#FAB387"), To: lipgloss.Color("#F9E2AF")},
	},
}
