package theme

import "github.com/charmbracelet/lipgloss"

// Nord theme - Arctic, north-bluish color palette
// https://www.nordtheme.com/
var Nord = Theme{
	Name: "nord",

	// Polar Night
	Background: lipgloss.Color("#2E3440"),
	Foreground: lipgloss.Color("#ECEFF4"),
	Subtle:     lipgloss.Color("#4C566A"),
	Highlight:  lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#4C566A"),

	// Frost
	Primary:   lipgloss.Color("#88C0D0"),
	Secondary: lipgloss.Color("#81A1C1"),
	Info:      lipgloss.Color("#5E81AC"),

	// Aurora
	Success: lipgloss.Color("#A3BE8C"),
	Warning: lipgloss.Color("#EBCB8B"),
	Error:   lipgloss.Color("#BF616A"),

	PriorityLow:    lipgloss.Color("#A3BE8C"),
	PriorityMedium: lipgloss.Color("#EBCB8B"),
	PriorityHigh:   lipgloss.Color("#D08770"),

	StatusToday:      lipgloss.Color("#88C0D0"),
	StatusUpcoming:   lipgloss.Color("#81A1C1"),
	StatusPending:    lipgloss.Color("#EBCB8B"),
	StatusIncomplete: lipgloss.Color("#BF616A"),
	StatusFinished:   lipgloss.Color("#A3BE8C"),

	Banner: [4]Gradient{
		{From: lipgloss.Color("#5E81AC"), To: lipgloss.Color("#88C0D0")},
		{From: lipgloss.Color("#B48EAD"), To: lipgloss.Color("#81A1C1")},
		{From: lipgloss.Color("#A3BE8C"), To: lipgloss.Color("#8FBCBB")},
		{From: lipgloss.Color("#D08770"), To: lipgloss.Color("#EBCB8B")},
	},
}
