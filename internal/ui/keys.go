package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings; per-view keys live in the views
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Tabs
	TodayTab      key.Binding
	PendingTab    key.Binding
	UpcomingTab   key.Binding
	FinishedTab   key.Binding
	IncompleteTab key.Binding
	StatsTab      key.Binding
	NextTab       key.Binding
	PrevTab       key.Binding

	// Task actions
	New      key.Binding
	Complete key.Binding
	Pending  key.Binding
	Fail     key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Move     key.Binding

	// Browsing
	Search    key.Binding
	Filter    key.Binding
	Sort      key.Binding
	BoardView key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding

	// General
	ThemeCycle key.Binding
	Help       key.Binding
	Quit       key.Binding
	Back       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),

		TodayTab: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "today"),
		),
		PendingTab: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "pending"),
		),
		UpcomingTab: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "upcoming"),
		),
		FinishedTab: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "finished"),
		),
		IncompleteTab: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "incomplete"),
		),
		StatsTab: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "stats"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tab"),
		),

		New: key.NewBinding(
			key.WithKeys("ctrl+n", "a"),
			key.WithHelp("C-n", "new"),
		),
		Complete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "complete"),
		),
		Pending: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pending"),
		),
		Fail: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "incomplete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f", "c"),
			key.WithHelp("f/c", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s/S", "sort"),
		),
		BoardView: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "board"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next day"),
		),

		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.TodayTab, k.PendingTab, k.UpcomingTab, k.FinishedTab, k.IncompleteTab, k.StatsTab},
		{k.New, k.Edit, k.Complete, k.Pending, k.Fail, k.Delete, k.Move},
		{k.Search, k.Filter, k.Sort, k.BoardView},
		{k.PrevDay, k.NextDay, k.ThemeCycle, k.Help, k.Quit},
	}
}
