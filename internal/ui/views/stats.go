package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/ui/theme"
	"github.com/dori/daybook/internal/view"
)

// StatsView shows aggregate counts over the whole collection
type StatsView struct {
	engine *lifecycle.Engine
	width  int
	height int

	stats view.Stats
}

// NewStatsView creates a new stats view
func NewStatsView(engine *lifecycle.Engine) StatsView {
	v := StatsView{engine: engine}
	return v.Refresh()
}

// Init initializes the stats view
func (v StatsView) Init() tea.Cmd {
	return nil
}

// IsInputMode returns false; the stats view has no prompts
func (v StatsView) IsInputMode() bool {
	return false
}

// SetSize sets the view dimensions
func (v StatsView) SetSize(width, height int) StatsView {
	v.width = width
	v.height = height
	return v
}

// Refresh recomputes the stats from the store
func (v StatsView) Refresh() StatsView {
	v.stats = view.Summarize(v.engine.Store().All(), v.engine.Today())
	return v
}

// Update handles messages for the stats view
func (v StatsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "r" {
		return v.Refresh(), nil
	}
	return v, nil
}

// View renders the stats view
func (v StatsView) View() string {
	t := theme.Current.Theme
	s := v.stats

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	sections = append(sections, titleStyle.Render("Statistics"))
	sections = append(sections, "")

	// Summary cards (side by side)
	cardStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		Width(16)

	labelStyle := lipgloss.NewStyle().Foreground(t.Subtle)
	card := func(value string, label string, color lipgloss.Color) string {
		return cardStyle.Render(
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(value) + "\n" +
				labelStyle.Render(label),
		)
	}

	cardRow := lipgloss.JoinHorizontal(lipgloss.Top,
		card(fmt.Sprintf("%d", s.Total), "Total", t.Primary),
		card(fmt.Sprintf("%d", s.Finished()), "Finished", t.StatusFinished),
		card(fmt.Sprintf("%d", s.Incomplete()), "Incomplete", t.StatusIncomplete),
		card(fmt.Sprintf("%d%%", s.CompletionRate()), "Completion", t.Info),
	)
	sections = append(sections, cardRow)
	sections = append(sections, "")

	// Per-tab breakdown
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)
	sections = append(sections, headerStyle.Render("By Tab"))
	for _, tab := range view.Tabs() {
		status, ok := tab.DropStatus()
		if !ok {
			continue
		}
		name := lipgloss.NewStyle().Foreground(t.StatusColor(status)).Width(12).Render(tab.String())
		sections = append(sections, name+fmt.Sprintf("%d", s.PerTab[tab]))
	}
	sections = append(sections, labelStyle.Render(fmt.Sprintf("%d checklist task(s)", s.Checklist)))
	sections = append(sections, "")

	sections = append(sections, v.renderActivityChart())
	sections = append(sections, "")

	sections = append(sections, labelStyle.Render("r: refresh"))

	return strings.Join(sections, "\n")
}

// renderActivityChart renders the 7-day completion chart
func (v StatsView) renderActivityChart() string {
	t := theme.Current.Theme

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)

	var lines []string
	lines = append(lines, headerStyle.Render("Finished (Last 7 Days)"))

	maxCount := 1
	for _, d := range v.stats.Daily {
		maxCount = max(maxCount, d.Count)
	}

	chartHeight := 5
	barWidth := 4

	for row := chartHeight; row >= 1; row-- {
		var rowStr strings.Builder
		threshold := float64(row) / float64(chartHeight)

		for i, d := range v.stats.Daily {
			ratio := float64(d.Count) / float64(maxCount)

			var block string
			if ratio >= threshold {
				block = lipgloss.NewStyle().Foreground(t.Success).Render(strings.Repeat("█", barWidth))
			} else if ratio >= threshold-0.2 && ratio > 0 {
				block = lipgloss.NewStyle().Foreground(t.Info).Render(strings.Repeat("▄", barWidth))
			} else {
				block = strings.Repeat(" ", barWidth)
			}

			rowStr.WriteString(block)
			if i < len(v.stats.Daily)-1 {
				rowStr.WriteString(" ")
			}
		}
		lines = append(lines, rowStr.String())
	}

	// Day and count labels
	labelStyle := lipgloss.NewStyle().Foreground(t.Subtle).Width(barWidth).Align(lipgloss.Center)
	countStyle := lipgloss.NewStyle().Foreground(t.Foreground).Width(barWidth).Align(lipgloss.Center)
	var labels, counts []string
	for _, d := range v.stats.Daily {
		labels = append(labels, labelStyle.Render(d.Date.Format("Mon")))
		counts = append(counts, countStyle.Render(fmt.Sprintf("%d", d.Count)))
	}
	lines = append(lines, strings.Join(labels, " "))
	lines = append(lines, strings.Join(counts, " "))

	return strings.Join(lines, "\n")
}
