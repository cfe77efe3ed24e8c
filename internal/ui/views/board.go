package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/ui/theme"
	"github.com/dori/daybook/internal/view"
)

// boardColumns are the status tabs shown side by side; dropping a task on a
// column moves it to that tab's status
var boardColumns = []view.Tab{view.TabToday, view.TabPending, view.TabUpcoming, view.TabFinished, view.TabIncomplete}

// BoardView shows every status tab as a column and moves tasks between them
type BoardView struct {
	engine *lifecycle.Engine
	width  int
	height int

	query   view.Query
	columns [5][]model.Task

	// Navigation state
	currentColumn int
	cursorRow     int
	columnScroll  [5]int

	statusMsg string
}

// NewBoardView creates a board view
func NewBoardView(engine *lifecycle.Engine) BoardView {
	v := BoardView{engine: engine}
	return v.Refresh()
}

// Init initializes the board view
func (v BoardView) Init() tea.Cmd {
	return nil
}

// IsInputMode returns false; the board has no prompts
func (v BoardView) IsInputMode() bool {
	return false
}

// SetSize sets the view dimensions
func (v BoardView) SetSize(width, height int) BoardView {
	v.width = width
	v.height = height
	return v
}

// SetQuery shares the list's search and filters with the board
func (v BoardView) SetQuery(q view.Query) BoardView {
	v.query = q
	return v.Refresh()
}

// FocusTab puts the cursor on the column for tab
func (v BoardView) FocusTab(tab view.Tab) BoardView {
	for i, c := range boardColumns {
		if c == tab {
			v.currentColumn = i
			v.clampCursor()
		}
	}
	return v
}

// Tab returns the tab of the focused column
func (v BoardView) Tab() view.Tab {
	return boardColumns[v.currentColumn]
}

// Refresh re-derives every column from the store
func (v BoardView) Refresh() BoardView {
	tasks := v.engine.Store().All()
	today := v.engine.Today()
	for i, tab := range boardColumns {
		v.columns[i] = view.Derive(tasks, view.State{Tab: tab, Query: v.query}, today)
	}
	v.clampCursor()
	return v
}

// Update handles messages for the board view
func (v BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	v.statusMsg = ""

	switch msgKey.String() {
	case "left", "h":
		if v.currentColumn > 0 {
			v.currentColumn--
			v.clampCursor()
		}
	case "right", "l":
		if v.currentColumn < len(boardColumns)-1 {
			v.currentColumn++
			v.clampCursor()
		}
	case "up", "k":
		if v.cursorRow > 0 {
			v.cursorRow--
		}
	case "down", "j":
		if v.cursorRow < len(v.columns[v.currentColumn])-1 {
			v.cursorRow++
		}
	case "H", "shift+left":
		v = v.moveTask(-1)
	case "L", "shift+right":
		v = v.moveTask(1)
	case "e":
		if task, ok := v.selected(); ok {
			return v, func() tea.Msg { return EditTaskRequest{Task: task} }
		}
	}

	v.ensureCursorVisible()
	return v, nil
}

func (v BoardView) selected() (model.Task, bool) {
	col := v.columns[v.currentColumn]
	if v.cursorRow >= len(col) {
		return model.Task{}, false
	}
	return col[v.cursorRow], true
}

// moveTask drops the task under the cursor on the neighbouring column and
// follows it there
func (v BoardView) moveTask(direction int) BoardView {
	task, ok := v.selected()
	if !ok {
		return v
	}
	target := v.currentColumn + direction
	if target < 0 || target >= len(boardColumns) {
		return v
	}
	if task.IsChecklist {
		v.statusMsg = "Checklist tasks move by checking items"
		return v
	}

	status, _ := boardColumns[target].DropStatus()
	if !v.engine.Move(task.ID, status) {
		return v
	}

	v = v.Refresh()
	for row, t := range v.columns[target] {
		if t.ID == task.ID {
			v.currentColumn = target
			v.cursorRow = row
			break
		}
	}
	return v
}

func (v *BoardView) clampCursor() {
	n := len(v.columns[v.currentColumn])
	if v.cursorRow >= n {
		v.cursorRow = max(0, n-1)
	}
}

func (v *BoardView) visibleItemCount() int {
	// Header, borders and footer
	return max(1, v.height-5)
}

func (v *BoardView) ensureCursorVisible() {
	visible := v.visibleItemCount()
	scroll := v.columnScroll[v.currentColumn]
	if v.cursorRow < scroll {
		scroll = v.cursorRow
	}
	if v.cursorRow >= scroll+visible {
		scroll = v.cursorRow - visible + 1
	}
	v.columnScroll[v.currentColumn] = max(0, scroll)
}

// View renders the board
func (v BoardView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme

	// Show 3 columns when narrow, 5 when wide
	numVisibleCols := len(boardColumns)
	if v.width < 120 {
		numVisibleCols = 3
	}
	startCol := min(max(0, v.currentColumn-numVisibleCols/2), len(boardColumns)-numVisibleCols)
	endCol := startCol + numVisibleCols

	colWidth := max(20, (v.width-4)/numVisibleCols)

	columnStyle := lipgloss.NewStyle().
		Width(colWidth).
		Height(v.height - 4).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	var headers, cols []string
	for i := startCol; i < endCol; i++ {
		tab := boardColumns[i]
		status, _ := tab.DropStatus()
		tasks := v.columns[i]
		active := i == v.currentColumn

		hs := lipgloss.NewStyle().
			Bold(true).
			Foreground(t.StatusColor(status)).
			Width(colWidth + 2).
			Align(lipgloss.Center)
		if active {
			hs = hs.Background(t.Highlight)
		}
		headers = append(headers, hs.Render(fmt.Sprintf("%s (%d)", tab, len(tasks))))

		scroll := v.columnScroll[i]
		end := min(len(tasks), scroll+v.visibleItemCount())

		var items []string
		if scroll > 0 {
			items = append(items, lipgloss.NewStyle().Foreground(t.Subtle).Render(fmt.Sprintf("↑ %d more", scroll)))
		}
		for j := scroll; j < end; j++ {
			items = append(items, v.renderCard(tasks[j], colWidth, active && j == v.cursorRow))
		}
		if end < len(tasks) {
			items = append(items, lipgloss.NewStyle().Foreground(t.Subtle).Render(fmt.Sprintf("↓ %d more", len(tasks)-end)))
		}

		content := strings.Join(items, "\n")
		if len(tasks) == 0 {
			content = lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render("(empty)")
		}

		cs := columnStyle
		if active {
			cs = cs.BorderForeground(t.Primary)
		}
		cols = append(cols, cs.Render(content))
	}

	footer := lipgloss.NewStyle().Foreground(t.Subtle).Render("h/l: column • j/k: nav • H/L: move task • e: edit")
	if v.statusMsg != "" {
		footer = lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, headers...),
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
		footer,
	)
}

func (v BoardView) renderCard(task model.Task, colWidth int, isCursor bool) string {
	t := theme.Current.Theme

	cardStyle := lipgloss.NewStyle().Width(colWidth - 2).Padding(0, 1).Foreground(t.Foreground)
	if isCursor {
		cardStyle = cardStyle.Background(t.Highlight)
	}

	priority := lipgloss.NewStyle().Foreground(t.PriorityColor(task.Priority)).Render("●")

	suffix := ""
	if task.IsChecklist {
		suffix = fmt.Sprintf(" (%d/%d)", task.CheckedCount(), len(task.Checklist))
	}

	title := task.Title
	maxTitleLen := max(10, colWidth-6-len(suffix))
	if len([]rune(title)) > maxTitleLen {
		title = string([]rune(title)[:maxTitleLen-3]) + "..."
	}

	return cardStyle.Render(priority + " " + title + suffix)
}
