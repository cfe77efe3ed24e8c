package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/ui/theme"
	"github.com/dori/daybook/internal/view"
)

// ListMode represents the current input mode of the list view
type ListMode int

const (
	ListModeNormal ListMode = iota
	ListModeSearch
	ListModeReason
	ListModeConfirmDelete
	ListModeMove
	ListModeChecklist
)

// ListView shows the tasks of one tab with its search, filters and sort
type ListView struct {
	engine *lifecycle.Engine
	width  int
	height int

	state        view.State
	tasks        []model.Task // derived, never edited in place
	cursor       int
	scrollOffset int

	mode      ListMode
	input     textinput.Model
	targetID  string       // task the current prompt applies to
	reasonFor model.Status // pending, incomplete, or "" when editing the reason
	itemIndex int          // checklist item cursor

	statusMsg string
}

// NewListView creates a list view showing tab
func NewListView(engine *lifecycle.Engine, tab view.Tab) ListView {
	ti := textinput.New()
	ti.CharLimit = 256

	v := ListView{
		engine: engine,
		state:  view.State{Tab: tab},
		input:  ti,
	}
	return v.Refresh()
}

// Init initializes the list view
func (v ListView) Init() tea.Cmd {
	return nil
}

// IsInputMode returns true when the view is capturing keys for a prompt
func (v ListView) IsInputMode() bool {
	return v.mode != ListModeNormal
}

// SetSize updates the view dimensions
func (v ListView) SetSize(width, height int) ListView {
	v.width = width
	v.height = height
	v.input.Width = width - 4
	return v
}

// Tab returns the tab being shown
func (v ListView) Tab() view.Tab {
	return v.state.Tab
}

// Query returns the active search, filters and sort
func (v ListView) Query() view.Query {
	return v.state.Query
}

// SetTab switches tabs; the query carries over
func (v ListView) SetTab(tab view.Tab) ListView {
	if tab == v.state.Tab {
		return v
	}
	v.state.Tab = tab
	v.cursor = 0
	v.scrollOffset = 0
	v.mode = ListModeNormal
	v.input.Blur()
	return v.Refresh()
}

// SetQuery replaces the search, filters and sort
func (v ListView) SetQuery(q view.Query) ListView {
	v.state.Query = q
	return v.Refresh()
}

// Refresh re-derives the visible tasks from the store
func (v ListView) Refresh() ListView {
	v.tasks = view.Derive(v.engine.Store().All(), v.state, v.engine.Today())
	if v.cursor >= len(v.tasks) {
		v.cursor = max(0, len(v.tasks)-1)
	}
	v.ensureCursorVisible()
	return v
}

// Selected returns the task under the cursor
func (v ListView) Selected() (model.Task, bool) {
	if len(v.tasks) == 0 {
		return model.Task{}, false
	}
	return v.tasks[v.cursor], true
}

// visibleTaskCount returns how many tasks can fit in the viewport
func (v ListView) visibleTaskCount() int {
	// Reserve lines for the filter bar, prompts and scroll hints
	available := v.height - 5
	if available < 1 {
		available = 1
	}
	return available
}

// ensureCursorVisible adjusts scrollOffset to keep cursor in view
func (v *ListView) ensureCursorVisible() {
	visible := v.visibleTaskCount()

	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}

	maxOffset := len(v.tasks) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	v.scrollOffset = min(max(v.scrollOffset, 0), maxOffset)
}

// Update handles messages for the list view
func (v ListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch v.mode {
		case ListModeSearch:
			return v.handleSearchMode(msg)
		case ListModeReason:
			return v.handleReasonMode(msg)
		case ListModeConfirmDelete:
			return v.handleDeleteConfirm(msg)
		case ListModeMove:
			return v.handleMoveMode(msg)
		case ListModeChecklist:
			return v.handleChecklistMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	if v.mode == ListModeSearch || v.mode == ListModeReason {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleNormalMode handles keypresses in normal mode
func (v ListView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.statusMsg = ""

	switch msg.String() {
	// Navigation
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = max(0, len(v.tasks)-1)
	case "pgup", "ctrl+u":
		v.cursor = max(0, v.cursor-max(1, v.visibleTaskCount()/2))
	case "pgdown", "ctrl+d":
		v.cursor = max(0, min(len(v.tasks)-1, v.cursor+max(1, v.visibleTaskCount()/2)))

	// Lifecycle
	case "x":
		task, ok := v.Selected()
		if !ok {
			break
		}
		if task.IsChecklist {
			v.statusMsg = "Checklist tasks finish when every item is checked"
			break
		}
		if !v.engine.MarkComplete(task.ID) {
			v.statusMsg = "Already finished"
		}
		v = v.Refresh()
	case "i":
		return v.promptReason(model.StatusIncomplete)
	case "p":
		return v.promptReason(model.StatusPending)
	case "r":
		return v.promptReason("")
	case " ", "enter":
		if task, ok := v.Selected(); ok && task.IsChecklist {
			v.mode = ListModeChecklist
			v.targetID = task.ID
			v.itemIndex = 0
		}
	case "m":
		if task, ok := v.Selected(); ok {
			if task.IsChecklist {
				v.statusMsg = "Checklist tasks move by checking items"
				break
			}
			v.mode = ListModeMove
			v.targetID = task.ID
		}
	case "e":
		if task, ok := v.Selected(); ok {
			return v, func() tea.Msg { return EditTaskRequest{Task: task} }
		}
	case "d":
		if task, ok := v.Selected(); ok {
			v.mode = ListModeConfirmDelete
			v.targetID = task.ID
		}

	// Search, filter, sort
	case "/":
		v.mode = ListModeSearch
		v.input.Placeholder = "Search title, category, notes..."
		v.input.SetValue(v.state.Query.Search)
		v.input.CursorEnd()
		return v, v.input.Focus()
	case "f":
		v.state.Query.Priority = nextPriorityFilter(v.state.Query.Priority)
		v = v.Refresh()
	case "c":
		v.state.Query.Category = nextCategoryFilter(v.state.Query.Category, view.Categories(v.engine.Store().All()))
		v = v.Refresh()
	case "s":
		if v.state.Query.SortBy == view.SortByDate {
			v.state.Query.SortBy = view.SortByPriority
		} else {
			v.state.Query.SortBy = view.SortByDate
		}
		v = v.Refresh()
	case "S":
		v.state.Query.Desc = !v.state.Query.Desc
		v = v.Refresh()
	case "C":
		v.state.Query = view.Query{SortBy: v.state.Query.SortBy, Desc: v.state.Query.Desc}
		v = v.Refresh()
	}

	v.ensureCursorVisible()
	return v, nil
}

// promptReason opens the reason prompt. An empty status edits the reason
// of a pending or incomplete task without moving it.
func (v ListView) promptReason(status model.Status) (tea.Model, tea.Cmd) {
	task, ok := v.Selected()
	if !ok {
		return v, nil
	}
	if task.IsChecklist {
		v.statusMsg = "Checklist tasks have no reason"
		return v, nil
	}
	if task.IsFinished() {
		v.statusMsg = "Finished tasks cannot be moved back this way"
		return v, nil
	}
	if status == "" && task.Status != model.StatusPending && task.Status != model.StatusIncomplete {
		v.statusMsg = "Only pending or incomplete tasks carry a reason"
		return v, nil
	}

	v.mode = ListModeReason
	v.targetID = task.ID
	v.reasonFor = status
	switch status {
	case model.StatusIncomplete:
		v.input.Placeholder = "Why wasn't it completed?"
		v.input.SetValue("")
	case model.StatusPending:
		v.input.Placeholder = "Why is it pending?"
		v.input.SetValue("")
	default:
		v.input.Placeholder = "Reason"
		v.input.SetValue(task.Reason)
		v.input.CursorEnd()
	}
	return v, v.input.Focus()
}

// handleReasonMode handles keypresses while typing a reason
func (v ListView) handleReasonMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		reason := strings.TrimSpace(v.input.Value())
		if reason == "" {
			v.statusMsg = "A reason is required"
			return v, nil
		}
		var ok bool
		switch v.reasonFor {
		case model.StatusIncomplete:
			ok = v.engine.MarkIncomplete(v.targetID, reason)
		case model.StatusPending:
			ok = v.engine.MarkPending(v.targetID, reason)
		default:
			ok = v.engine.Edit(v.targetID, lifecycle.Patch{Reason: &reason})
		}
		if !ok {
			v.statusMsg = "Could not update task"
		}
		v.mode = ListModeNormal
		v.input.Blur()
		return v.Refresh(), nil
	case "esc":
		v.mode = ListModeNormal
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleSearchMode handles keypresses in search mode
func (v ListView) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.state.Query.Search = strings.TrimSpace(v.input.Value())
		v.mode = ListModeNormal
		v.input.Blur()
		return v.Refresh(), nil
	case "esc":
		// Cancel clears the search
		v.state.Query.Search = ""
		v.mode = ListModeNormal
		v.input.Blur()
		return v.Refresh(), nil
	}

	// Apply search as user types
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.state.Query.Search = v.input.Value()
	return v.Refresh(), cmd
}

// handleDeleteConfirm handles the y/n delete prompt
func (v ListView) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = ListModeNormal
		v.engine.Delete(v.targetID, lifecycle.Confirmed)
		return v.Refresh(), nil
	case "n", "N", "esc":
		v.mode = ListModeNormal
		v.targetID = ""
	}
	return v, nil
}

// handleMoveMode drops the task on the tab picked with 1-5
func (v ListView) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		v.mode = ListModeNormal
		return v, nil
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '5' {
		tab := view.Tabs()[key[0]-'1']
		status, _ := tab.DropStatus()
		v.mode = ListModeNormal
		if !v.engine.Move(v.targetID, status) {
			v.statusMsg = "Already " + tab.String()
		}
		return v.Refresh(), nil
	}
	return v, nil
}

// handleChecklistMode moves between checklist items and toggles them
func (v ListView) handleChecklistMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task, ok := v.engine.Store().Get(v.targetID)
	if !ok || !task.IsChecklist {
		v.mode = ListModeNormal
		return v.Refresh(), nil
	}

	switch msg.String() {
	case "up", "k":
		if v.itemIndex > 0 {
			v.itemIndex--
		}
	case "down", "j":
		if v.itemIndex < len(task.Checklist)-1 {
			v.itemIndex++
		}
	case " ", "x", "enter":
		item := task.Checklist[v.itemIndex]
		v.engine.ToggleChecklistItem(task.ID, v.itemIndex, !item.Checked)
		v = v.Refresh()
		// Keep the cursor on the task even if it changed tabs
		if !v.cursorOn(task.ID) {
			v.mode = ListModeNormal
		}
	case "esc", "q":
		v.mode = ListModeNormal
	}
	return v, nil
}

// cursorOn moves the cursor to id, reporting whether it is still listed
func (v *ListView) cursorOn(id string) bool {
	for i, t := range v.tasks {
		if t.ID == id {
			v.cursor = i
			v.ensureCursorVisible()
			return true
		}
	}
	return false
}

func nextPriorityFilter(p model.Priority) model.Priority {
	switch p {
	case "":
		return model.PriorityLow
	case model.PriorityLow:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityHigh
	default:
		return ""
	}
}

func nextCategoryFilter(current string, categories []string) string {
	if current == "" {
		if len(categories) == 0 {
			return ""
		}
		return categories[0]
	}
	for i, c := range categories {
		if c == current && i+1 < len(categories) {
			return categories[i+1]
		}
	}
	return ""
}

// View renders the list view
func (v ListView) View() string {
	t := theme.Current.Theme

	var b strings.Builder

	b.WriteString(v.renderQueryBar())
	b.WriteString("\n")

	switch v.mode {
	case ListModeSearch:
		searchStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
		b.WriteString(searchStyle.Render("/"))
		b.WriteString(v.input.View())
		b.WriteString("\n")
	case ListModeReason:
		b.WriteString(theme.Current.Styles.InputFocused.Render(v.input.View()))
		b.WriteString("\n")
	case ListModeConfirmDelete:
		confirmStyle := lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
		title := v.targetID
		if task, ok := v.engine.Store().Get(v.targetID); ok {
			title = task.Title
		}
		b.WriteString(confirmStyle.Render(fmt.Sprintf("Delete %q? (y/n)", title)))
		b.WriteString("\n")
	case ListModeMove:
		var opts []string
		for i, tab := range view.Tabs()[:5] {
			opts = append(opts, fmt.Sprintf("%d %s", i+1, tab))
		}
		moveStyle := lipgloss.NewStyle().Foreground(t.Info).Bold(true)
		b.WriteString(moveStyle.Render("Move to: " + strings.Join(opts, " · ")))
		b.WriteString("\n")
	}

	if v.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(t.Info).Italic(true)
		b.WriteString(statusStyle.Render(v.statusMsg))
		b.WriteString("\n")
	}

	if len(v.tasks) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Padding(1, 0)
		if v.state.Query.Active() {
			b.WriteString(emptyStyle.Render("No tasks match current filters. Press C to clear."))
		} else {
			b.WriteString(emptyStyle.Render("Nothing here. Press ctrl+n to create a task."))
		}
		return b.String()
	}

	visible := v.visibleTaskCount()
	endIdx := min(v.scrollOffset+visible, len(v.tasks))

	scrollStyle := lipgloss.NewStyle().Foreground(t.Subtle)
	if v.scrollOffset > 0 {
		b.WriteString(scrollStyle.Render(fmt.Sprintf("  ↑ %d more above", v.scrollOffset)))
		b.WriteString("\n")
	}

	for i := v.scrollOffset; i < endIdx; i++ {
		task := v.tasks[i]
		b.WriteString(v.renderTask(task, i == v.cursor))
		b.WriteString("\n")
		if task.IsChecklist && i == v.cursor {
			b.WriteString(v.renderChecklist(task))
		}
	}

	if remaining := len(v.tasks) - endIdx; remaining > 0 {
		b.WriteString(scrollStyle.Render(fmt.Sprintf("  ↓ %d more below", remaining)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderQueryBar summarizes the active search, filters and sort
func (v ListView) renderQueryBar() string {
	t := theme.Current.Theme
	q := v.state.Query

	label := lipgloss.NewStyle().Foreground(t.Subtle)
	value := lipgloss.NewStyle().Foreground(t.Info)

	arrow := "↑"
	if q.Desc {
		arrow = "↓"
	}
	parts := []string{label.Render("sort ") + value.Render(q.SortBy.String()+" "+arrow)}
	if q.Search != "" {
		parts = append(parts, label.Render("search ")+value.Render(q.Search))
	}
	if q.Priority != "" {
		parts = append(parts, label.Render("priority ")+value.Render(string(q.Priority)))
	}
	if q.Category != "" {
		parts = append(parts, label.Render("category ")+value.Render(q.Category))
	}
	parts = append(parts, label.Render(fmt.Sprintf("%d shown", len(v.tasks))))

	return strings.Join(parts, label.Render(" · "))
}

// renderTask renders a single task line
func (v ListView) renderTask(task model.Task, isCursor bool) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles
	today := v.engine.Today()

	statusMark := lipgloss.NewStyle().Foreground(t.StatusColor(task.Status)).Render("●")

	var priorityChar string
	switch task.Priority {
	case model.PriorityHigh:
		priorityChar = "!"
	case model.PriorityMedium:
		priorityChar = "-"
	default:
		priorityChar = "."
	}
	priority := lipgloss.NewStyle().Foreground(t.PriorityColor(task.Priority)).Render(priorityChar)

	titleStyle := styles.TaskNormal
	switch {
	case isCursor:
		titleStyle = styles.TaskSelected
	case task.IsFinished():
		titleStyle = styles.TaskDone
	case task.IsOverdue(today):
		titleStyle = styles.TaskOverdue
	}
	title := task.Title
	if task.IsChecklist {
		title = fmt.Sprintf("%s (%d/%d)", title, task.CheckedCount(), len(task.Checklist))
	}

	meta := []string{styles.DueDate.Render(formatTaskDate(task.Date, today))}
	if task.Category != "" {
		meta = append(meta, lipgloss.NewStyle().Foreground(t.Secondary).Render("["+task.Category+"]"))
	}
	if task.Reason != "" {
		meta = append(meta, lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render("("+task.Reason+")"))
	}

	line := statusMark + " " + priority + titleStyle.Render(title) + " " + strings.Join(meta, " ")
	if task.Notes != "" && isCursor {
		line += "\n    " + lipgloss.NewStyle().Foreground(t.Subtle).Render(task.Notes)
	}
	return line
}

// renderChecklist renders the items of the checklist under the cursor
func (v ListView) renderChecklist(task model.Task) string {
	t := theme.Current.Theme
	var b strings.Builder
	for i, item := range task.Checklist {
		box := "[ ]"
		style := lipgloss.NewStyle().Foreground(t.Foreground)
		if item.Checked {
			box = "[x]"
			style = lipgloss.NewStyle().Foreground(t.Subtle).Strikethrough(true)
		}
		pointer := "  "
		if v.mode == ListModeChecklist && i == v.itemIndex {
			pointer = lipgloss.NewStyle().Foreground(t.Primary).Render("▸ ")
		}
		b.WriteString("      " + pointer + box + " " + style.Render(item.Text) + "\n")
	}
	return b.String()
}

// formatTaskDate renders a calendar date relative to today
func formatTaskDate(d, today time.Time) string {
	switch {
	case d.Equal(today):
		return "today"
	case d.Equal(model.AddDays(today, 1)):
		return "tomorrow"
	case d.Equal(model.AddDays(today, -1)):
		return "yesterday"
	case d.Year() == today.Year():
		return d.Format("Mon, Jan 2")
	default:
		return d.Format("Jan 2, 2006")
	}
}
