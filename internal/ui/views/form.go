package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/quickadd"
	"github.com/dori/daybook/internal/ui/theme"
)

const (
	fieldTitle = iota
	fieldDate
	fieldCategory
	fieldPriority
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Date", "Category", "Priority", "Notes"}

// FormView creates a manual task or edits an existing one
type FormView struct {
	engine *lifecycle.Engine
	width  int

	inputs   [fieldCount]textinput.Model // fieldPriority is unused
	priority model.Priority
	focus    int

	editing *model.Task // nil when creating
	errMsg  string
}

// NewFormView creates an empty form for a new task
func NewFormView(engine *lifecycle.Engine) FormView {
	v := FormView{engine: engine, priority: model.PriorityMedium}
	for i := range v.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		v.inputs[i] = ti
	}
	v.inputs[fieldTitle].Placeholder = "What needs doing?"
	v.inputs[fieldDate].Placeholder = "today, tomorrow, fri, 2024-05-01"
	v.inputs[fieldCategory].Placeholder = "Work, Personal..."
	v.inputs[fieldNotes].Placeholder = "Optional"
	v.inputs[fieldNotes].CharLimit = 1024
	v.inputs[fieldTitle].Focus()
	return v
}

// EditFormView creates a form prefilled from task
func EditFormView(engine *lifecycle.Engine, task model.Task) FormView {
	v := NewFormView(engine)
	v.editing = &task
	v.inputs[fieldTitle].SetValue(task.Title)
	v.inputs[fieldDate].SetValue(model.FormatDate(task.Date))
	v.inputs[fieldCategory].SetValue(task.Category)
	v.inputs[fieldNotes].SetValue(task.Notes)
	if task.Priority.Valid() {
		v.priority = task.Priority
	}
	return v
}

// Init focuses the title field
func (v FormView) Init() tea.Cmd {
	return textinput.Blink
}

// IsInputMode returns true; every key belongs to the form
func (v FormView) IsInputMode() bool {
	return true
}

// SetSize sets the form width
func (v FormView) SetSize(width, height int) FormView {
	v.width = width
	for i := range v.inputs {
		v.inputs[i].Width = max(20, width-20)
	}
	return v
}

// Update handles messages for the form
func (v FormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return v, closeWith("")
	case "tab", "down":
		return v.setFocus((v.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return v.setFocus((v.focus + fieldCount - 1) % fieldCount)
	case "ctrl+s":
		return v.submit()
	case "enter":
		if v.focus == fieldCount-1 {
			return v.submit()
		}
		return v.setFocus(v.focus + 1)
	}

	if v.focus == fieldPriority {
		switch keyMsg.String() {
		case "left", "h":
			v.priority = v.priority.Next().Next()
		case "right", "l", " ":
			v.priority = v.priority.Next()
		}
		return v, nil
	}

	return v.updateFocused(msg)
}

func (v FormView) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.focus == fieldPriority {
		return v, nil
	}
	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v FormView) setFocus(field int) (tea.Model, tea.Cmd) {
	v.inputs[v.focus].Blur()
	v.focus = field
	if field == fieldPriority {
		return v, nil
	}
	return v, v.inputs[field].Focus()
}

// submit validates the fields and creates or edits the task
func (v FormView) submit() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(v.inputs[fieldTitle].Value())
	if title == "" {
		v.errMsg = "Title is required"
		return v, nil
	}

	date, ok := quickadd.ParseDate(v.inputs[fieldDate].Value(), v.engine.Today())
	if !ok {
		v.errMsg = "Date not recognised; try 2024-05-01, tomorrow or fri"
		return v, nil
	}

	category := strings.TrimSpace(v.inputs[fieldCategory].Value())
	notes := strings.TrimSpace(v.inputs[fieldNotes].Value())

	if v.editing == nil {
		if _, ok := v.engine.Create(lifecycle.Draft{
			Title:    title,
			Date:     date,
			Category: category,
			Priority: v.priority,
			Notes:    notes,
		}); !ok {
			v.errMsg = "Could not create task"
			return v, nil
		}
		return v, closeWith("")
	}

	priority := v.priority
	if !v.engine.Edit(v.editing.ID, lifecycle.Patch{
		Title:    &title,
		Date:     &date,
		Category: &category,
		Priority: &priority,
		Notes:    &notes,
	}) {
		v.errMsg = "Task no longer exists"
		return v, nil
	}
	return v, closeWith("")
}

// View renders the form
func (v FormView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	heading := "New Task"
	if v.editing != nil {
		heading = "Edit Task"
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(heading))
	b.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(t.Subtle).Width(10)
	activeLabel := labelStyle.Foreground(t.Primary).Bold(true)

	for i := 0; i < fieldCount; i++ {
		label := labelStyle
		box := styles.Input
		if i == v.focus {
			label = activeLabel
			box = styles.InputFocused
		}

		var value string
		if i == fieldPriority {
			var opts []string
			for _, p := range model.Priorities() {
				s := lipgloss.NewStyle().Foreground(t.Subtle)
				if p == v.priority {
					s = lipgloss.NewStyle().Foreground(t.PriorityColor(p)).Bold(true)
				}
				opts = append(opts, s.Render(string(p)))
			}
			value = strings.Join(opts, "  ")
		} else {
			value = v.inputs[i].View()
		}

		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, label.Render(fieldLabels[i]), box.Render(value)))
		b.WriteString("\n")
	}

	if v.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Render("tab/↓ next • ←/→ priority • ctrl+s save • esc cancel"))

	return b.String()
}
