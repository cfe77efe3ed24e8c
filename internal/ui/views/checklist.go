package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/ui/theme"
)

// ChecklistView creates a checklist task, one item per line
type ChecklistView struct {
	engine *lifecycle.Engine

	title      textinput.Model
	items      textarea.Model
	focusItems bool
	errMsg     string
}

// NewChecklistView creates an empty checklist form
func NewChecklistView(engine *lifecycle.Engine) ChecklistView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = lifecycle.ChecklistTitle
	ti.CharLimit = 256
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "One item per line"
	ta.ShowLineNumbers = false
	ta.SetHeight(8)

	return ChecklistView{engine: engine, title: ti, items: ta}
}

// Init starts the cursor blinking
func (v ChecklistView) Init() tea.Cmd {
	return textinput.Blink
}

// IsInputMode returns true; every key belongs to the form
func (v ChecklistView) IsInputMode() bool {
	return true
}

// SetSize sets the form width
func (v ChecklistView) SetSize(width, height int) ChecklistView {
	v.title.Width = max(20, width-12)
	v.items.SetWidth(max(20, width-4))
	v.items.SetHeight(max(3, min(12, height-8)))
	return v
}

// Update handles messages for the checklist form
func (v ChecklistView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return v, closeWith("")
		case "ctrl+s":
			return v.submit()
		case "tab", "shift+tab":
			v.focusItems = !v.focusItems
			if v.focusItems {
				v.title.Blur()
				return v, v.items.Focus()
			}
			v.items.Blur()
			return v, v.title.Focus()
		case "enter":
			if !v.focusItems {
				v.focusItems = true
				v.title.Blur()
				return v, v.items.Focus()
			}
		}
	}

	var cmd tea.Cmd
	if v.focusItems {
		v.items, cmd = v.items.Update(msg)
	} else {
		v.title, cmd = v.title.Update(msg)
	}
	return v, cmd
}

func (v ChecklistView) submit() (tea.Model, tea.Cmd) {
	lines := strings.Split(v.items.Value(), "\n")
	if _, ok := v.engine.CreateChecklist(v.title.Value(), lines); !ok {
		v.errMsg = "Add at least one item"
		return v, nil
	}
	return v, closeWith("")
}

// View renders the checklist form
func (v ChecklistView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	titleBox, itemsBox := styles.InputFocused, styles.Input
	if v.focusItems {
		titleBox, itemsBox = styles.Input, styles.InputFocused
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("New Checklist"))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render("Title"))
	b.WriteString("\n")
	b.WriteString(titleBox.Render(v.title.View()))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render("Items"))
	b.WriteString("\n")
	b.WriteString(itemsBox.Render(v.items.View()))
	b.WriteString("\n")
	if v.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Render("tab switch field • ctrl+s create • esc cancel"))
	return b.String()
}
