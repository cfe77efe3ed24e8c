package views

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/quickadd"
	"github.com/dori/daybook/internal/schedule"
	"github.com/dori/daybook/internal/ui/theme"
)

// UploadStep is the stage of the upload flow
type UploadStep int

const (
	UploadStepSource UploadStep = iota
	UploadStepFile
	UploadStepPaste
	UploadStepStart
	UploadStepProcessing
)

// Extensions offered by the file picker
var uploadTypes = []string{".txt", ".csv", ".md"}

type fileReadMsg struct {
	name string
	text string
	err  error
}

// uploadReadyMsg fires when the processing delay for generation gen elapses
type uploadReadyMsg struct {
	gen int
}

// UploadView turns a schedule file or pasted text into tasks
type UploadView struct {
	engine *lifecycle.Engine
	delay  time.Duration
	width  int

	step    UploadStep
	picker  filepicker.Model
	paste   textarea.Model
	date    textinput.Model
	spinner spinner.Model

	fileName  string
	text      string
	entries   int
	fromToday bool
	start     time.Time

	gen    int // bumped on cancel so a pending delay is ignored
	errMsg string
}

// NewUploadView creates the upload flow. delay is the processing pause
// shown before the tasks are committed.
func NewUploadView(engine *lifecycle.Engine, delay time.Duration) UploadView {
	fp := filepicker.New()
	fp.AllowedTypes = uploadTypes
	if dir, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = dir
	}

	ta := textarea.New()
	ta.Placeholder = "Day 1 - Warm up\nDay 2 - Intervals\n..."
	ta.ShowLineNumbers = false
	ta.SetHeight(10)

	ti := textinput.New()
	ti.Placeholder = "2024-05-01"
	ti.CharLimit = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return UploadView{
		engine:    engine,
		delay:     delay,
		picker:    fp,
		paste:     ta,
		date:      ti,
		spinner:   sp,
		fromToday: true,
	}
}

// Init initializes the upload view
func (v UploadView) Init() tea.Cmd {
	return nil
}

// IsInputMode returns true; every key belongs to the flow
func (v UploadView) IsInputMode() bool {
	return true
}

// Step returns the current stage
func (v UploadView) Step() UploadStep {
	return v.step
}

// SetSize sets the view dimensions
func (v UploadView) SetSize(width, height int) UploadView {
	v.width = width
	v.paste.SetWidth(max(20, width-4))
	v.paste.SetHeight(max(3, min(14, height-8)))
	v.picker, _ = v.picker.Update(tea.WindowSizeMsg{Width: width, Height: max(5, height-6)})
	return v
}

// Update handles messages for the upload flow
func (v UploadView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileReadMsg:
		if msg.err != nil {
			v.errMsg = fmt.Sprintf("Could not read %s: %v", msg.name, msg.err)
			return v, nil
		}
		return v.loaded(msg.name, msg.text)

	case uploadReadyMsg:
		if msg.gen != v.gen || v.step != UploadStepProcessing {
			return v, nil
		}
		return v.commit()

	case spinner.TickMsg:
		if v.step != UploadStepProcessing {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return v.back()
		}
		switch v.step {
		case UploadStepSource:
			return v.handleSource(msg)
		case UploadStepPaste:
			return v.handlePaste(msg)
		case UploadStepStart:
			return v.handleStart(msg)
		case UploadStepProcessing:
			return v, nil
		}
	}

	// Directory listings and picker keys
	if v.step == UploadStepFile {
		var cmd tea.Cmd
		v.picker, cmd = v.picker.Update(msg)
		if ok, path := v.picker.DidSelectFile(msg); ok {
			return v, tea.Batch(cmd, readSchedule(path))
		}
		if ok, path := v.picker.DidSelectDisabledFile(msg); ok {
			v.errMsg = filepath.Base(path) + " is not a text schedule"
		}
		return v, cmd
	}
	return v, nil
}

func (v UploadView) handleSource(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f":
		v.step = UploadStepFile
		v.errMsg = ""
		return v, v.picker.Init()
	case "p":
		v.step = UploadStepPaste
		v.errMsg = ""
		return v, v.paste.Focus()
	}
	return v, nil
}

func (v UploadView) handlePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		v.paste.Blur()
		return v.loaded("pasted text", v.paste.Value())
	}
	var cmd tea.Cmd
	v.paste, cmd = v.paste.Update(msg)
	return v, cmd
}

// loaded moves to the start-date step once there is text to parse
func (v UploadView) loaded(name, text string) (tea.Model, tea.Cmd) {
	entries := schedule.Parse(text)
	if len(entries) == 0 {
		v.errMsg = name + " has no schedule lines"
		return v, nil
	}
	v.fileName = name
	v.text = text
	v.entries = len(entries)
	v.step = UploadStepStart
	v.errMsg = ""
	return v, nil
}

func (v UploadView) handleStart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.date.Focused() {
		switch msg.String() {
		case "enter":
			d, ok := quickadd.ParseDate(v.date.Value(), v.engine.Today())
			if !ok {
				v.errMsg = "Date not recognised"
				return v, nil
			}
			v.start = d
			v.fromToday = false
			v.date.Blur()
			v.errMsg = ""
			return v, nil
		case "tab":
			v.date.Blur()
			return v, nil
		}
		var cmd tea.Cmd
		v.date, cmd = v.date.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case "t":
		v.fromToday = true
	case "d":
		return v, v.date.Focus()
	case "enter", "y":
		v.step = UploadStepProcessing
		gen := v.gen
		return v, tea.Batch(
			v.spinner.Tick,
			tea.Tick(v.delay, func(time.Time) tea.Msg { return uploadReadyMsg{gen: gen} }),
		)
	}
	return v, nil
}

// commit materializes the schedule into the store
func (v UploadView) commit() (tea.Model, tea.Cmd) {
	policy := schedule.BeginToday()
	if !v.fromToday {
		policy = schedule.StartOn(v.start)
	}

	sched, tasks, ok := v.engine.Upload(v.text, policy)
	if !ok {
		v.step = UploadStepStart
		v.errMsg = "Nothing to upload"
		return v, nil
	}
	return v, func() tea.Msg {
		return UploadCommittedMsg{Schedule: sched, Count: len(tasks)}
	}
}

// back steps out of the flow; from the first step it closes it
func (v UploadView) back() (tea.Model, tea.Cmd) {
	v.errMsg = ""
	switch v.step {
	case UploadStepFile, UploadStepPaste:
		v.paste.Blur()
		v.step = UploadStepSource
	case UploadStepStart:
		v.date.Blur()
		v.step = UploadStepSource
	case UploadStepProcessing:
		// Cancel: the pending delay fires for a stale generation
		v.gen++
		v.step = UploadStepStart
	default:
		return v, closeWith("")
	}
	return v, nil
}

// readSchedule reads a schedule file off the UI goroutine
func readSchedule(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		text, err := schedule.ReadText(ctx, path)
		return fileReadMsg{name: filepath.Base(path), text: text, err: err}
	}
}

// View renders the upload flow
func (v UploadView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles
	hint := lipgloss.NewStyle().Foreground(t.Subtle)
	keyStyle := styles.HelpKey

	var b strings.Builder
	b.WriteString(styles.Title.Render("Upload Schedule"))
	b.WriteString("\n")

	switch v.step {
	case UploadStepSource:
		b.WriteString("Lines like \"Day 3 - Long run\" land on day 3; other lines use their position.\n\n")
		b.WriteString(keyStyle.Render("f") + " choose a file   " + keyStyle.Render("p") + " paste text\n")

	case UploadStepFile:
		b.WriteString(hint.Render(v.picker.CurrentDirectory))
		b.WriteString("\n")
		b.WriteString(v.picker.View())

	case UploadStepPaste:
		b.WriteString(styles.InputFocused.Render(v.paste.View()))
		b.WriteString("\n")
		b.WriteString(hint.Render("ctrl+s continue"))

	case UploadStepStart:
		b.WriteString(fmt.Sprintf("%s: %d line(s)\n\n", v.fileName, v.entries))
		today, custom := "( )", "( )"
		if v.fromToday {
			today = "(•)"
		} else {
			custom = "(•)"
		}
		b.WriteString(fmt.Sprintf("%s %s start today\n", today, keyStyle.Render("t")))
		label := "pick a date"
		if !v.fromToday {
			label = v.start.Format("Mon, Jan 2 2006")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", custom, keyStyle.Render("d"), label))
		if v.date.Focused() {
			b.WriteString(styles.InputFocused.Render(v.date.View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(hint.Render("enter confirm • esc back"))

	case UploadStepProcessing:
		b.WriteString(v.spinner.View() + " Creating tasks...\n")
		b.WriteString(hint.Render("esc cancel"))
	}

	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	}
	return b.String()
}
