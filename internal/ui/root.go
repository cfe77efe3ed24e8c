package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/daybook/internal/app"
	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/schedule"
	"github.com/dori/daybook/internal/ui/theme"
	"github.com/dori/daybook/internal/ui/views"
	"github.com/dori/daybook/internal/view"
)

// How often the footer re-checks toast expiry
const toastPoll = 250 * time.Millisecond

// Days listed in the banner's day selector
const dayWindowSize = 9

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView   View
	browse        View // list or board, restored when a form closes
	tab           view.Tab
	listView      views.ListView
	boardView     views.BoardView
	statsView     views.StatsView
	formView      views.FormView
	checklistView views.ChecklistView
	uploadView    views.UploadView
	helpVisible   bool

	// Banner state
	rotator     *view.Rotator
	sched       schedule.Schedule
	selectedDay int

	version      uint64 // store version the views were derived from
	toastTicking bool
	quitting     bool

	// Status message
	statusMsg string
}

// NewRootModel creates a new root model opened on tab
func NewRootModel(application *app.App, tab view.Tab) RootModel {
	h := help.New()
	h.ShowAll = true

	engine := application.Engine
	return RootModel{
		app:           application,
		keys:          DefaultKeyMap(),
		help:          h,
		currentView:   ViewList,
		browse:        ViewList,
		tab:           tab,
		listView:      views.NewListView(engine, tab),
		boardView:     views.NewBoardView(engine).FocusTab(tab),
		statsView:     views.NewStatsView(engine),
		formView:      views.NewFormView(engine),
		checklistView: views.NewChecklistView(engine),
		uploadView:    views.NewUploadView(engine, application.Config.Upload.Delay),
		rotator:       view.NewRotator(application.Config.Banner.Interval),
		selectedDay:   1,
		version:       application.Store.Version(),
	}
}

// Init starts the banner rotation and sends the startup reminders
func (m RootModel) Init() tea.Cmd {
	gen := m.rotator.Start(m.rotationDeps())
	a := m.app
	return tea.Batch(
		m.bannerTick(gen),
		func() tea.Msg {
			a.Remind()
			return remindedMsg{}
		},
	)
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.app.Debugf("RootModel.Update received msg type: %T", msg)

	next, cmd := m.update(msg)
	m = next
	if m.quitting {
		return m, cmd
	}

	// Anything that touched the store re-derives the views and may restart
	// the banner timer.
	cmds := []tea.Cmd{cmd, m.syncBanner(), m.watchToasts()}
	if v := m.app.Store.Version(); v != m.version {
		m.version = v
		m = m.refresh()
	}
	return m, tea.Batch(cmds...)
}

func (m RootModel) update(msg tea.Msg) (RootModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m.resize(), nil

	case bannerTickMsg:
		if !m.rotator.Tick(msg.gen) {
			m.app.Debugf("stale banner tick %d", msg.gen)
			return m, nil
		}
		return m, m.bannerTick(msg.gen)

	case toastTickMsg:
		if len(m.app.Toasts.Active()) == 0 {
			m.toastTicking = false
			return m, nil
		}
		return m, tea.Tick(toastPoll, func(time.Time) tea.Msg { return toastTickMsg{} })

	case remindedMsg:
		return m, nil

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		if handled, next, cmd := m.handleGlobalKey(msg); handled {
			return next, cmd
		}

	case views.EditTaskRequest:
		m.app.Debugf("edit %s", statusOf(msg.Task))
		m.formView = views.EditFormView(m.app.Engine, msg.Task).SetSize(m.width, m.contentHeight())
		m.currentView = ViewForm
		return m, m.formView.Init()

	case views.CloseRequest:
		m.currentView = m.browse
		m.statusMsg = msg.Status
		return m.refresh(), nil

	case views.UploadCommittedMsg:
		m.sched = msg.Schedule
		m.selectedDay = 1
		m.currentView = m.browse
		m.uploadView = views.NewUploadView(m.app.Engine, m.app.Config.Upload.Delay).SetSize(m.width, m.contentHeight())
		m.statusMsg = fmt.Sprintf("%d task(s) from a %d-day schedule", msg.Count, msg.Schedule.Days())
		return m.refresh(), nil
	}

	return m.delegate(msg)
}

// handleGlobalKey processes keys that work regardless of the active view
func (m RootModel) handleGlobalKey(msg tea.KeyMsg) (bool, RootModel, tea.Cmd) {
	inputMode := m.isInputMode()

	switch {
	case msg.String() == "ctrl+c":
		return true, m.quit(), tea.Quit
	case key.Matches(msg, m.keys.ThemeCycle):
		m.cycleTheme()
		return true, m, nil
	}

	if m.currentView == ViewChooser {
		next, cmd := m.handleChooser(msg)
		return true, next, cmd
	}

	// Skip other global keys when in input mode
	if inputMode {
		return false, m, nil
	}

	if m.helpVisible {
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.helpVisible = false
		}
		return true, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, m.quit(), tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = true
		return true, m, nil
	case key.Matches(msg, m.keys.New):
		m.currentView = ViewChooser
		return true, m, nil
	case key.Matches(msg, m.keys.BoardView):
		if m.browse == ViewBoard {
			m.browse = ViewList
		} else {
			m.browse = ViewBoard
			m.boardView = m.boardView.SetQuery(m.listView.Query()).FocusTab(m.tab)
		}
		m.currentView = m.browse
		return true, m, nil
	case key.Matches(msg, m.keys.PrevDay):
		return true, m.shiftDay(-1), nil
	case key.Matches(msg, m.keys.NextDay):
		return true, m.shiftDay(1), nil
	case key.Matches(msg, m.keys.NextTab):
		return true, m.selectTab(view.Tab(view.Wrap(int(m.tab)+1, len(view.Tabs())))), nil
	case key.Matches(msg, m.keys.PrevTab):
		return true, m.selectTab(view.Tab(view.Wrap(int(m.tab)-1, len(view.Tabs())))), nil
	}

	tabKeys := []key.Binding{
		m.keys.TodayTab, m.keys.PendingTab, m.keys.UpcomingTab,
		m.keys.FinishedTab, m.keys.IncompleteTab, m.keys.StatsTab,
	}
	for i, b := range tabKeys {
		if key.Matches(msg, b) {
			return true, m.selectTab(view.Tabs()[i]), nil
		}
	}
	return false, m, nil
}

// quit tears down the banner timer; ticks still in flight become stale
func (m RootModel) quit() RootModel {
	m.rotator.Stop()
	m.quitting = true
	return m
}

// handleChooser picks how a new task is created
func (m RootModel) handleChooser(msg tea.KeyMsg) (RootModel, tea.Cmd) {
	switch msg.String() {
	case "m", "enter":
		m.formView = views.NewFormView(m.app.Engine).SetSize(m.width, m.contentHeight())
		m.currentView = ViewForm
		return m, m.formView.Init()
	case "c":
		m.checklistView = views.NewChecklistView(m.app.Engine).SetSize(m.width, m.contentHeight())
		m.currentView = ViewChecklist
		return m, m.checklistView.Init()
	case "u":
		m.uploadView = views.NewUploadView(m.app.Engine, m.app.Config.Upload.Delay).SetSize(m.width, m.contentHeight())
		m.currentView = ViewUpload
		return m, m.uploadView.Init()
	case "esc", "q":
		m.currentView = m.browse
	}
	return m, nil
}

// delegate passes msg to the active view
func (m RootModel) delegate(msg tea.Msg) (RootModel, tea.Cmd) {
	var cmd tea.Cmd
	var next tea.Model

	switch m.currentView {
	case ViewList:
		if m.tab == view.TabStats {
			next, cmd = m.statsView.Update(msg)
			m.statsView = next.(views.StatsView)
			break
		}
		next, cmd = m.listView.Update(msg)
		m.listView = next.(views.ListView)
		// The board shares the list's search and filters
		m.boardView = m.boardView.SetQuery(m.listView.Query())
	case ViewBoard:
		if m.tab == view.TabStats {
			next, cmd = m.statsView.Update(msg)
			m.statsView = next.(views.StatsView)
			break
		}
		next, cmd = m.boardView.Update(msg)
		m.boardView = next.(views.BoardView)
		m.tab = m.boardView.Tab()
		m.listView = m.listView.SetTab(m.tab)
	case ViewForm:
		next, cmd = m.formView.Update(msg)
		m.formView = next.(views.FormView)
	case ViewChecklist:
		next, cmd = m.checklistView.Update(msg)
		m.checklistView = next.(views.ChecklistView)
	case ViewUpload:
		next, cmd = m.uploadView.Update(msg)
		m.uploadView = next.(views.UploadView)
	}
	return m, cmd
}

func (m RootModel) isInputMode() bool {
	switch m.currentView {
	case ViewList:
		return m.tab != view.TabStats && m.listView.IsInputMode()
	case ViewBoard:
		return false
	default:
		return true
	}
}

// selectTab switches the task browser to tab
func (m RootModel) selectTab(tab view.Tab) RootModel {
	m.tab = tab
	m.listView = m.listView.SetTab(tab)
	m.boardView = m.boardView.FocusTab(tab)
	if tab == view.TabStats {
		m.statsView = m.statsView.Refresh()
	}
	return m
}

// shiftDay moves the banner day selector, wrapping over the schedule's days
func (m RootModel) shiftDay(delta int) RootModel {
	days := m.sched.Days()
	if days == 0 {
		return m
	}
	m.selectedDay = view.Wrap(m.selectedDay-1+delta, days) + 1
	return m
}

// refresh re-derives every view from the store
func (m RootModel) refresh() RootModel {
	m.listView = m.listView.Refresh()
	m.boardView = m.boardView.Refresh()
	m.statsView = m.statsView.Refresh()
	return m
}

func (m RootModel) resize() RootModel {
	h := m.contentHeight()
	m.listView = m.listView.SetSize(m.width, h)
	m.boardView = m.boardView.SetSize(m.width, h)
	m.statsView = m.statsView.SetSize(m.width, h)
	m.formView = m.formView.SetSize(m.width, h)
	m.checklistView = m.checklistView.SetSize(m.width, h)
	m.uploadView = m.uploadView.SetSize(m.width, h)
	return m
}

// contentHeight is what remains after the header, tabs, banner and footer
func (m RootModel) contentHeight() int {
	return max(3, m.height-10)
}

func (m RootModel) rotationDeps() view.RotationDeps {
	return view.RotationDeps{Version: m.app.Store.Version(), SelectedDay: m.selectedDay}
}

// syncBanner restarts the banner timer when the collection or selected day
// changed; the previous timer's ticks become stale.
func (m RootModel) syncBanner() tea.Cmd {
	gen, restarted := m.rotator.Sync(m.rotationDeps())
	if !restarted {
		return nil
	}
	return m.bannerTick(gen)
}

func (m RootModel) bannerTick(gen uint64) tea.Cmd {
	return tea.Tick(m.rotator.Interval, func(time.Time) tea.Msg {
		return bannerTickMsg{gen: gen}
	})
}

// watchToasts starts polling for toast expiry while any are visible
func (m *RootModel) watchToasts() tea.Cmd {
	if m.toastTicking || len(m.app.Toasts.Active()) == 0 {
		return nil
	}
	m.toastTicking = true
	return tea.Tick(toastPoll, func(time.Time) tea.Msg { return toastTickMsg{} })
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.contentHeight()
	var content string
	switch {
	case m.helpVisible:
		content = m.renderHelp()
	case m.currentView.browsing():
		sections = append(sections, m.renderTabs(), m.renderBanner())
		switch {
		case m.tab == view.TabStats:
			content = m.statsView.View()
		case m.currentView == ViewBoard:
			content = m.boardView.View()
		default:
			content = m.listView.View()
		}
	case m.currentView == ViewForm:
		content = m.formView.View()
	case m.currentView == ViewChecklist:
		content = m.checklistView.View()
	case m.currentView == ViewUpload:
		content = m.uploadView.View()
	case m.currentView == ViewChooser:
		content = m.renderChooser()
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("daybook")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", m.currentView.String()))
	dateIndicator := viewStyle.Render(m.app.Today().Format("Mon, Jan 2"))
	themeIndicator := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator, dateIndicator)
	rightSide := themeIndicator

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}
	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderTabs renders the tab bar with a badge on non-empty buckets
func (m RootModel) renderTabs() string {
	styles := theme.Current.Styles
	tasks := m.app.Store.All()
	today := m.app.Today()

	var parts []string
	for i, tab := range view.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if tab != view.TabStats {
			if n := len(view.Bucket(tasks, tab, today)); n > 0 {
				label += " " + styles.Badge.Render(fmt.Sprint(n))
			}
		}
		style := styles.Tab
		if tab == m.tab {
			style = styles.TabActive
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
}

// renderBanner renders the featured task and, with a schedule, the day selector
func (m RootModel) renderBanner() string {
	t := theme.Current.Theme
	index := m.rotator.Index()
	g := t.BannerGradient(index)

	items := view.Candidates(m.app.Store.All(), m.sched, m.selectedDay, m.app.Today())
	item, ok := view.Pick(items, index)

	box := lipgloss.NewStyle().
		Background(g.From).
		Foreground(lipgloss.Color("#FFFFFF")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(g.To).
		Padding(0, 1).
		Width(max(20, m.width-2))

	var title, sub string
	if ok {
		title = lipgloss.NewStyle().Bold(true).Render(item.Title)
		sub = item.Subtitle()
		if len(items) > 1 {
			sub += fmt.Sprintf("  (%d/%d)", view.Wrap(index, len(items))+1, len(items))
		}
	} else {
		title = "Nothing scheduled for today"
		sub = "ctrl+n to add a task"
	}

	if !m.sched.Empty() {
		var days []string
		first, last := dayWindow(m.selectedDay, m.sched.Days())
		for d := first; d <= last; d++ {
			s := fmt.Sprint(d)
			if d == m.selectedDay {
				s = lipgloss.NewStyle().Bold(true).Underline(true).Render(s)
			}
			days = append(days, s)
		}
		sub += fmt.Sprintf("   [ day %s ] of %d", strings.Join(days, " "), m.sched.Days())
	}

	return box.Render(title + "\n" + sub)
}

// dayWindow returns the day numbers shown around selected, at most
// dayWindowSize of them
func dayWindow(selected, days int) (int, int) {
	first := max(1, selected-dayWindowSize/2)
	last := min(days, first+dayWindowSize-1)
	first = max(1, last-dayWindowSize+1)
	return first, last
}

// renderChooser renders the new-task menu
func (m RootModel) renderChooser() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme
	desc := lipgloss.NewStyle().Foreground(t.Subtle)

	var b strings.Builder
	b.WriteString(styles.Title.Render("Create"))
	b.WriteString("\n\n")
	options := [][]string{
		{"m", "Manual task", "title, date, category, priority, notes"},
		{"c", "Checklist", "one item per line"},
		{"u", "Upload schedule", "Day N - title lines from a file or pasted text"},
	}
	for _, o := range options {
		b.WriteString(styles.HelpKey.Render(o[0]) + "  " + o[1] + "  " + desc.Render(o[2]) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(desc.Render("esc cancel"))
	return styles.Panel.Render(b.String())
}

// renderFooter renders toasts, status and key hints
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	hint := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if toast, ok := m.app.Toasts.Latest(); ok {
		statusLine = styles.Toast.Render(toast.Message)
	}
	if m.statusMsg != "" {
		statusLine += " " + lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line string
	switch {
	case m.helpVisible:
		line = hint("?/esc", "close help")
	case m.currentView == ViewBoard && m.tab != view.TabStats:
		line = hint("h/l", "column") + sep + hint("H/L", "move task") + sep +
			hint("e", "edit") + sep + hint("b", "list") + sep + hint("?", "help")
	case m.currentView == ViewList && m.tab == view.TabStats:
		line = hint("r", "refresh") + sep + hint("1-5", "tabs") + sep + hint("?", "help")
	case m.currentView == ViewList && m.listView.IsInputMode():
		line = hint("enter", "confirm") + sep + hint("esc", "cancel")
	case m.currentView == ViewList:
		line = hint("x", "done") + sep + hint("p/i", "pending/incomplete") + sep +
			hint("e", "edit") + sep + hint("d", "del") + sep + hint("/", "search") + sep +
			hint("C-n", "new") + sep + hint("?", "help")
	case m.currentView == ViewChooser:
		line = hint("m/c/u", "choose") + sep + hint("esc", "cancel")
	default:
		line = hint("esc", "back") + sep + hint("C-t", "theme")
	}

	return strings.TrimLeft(statusLine, " ") + "\n" + line
}

// renderHelp renders the help overlay from the key map
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme
	desc := lipgloss.NewStyle().Foreground(t.Subtle)

	var b strings.Builder
	b.WriteString(styles.Title.Render("Daybook Help"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")

	listKeys := [][]string{
		{"space", "Open checklist items"},
		{"r", "Edit the pending/incomplete reason"},
		{"f / c / C", "Cycle priority / category filter, clear filters"},
		{"s / S", "Sort by date or priority / reverse"},
		{"[ / ]", "Banner day of an uploaded schedule"},
	}
	for _, kv := range listKeys {
		b.WriteString(styles.HelpKey.Width(12).Render(kv[0]))
		b.WriteString(desc.Render(kv[1]))
		b.WriteString("\n")
	}
	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}

// statusOf describes a task for the debug log
func statusOf(t model.Task) string {
	return fmt.Sprintf("%s %s %s", t.ID, t.Status, model.FormatDate(t.Date))
}
