package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/daybook/internal/app"
	"github.com/dori/daybook/internal/config"
	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/schedule"
	"github.com/dori/daybook/internal/ui/views"
	"github.com/dori/daybook/internal/view"
)

func newTestRoot(t *testing.T) RootModel {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = dir
	cfg.DBPath = filepath.Join(dir, "daybook.db")
	cfg.Notifications.Desktop = false

	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	a, err := app.New(cfg, lifecycle.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	m := NewRootModel(a, view.TabToday)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(RootModel)
}

func press(t *testing.T, m RootModel, k tea.KeyMsg) RootModel {
	t.Helper()
	next, _ := m.Update(k)
	return next.(RootModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabKeys(t *testing.T) {
	m := newTestRoot(t)

	m = press(t, m, runes("6"))
	if m.tab != view.TabStats {
		t.Errorf("Expected stats tab, got %v", m.tab)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != view.TabToday {
		t.Errorf("Expected tab to wrap to Today, got %v", m.tab)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != view.TabStats {
		t.Errorf("Expected shift+tab to wrap to Stats, got %v", m.tab)
	}

	m = press(t, m, runes("b"))
	if m.currentView != ViewBoard {
		t.Errorf("Expected board view, got %v", m.currentView)
	}
}

func TestChooserOpensForms(t *testing.T) {
	m := newTestRoot(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.currentView != ViewChooser {
		t.Fatalf("Expected chooser, got %v", m.currentView)
	}

	m = press(t, m, runes("c"))
	if m.currentView != ViewChecklist {
		t.Fatalf("Expected checklist form, got %v", m.currentView)
	}

	// Keys typed into a form must not switch tabs
	m = press(t, m, runes("3"))
	if m.tab != view.TabToday {
		t.Errorf("Expected tab unchanged while typing, got %v", m.tab)
	}

	next, _ := m.Update(views.CloseRequest{Status: "done"})
	m = next.(RootModel)
	if m.currentView != ViewList {
		t.Errorf("Expected list after close, got %v", m.currentView)
	}
	if m.statusMsg != "done" {
		t.Errorf("Expected status 'done', got %q", m.statusMsg)
	}
}

func TestBannerIgnoresStaleTicks(t *testing.T) {
	m := newTestRoot(t)
	m.Init()

	gen := m.rotator.Generation()
	start := m.rotator.Index()

	next, _ := m.Update(bannerTickMsg{gen: gen - 1})
	m = next.(RootModel)
	if m.rotator.Index() != start {
		t.Errorf("Stale tick advanced the banner to %d", m.rotator.Index())
	}

	next, _ = m.Update(bannerTickMsg{gen: gen})
	m = next.(RootModel)
	if m.rotator.Index() != start+1 {
		t.Errorf("Expected index %d, got %d", start+1, m.rotator.Index())
	}
}

func TestUploadCommittedResetsDay(t *testing.T) {
	m := newTestRoot(t)
	m.selectedDay = 3

	sched := schedule.New([]model.ScheduleEntry{
		{Day: 1, Title: "Warm up", Index: 1},
		{Day: 2, Title: "Intervals", Index: 2},
	}, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

	next, _ := m.Update(views.UploadCommittedMsg{Schedule: sched, Count: 2})
	m = next.(RootModel)
	if m.selectedDay != 1 {
		t.Errorf("Expected day 1 after upload, got %d", m.selectedDay)
	}

	m = press(t, m, runes("]"))
	if m.selectedDay != 2 {
		t.Errorf("Expected day 2, got %d", m.selectedDay)
	}
	m = press(t, m, runes("]"))
	if m.selectedDay != 1 {
		t.Errorf("Expected day selector to wrap to 1, got %d", m.selectedDay)
	}
}

func TestQuitStopsBanner(t *testing.T) {
	m := newTestRoot(t)
	m.Init()
	if !m.rotator.Running() {
		t.Fatal("Expected the banner to be running after Init")
	}

	gen := m.rotator.Generation()
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	m = next.(RootModel)
	if m.rotator.Running() {
		t.Error("Expected quit to stop the banner timer")
	}
	if m.rotator.Tick(gen) {
		t.Error("A tick scheduled before quitting must be ignored")
	}
}

func TestThemeCycleReportsName(t *testing.T) {
	m := newTestRoot(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if !strings.HasPrefix(m.statusMsg, "Theme: ") {
		t.Errorf("Expected a theme status, got %q", m.statusMsg)
	}
}

func TestDayWindow(t *testing.T) {
	tests := []struct {
		selected, days int
		first, last    int
	}{
		{1, 3, 1, 3},
		{1, 3660, 1, 9},
		{100, 3660, 96, 104},
		{3660, 3660, 3652, 3660},
	}
	for _, tt := range tests {
		first, last := dayWindow(tt.selected, tt.days)
		if first != tt.first || last != tt.last {
			t.Errorf("dayWindow(%d, %d) = %d..%d, want %d..%d", tt.selected, tt.days, first, last, tt.first, tt.last)
		}
	}
}
