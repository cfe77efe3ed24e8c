package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dori/daybook/internal/config"
	"github.com/dori/daybook/internal/db"
	"github.com/dori/daybook/internal/lifecycle"
	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/schedule"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = dir
	cfg.DBPath = filepath.Join(dir, "daybook.db")
	cfg.Debug.LogPath = filepath.Join(dir, "debug.log")
	return cfg
}

func TestNewSeedsAndLocks(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	a, err := New(cfg, lifecycle.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Store.Len() != 3 {
		t.Errorf("Expected 3 seed tasks, got %d", a.Store.Len())
	}

	if _, err := New(cfg); !errors.Is(err, ErrLocked) {
		t.Errorf("Expected ErrLocked for a second instance, got %v", err)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestReopenSweepsOverdue(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	a, err := New(cfg, lifecycle.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := a.Engine.Create(lifecycle.Draft{Title: "Water plants"}); !ok {
		t.Fatal("Create rejected")
	}
	a.Close()

	// Two days later everything left in today/upcoming from March 1st and 2nd is overdue
	later := now.AddDate(0, 0, 2)
	a, err = New(cfg, lifecycle.WithClock(func() time.Time { return later }))
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer a.Close()

	if a.Store.Len() != 4 {
		t.Fatalf("Expected 4 tasks after reopen, got %d", a.Store.Len())
	}
	if a.Swept != 4 {
		t.Errorf("Expected 4 swept tasks, got %d", a.Swept)
	}
	for _, task := range a.Store.All() {
		if task.Status != model.StatusIncomplete {
			t.Errorf("%s: expected incomplete, got %s", task.Title, task.Status)
		}
	}
}

func TestHugeDayUploadStillReopens(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := lifecycle.WithClock(func() time.Time { return now })

	a, err := New(cfg, clock)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, tasks, ok := a.Engine.Upload("Day 3000000 - Far away", schedule.BeginToday())
	if !ok || len(tasks) != 1 {
		t.Fatalf("Upload rejected: ok=%v tasks=%d", ok, len(tasks))
	}
	if !tasks[0].Date.Equal(model.DateOf(now)) {
		t.Errorf("Expected the line to land on day 1, got %s", model.FormatDate(tasks[0].Date))
	}
	a.Close()

	a, err = New(cfg, clock)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer a.Close()
	if a.Store.Len() != 4 {
		t.Errorf("Expected 4 tasks after reopen, got %d", a.Store.Len())
	}
}

func TestLoadErrorWrappedOnce(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	a.Close()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("db.Open failed: %v", err)
	}
	if _, err := database.Exec(`DROP TABLE tasks`); err != nil {
		t.Fatalf("Failed to drop tasks: %v", err)
	}
	database.Close()

	_, err = New(cfg)
	if err == nil {
		t.Fatal("Expected an error loading a broken database")
	}
	if n := strings.Count(err.Error(), "failed to load tasks"); n != 1 {
		t.Errorf("Expected the load failure once in %q, got %d", err.Error(), n)
	}
}
