package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dori/daybook/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleTasks() []model.Task {
	created := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	finished := time.Date(2024, 1, 10, 17, 45, 12, 500, time.UTC)
	return []model.Task{
		{
			ID: "a", Title: "Buy groceries", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Category: "Personal", Priority: model.PriorityHigh, Notes: "Milk, eggs",
			Status: model.StatusToday, CreatedAt: created,
		},
		{
			ID: "b", Title: "Finish report", Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
			Category: "Work", Priority: model.PriorityMedium, Status: model.StatusFinished,
			FinishedAt: &finished, CreatedAt: created,
		},
		{
			ID: "c", Title: "Packing", Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
			Category: "Checklist", Priority: model.PriorityLow, Status: model.StatusPending,
			Reason: "waiting on bags", IsChecklist: true, CreatedAt: created,
			Checklist: []model.ChecklistItem{
				{Text: "Socks", Checked: true},
				{Text: "Charger", Checked: false},
				{Text: "Passport", Checked: true},
			},
		},
	}
}

// TestLoadTasksFirstRun verifies that a fresh database reports no snapshot,
// which is what triggers first-run seeding.
func TestLoadTasksFirstRun(t *testing.T) {
	db := openTestDB(t)

	tasks, ok, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if ok {
		t.Fatal("expected no snapshot on a fresh database")
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}
}

func TestSaveTasksPreservesOrderAndFields(t *testing.T) {
	db := openTestDB(t)
	want := sampleTasks()

	if err := db.SaveTasks(want); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	got, ok, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a snapshot after save")
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}

	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("position %d: id = %s, want %s", i, got[i].ID, want[i].ID)
		}
		if !got[i].Date.Equal(want[i].Date) {
			t.Errorf("task %s: date = %v, want %v", want[i].ID, got[i].Date, want[i].Date)
		}
	}

	if got[1].FinishedAt == nil || !got[1].FinishedAt.Equal(*want[1].FinishedAt) {
		t.Errorf("finished_at not preserved: %v", got[1].FinishedAt)
	}
	if got[0].FinishedAt != nil {
		t.Error("unfinished task should have no finished_at")
	}

	packing := got[2]
	if !packing.IsChecklist || len(packing.Checklist) != 3 {
		t.Fatalf("checklist not preserved: %+v", packing)
	}
	if packing.Checklist[1].Text != "Charger" || packing.Checklist[1].Checked {
		t.Errorf("checklist item order or state wrong: %+v", packing.Checklist)
	}
	if packing.Reason != "waiting on bags" {
		t.Errorf("reason = %q", packing.Reason)
	}
}

// TestSaveTasksReplacesSnapshot verifies that deleted tasks and their
// checklist items do not survive the next save.
func TestSaveTasksReplacesSnapshot(t *testing.T) {
	db := openTestDB(t)
	tasks := sampleTasks()

	if err := db.SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}
	if err := db.SaveTasks(tasks[:1]); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	got, _, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only task a, got %+v", got)
	}

	var items int
	if err := db.QueryRow(`SELECT COUNT(*) FROM checklist_items`).Scan(&items); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if items != 0 {
		t.Errorf("expected orphaned checklist items to be removed, found %d", items)
	}
}

func TestSaveEmptyCollectionIsASnapshot(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveTasks(nil); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}
	tasks, ok, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if !ok || len(tasks) != 0 {
		t.Fatalf("expected an empty snapshot, got ok=%v len=%d", ok, len(tasks))
	}
}

// TestFinishedInvariantEnforced verifies the schema refuses a finished task
// without a finish time.
func TestFinishedInvariantEnforced(t *testing.T) {
	db := openTestDB(t)
	bad := sampleTasks()[1]
	bad.FinishedAt = nil

	if err := db.SaveTasks([]model.Task{bad}); err == nil {
		t.Fatal("expected save to fail for finished task without finished_at")
	}

	// The failed transaction must leave the previous state untouched
	if _, ok, _ := db.LoadTasks(); ok {
		t.Error("failed save should not write a snapshot marker")
	}
}

// TestReopenKeepsData guards against migrations re-running destructively.
func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.SaveTasks(sampleTasks()); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	tasks, ok, err := db.LoadTasks()
	if err != nil || !ok || len(tasks) != 3 {
		t.Fatalf("expected 3 tasks after reopen, got %d (ok=%v, err=%v)", len(tasks), ok, err)
	}
}

func TestLoadSkipsUnreadableDate(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveTasks(sampleTasks()); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	// A date past year 9999 formats with five digits and cannot be parsed back
	far := model.AddDays(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 3000000)
	bad := model.Task{
		ID: "far", Title: "Far away", Date: far, Priority: model.PriorityMedium,
		Status: model.StatusUpcoming, CreatedAt: time.Now(),
	}
	if err := db.SaveTasks(append(sampleTasks(), bad)); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	tasks, ok, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if !ok || len(tasks) != 3 {
		t.Fatalf("expected the 3 readable tasks, got %d (ok=%v)", len(tasks), ok)
	}
	for _, task := range tasks {
		if task.ID == "far" {
			t.Error("unreadable task should have been skipped")
		}
	}
	if len(tasks[2].Checklist) != 3 {
		t.Errorf("checklist items lost: got %d", len(tasks[2].Checklist))
	}
}
