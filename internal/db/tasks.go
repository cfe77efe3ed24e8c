package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dori/daybook/internal/model"
)

// snapshotKey marks that a task collection has been saved at least once,
// so an empty saved collection can be told apart from a first run.
const snapshotKey = "snapshot_saved_at"

// errUnreadableRow marks a task row whose date cannot be parsed back.
// Such rows are dropped on load so one bad row cannot block startup.
var errUnreadableRow = errors.New("unreadable task row")

// LoadTasks returns the saved task collection in stored order.
// The bool is false when nothing has ever been saved.
func (db *DB) LoadTasks() ([]model.Task, bool, error) {
	var savedAt string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = ?`, snapshotKey).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot marker: %w", err)
	}

	rows, err := db.Query(`
		SELECT id, title, date, category, priority, notes, status, reason,
		       finished_at, is_checklist, created_at
		FROM tasks
		ORDER BY position
	`)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query tasks: %w", err)
	}
	tasks, err := db.scanTasks(rows)
	// Close before the checklist query: the pool holds a single connection
	rows.Close()
	if err != nil {
		return nil, false, err
	}

	items, err := db.loadChecklistItems()
	if err != nil {
		return nil, false, err
	}
	for i := range tasks {
		if tasks[i].IsChecklist {
			tasks[i].Checklist = items[tasks[i].ID]
		}
	}

	return tasks, true, nil
}

// SaveTasks replaces the saved collection with tasks, preserving their order
func (db *DB) SaveTasks(tasks []model.Task) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
			return fmt.Errorf("failed to clear tasks: %w", err)
		}

		taskStmt, err := tx.Prepare(`
			INSERT INTO tasks (id, position, title, date, category, priority, notes,
			                   status, reason, finished_at, is_checklist, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer taskStmt.Close()

		itemStmt, err := tx.Prepare(`
			INSERT INTO checklist_items (task_id, position, text, checked)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer itemStmt.Close()

		for pos, t := range tasks {
			var finishedAt interface{}
			if t.FinishedAt != nil {
				finishedAt = t.FinishedAt.Format(time.RFC3339Nano)
			}
			isChecklist := 0
			if t.IsChecklist {
				isChecklist = 1
			}

			_, err := taskStmt.Exec(
				t.ID, pos, t.Title, model.FormatDate(t.Date), t.Category, string(t.Priority),
				t.Notes, string(t.Status), t.Reason, finishedAt, isChecklist,
				t.CreatedAt.Format(time.RFC3339Nano),
			)
			if err != nil {
				return fmt.Errorf("failed to save task %s: %w", t.ID, err)
			}

			for i, item := range t.Checklist {
				checked := 0
				if item.Checked {
					checked = 1
				}
				if _, err := itemStmt.Exec(t.ID, i, item.Text, checked); err != nil {
					return fmt.Errorf("failed to save checklist item: %w", err)
				}
			}
		}

		_, err = tx.Exec(`
			INSERT INTO meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, snapshotKey, time.Now().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to write snapshot marker: %w", err)
		}

		return nil
	})
}

// Helper functions

func (db *DB) loadChecklistItems() (map[string][]model.ChecklistItem, error) {
	rows, err := db.Query(`
		SELECT task_id, text, checked
		FROM checklist_items
		ORDER BY task_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]model.ChecklistItem)
	for rows.Next() {
		var taskID, text string
		var checked int
		if err := rows.Scan(&taskID, &text, &checked); err != nil {
			return nil, err
		}
		items[taskID] = append(items[taskID], model.ChecklistItem{Text: text, Checked: checked == 1})
	}
	return items, rows.Err()
}

func (db *DB) scanTasks(rows *sql.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		t, err := db.scanTaskRow(rows)
		if errors.Is(err, errUnreadableRow) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (db *DB) scanTaskRow(s scanner) (*model.Task, error) {
	var t model.Task
	var date, createdAt string
	var finishedAt *string
	var isChecklist int

	err := s.Scan(
		&t.ID, &t.Title, &date, &t.Category, &t.Priority, &t.Notes,
		&t.Status, &t.Reason, &finishedAt, &isChecklist, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.IsChecklist = isChecklist == 1

	parsed, err := model.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("task %s has invalid date %q: %w", t.ID, date, errUnreadableRow)
	}
	t.Date = parsed

	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		t.CreatedAt = ts
	}
	if finishedAt != nil {
		if ts, err := time.Parse(time.RFC3339Nano, *finishedAt); err == nil {
			t.FinishedAt = &ts
		}
	}

	return &t, nil
}
