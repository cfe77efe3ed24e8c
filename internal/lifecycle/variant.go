package lifecycle

import (
	"strings"

	"github.com/dori/daybook/internal/model"
)

// SimpleTask is a handle on a non-checklist task. Only simple tasks can be
// completed, marked incomplete or marked pending by hand.
type SimpleTask struct {
	e  *Engine
	id string
}

// ChecklistTask is a handle on a checklist task. Its status follows its items.
type ChecklistTask struct {
	e  *Engine
	id string
}

// Simple returns a handle if id names a simple task
func (e *Engine) Simple(id string) (SimpleTask, bool) {
	t, ok := e.store.Get(id)
	if !ok || t.IsChecklist {
		return SimpleTask{}, false
	}
	return SimpleTask{e: e, id: id}, true
}

// Checklist returns a handle if id names a checklist task
func (e *Engine) Checklist(id string) (ChecklistTask, bool) {
	t, ok := e.store.Get(id)
	if !ok || !t.IsChecklist {
		return ChecklistTask{}, false
	}
	return ChecklistTask{e: e, id: id}, true
}

// ID returns the task id
func (s SimpleTask) ID() string { return s.id }

// ID returns the task id
func (c ChecklistTask) ID() string { return c.id }

// MarkComplete moves the task to finished and stamps the finish time.
// A finished task is left as it is.
func (s SimpleTask) MarkComplete() bool {
	now := s.e.now()
	ok := s.e.store.Update(s.id, func(t *model.Task) bool {
		if t.IsChecklist || t.Status == model.StatusFinished {
			return false
		}
		t.Status = model.StatusFinished
		setFinished(t, now)
		return true
	})
	if ok {
		s.e.notify.Notify(MsgComplete)
	}
	return ok
}

// MarkIncomplete moves an unfinished task to incomplete with a reason
func (s SimpleTask) MarkIncomplete(reason string) bool {
	if !s.withReason(model.StatusIncomplete, reason) {
		return false
	}
	s.e.notify.Notify(MsgIncomplete)
	return true
}

// MarkPending moves an unfinished task to pending with a reason
func (s SimpleTask) MarkPending(reason string) bool {
	if !s.withReason(model.StatusPending, reason) {
		return false
	}
	s.e.notify.Notify(MsgPending)
	return true
}

func (s SimpleTask) withReason(status model.Status, reason string) bool {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return false
	}
	return s.e.store.Update(s.id, func(t *model.Task) bool {
		if t.IsChecklist || t.Status == model.StatusFinished {
			return false
		}
		t.Status = status
		t.Reason = reason
		t.FinishedAt = nil
		return true
	})
}

// Toggle sets item index to checked and recomputes the status: finished
// when every item is checked, pending otherwise.
func (c ChecklistTask) Toggle(index int, checked bool) bool {
	now := c.e.now()
	var done bool
	ok := c.e.store.Update(c.id, func(t *model.Task) bool {
		if !t.IsChecklist || index < 0 || index >= len(t.Checklist) {
			return false
		}
		t.Checklist[index].Checked = checked

		done = t.AllChecked()
		if done {
			t.Status = model.StatusFinished
			at := now
			t.FinishedAt = &at
		} else {
			t.Status = model.StatusPending
			t.FinishedAt = nil
		}
		return true
	})
	if !ok {
		return false
	}
	if done {
		c.e.notify.Notify(MsgDone)
	} else {
		c.e.notify.Notify(MsgUndone)
	}
	return true
}
