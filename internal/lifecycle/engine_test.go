package lifecycle

import (
	"fmt"
	"testing"
	"time"

	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/notify"
	"github.com/dori/daybook/internal/schedule"
	"github.com/dori/daybook/internal/store"
)

var testNow = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

type harness struct {
	engine   *Engine
	store    *store.Store
	messages []string
	clock    time.Time
}

func newHarness(t *testing.T, tasks ...model.Task) *harness {
	t.Helper()
	h := &harness{clock: testNow}
	h.store = store.New(store.NewMemory())
	if err := h.store.Prepend(tasks...); err != nil {
		t.Fatalf("Prepend failed: %v", err)
	}

	n := 0
	h.engine = New(h.store,
		notify.SinkFunc(func(m string) { h.messages = append(h.messages, m) }),
		WithClock(func() time.Time { return h.clock }),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("new-%d", n)
		}),
	)
	return h
}

func (h *harness) task(t *testing.T, id string) model.Task {
	t.Helper()
	task, ok := h.store.Get(id)
	if !ok {
		t.Fatalf("task %s not found", id)
	}
	return task
}

func (h *harness) lastMessage() string {
	if len(h.messages) == 0 {
		return ""
	}
	return h.messages[len(h.messages)-1]
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func simple(id string, status model.Status, d time.Time) model.Task {
	return model.Task{ID: id, Title: id, Date: d, Priority: model.PriorityMedium, Status: status}
}

func checklist(id string, items ...string) model.Task {
	t := model.Task{ID: id, Title: id, Date: date(2024, 1, 10), Status: model.StatusToday, IsChecklist: true}
	for _, item := range items {
		t.Checklist = append(t.Checklist, model.ChecklistItem{Text: item})
	}
	return t
}

// assertFinishedInvariant checks finished <=> FinishedAt for every task
func assertFinishedInvariant(t *testing.T, s *store.Store) {
	t.Helper()
	for _, task := range s.All() {
		if (task.Status == model.StatusFinished) != (task.FinishedAt != nil) {
			t.Errorf("task %s: status %s with FinishedAt %v", task.ID, task.Status, task.FinishedAt)
		}
	}
}

func TestCreateInitialStatus(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		date time.Time
		want model.Status
	}{
		{"today", date(2024, 1, 10), model.StatusToday},
		{"tomorrow", date(2024, 1, 11), model.StatusUpcoming},
		{"yesterday", date(2024, 1, 9), model.StatusToday},
		{"default date", time.Time{}, model.StatusToday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, ok := h.engine.Create(Draft{Title: "  Call Sam ", Date: tt.date})
			if !ok {
				t.Fatal("Create rejected a valid draft")
			}
			if task.Status != tt.want {
				t.Errorf("status = %s, want %s", task.Status, tt.want)
			}
			if task.Title != "Call Sam" {
				t.Errorf("title = %q, want trimmed", task.Title)
			}
			if task.Priority != model.PriorityMedium {
				t.Errorf("priority defaulted to %s", task.Priority)
			}
		})
	}

	if got := h.store.All()[0].ID; got != "new-4" {
		t.Errorf("newest task should be first, got %s", got)
	}
	if h.lastMessage() != MsgAdded {
		t.Errorf("last message = %q", h.lastMessage())
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	h := newHarness(t)
	if _, ok := h.engine.Create(Draft{Title: "   "}); ok {
		t.Fatal("empty title must be rejected")
	}
	if h.store.Len() != 0 || len(h.messages) != 0 {
		t.Error("rejected create must not change state or notify")
	}
}

func TestCreateChecklist(t *testing.T) {
	h := newHarness(t)

	task, ok := h.engine.CreateChecklist("", []string{"Socks", " ", "Charger "})
	if !ok {
		t.Fatal("CreateChecklist failed")
	}
	if task.Title != ChecklistTitle || task.Category != ChecklistCategory || task.Priority != model.PriorityLow {
		t.Errorf("unexpected checklist defaults: %+v", task)
	}
	if len(task.Checklist) != 2 || task.Checklist[1].Text != "Charger" {
		t.Errorf("items = %+v", task.Checklist)
	}
	if task.Status != model.StatusToday || !task.Date.Equal(date(2024, 1, 10)) {
		t.Errorf("status/date = %s/%v", task.Status, task.Date)
	}

	if _, ok := h.engine.CreateChecklist("Empty", []string{"", "  "}); ok {
		t.Error("checklist without items must be rejected")
	}
}

func TestMarkComplete(t *testing.T) {
	h := newHarness(t, simple("a", model.StatusToday, date(2024, 1, 10)))
	h.store.Update("a", func(t *model.Task) bool { t.Reason = "kept"; return true })

	if !h.engine.MarkComplete("a") {
		t.Fatal("MarkComplete failed")
	}
	task := h.task(t, "a")
	if task.Status != model.StatusFinished || task.FinishedAt == nil || !task.FinishedAt.Equal(testNow) {
		t.Errorf("unexpected task after complete: %+v", task)
	}
	if task.Reason != "kept" {
		t.Error("MarkComplete must not clear the reason")
	}

	h.clock = h.clock.Add(time.Hour)
	if h.engine.MarkComplete("a") {
		t.Error("completing a finished task should be a no-op")
	}
	if !h.task(t, "a").FinishedAt.Equal(testNow) {
		t.Error("finish time must not move")
	}
	assertFinishedInvariant(t, h.store)
}

func TestReasonOperations(t *testing.T) {
	h := newHarness(t,
		simple("a", model.StatusToday, date(2024, 1, 10)),
		simple("b", model.StatusUpcoming, date(2024, 1, 12)),
	)

	if h.engine.MarkIncomplete("a", "  ") {
		t.Error("empty reason must be rejected")
	}
	if h.engine.MarkPending("a", "") {
		t.Error("empty reason must be rejected")
	}
	if got := h.task(t, "a").Status; got != model.StatusToday {
		t.Fatalf("rejected operations changed status to %s", got)
	}
	if len(h.messages) != 0 {
		t.Error("rejected operations must not notify")
	}

	if !h.engine.MarkIncomplete("a", " ran out of time ") {
		t.Fatal("MarkIncomplete failed")
	}
	if task := h.task(t, "a"); task.Status != model.StatusIncomplete || task.Reason != "ran out of time" {
		t.Errorf("after MarkIncomplete: %+v", task)
	}
	if h.lastMessage() != MsgIncomplete {
		t.Errorf("message = %q", h.lastMessage())
	}

	if !h.engine.MarkPending("b", "waiting on review") {
		t.Fatal("MarkPending failed")
	}
	if task := h.task(t, "b"); task.Status != model.StatusPending || task.Reason != "waiting on review" {
		t.Errorf("after MarkPending: %+v", task)
	}

	// Incomplete -> pending is allowed, the reason is replaced
	if !h.engine.MarkPending("a", "picked up again") {
		t.Fatal("MarkPending from incomplete failed")
	}
	if task := h.task(t, "a"); task.Status != model.StatusPending || task.Reason != "picked up again" {
		t.Errorf("after re-pend: %+v", task)
	}

	h.engine.MarkComplete("b")
	if h.engine.MarkIncomplete("b", "too late") || h.engine.MarkPending("b", "too late") {
		t.Error("finished tasks cannot be marked incomplete or pending")
	}
	assertFinishedInvariant(t, h.store)
}

func TestUnknownIDIsNoOp(t *testing.T) {
	h := newHarness(t, simple("a", model.StatusToday, date(2024, 1, 10)))
	before := h.store.Version()

	ops := map[string]bool{
		"complete":   h.engine.MarkComplete("missing"),
		"incomplete": h.engine.MarkIncomplete("missing", "r"),
		"pending":    h.engine.MarkPending("missing", "r"),
		"toggle":     h.engine.ToggleChecklistItem("missing", 0, true),
		"move":       h.engine.Move("missing", model.StatusFinished),
		"edit":       h.engine.Edit("missing", Patch{}),
		"delete":     h.engine.Delete("missing", Confirmed),
	}
	for name, ok := range ops {
		if ok {
			t.Errorf("%s on unknown id reported success", name)
		}
	}
	if h.store.Version() != before || len(h.messages) != 0 {
		t.Error("operations on unknown ids must not change anything")
	}
}

func TestChecklistToggleDrivesStatus(t *testing.T) {
	h := newHarness(t, checklist("c", "Socks", "Charger"))

	steps := []struct {
		index   int
		checked bool
		want    model.Status
		msg     string
	}{
		{0, true, model.StatusPending, MsgUndone},
		{1, true, model.StatusFinished, MsgDone},
		{0, false, model.StatusPending, MsgUndone},
		{0, true, model.StatusFinished, MsgDone},
	}

	for i, step := range steps {
		h.clock = testNow.Add(time.Duration(i) * time.Minute)
		if !h.engine.ToggleChecklistItem("c", step.index, step.checked) {
			t.Fatalf("step %d: toggle rejected", i)
		}
		task := h.task(t, "c")
		if task.Status != step.want {
			t.Errorf("step %d: status = %s, want %s", i, task.Status, step.want)
		}
		if task.Status == model.StatusFinished && !task.FinishedAt.Equal(h.clock) {
			t.Errorf("step %d: FinishedAt = %v, want %v", i, task.FinishedAt, h.clock)
		}
		if h.lastMessage() != step.msg {
			t.Errorf("step %d: message = %q, want %q", i, h.lastMessage(), step.msg)
		}
		assertFinishedInvariant(t, h.store)
	}
}

func TestChecklistRejectsBadIndexAndManualOps(t *testing.T) {
	h := newHarness(t, checklist("c", "Only"), simple("s", model.StatusToday, date(2024, 1, 10)))

	if h.engine.ToggleChecklistItem("c", 1, true) || h.engine.ToggleChecklistItem("c", -1, true) {
		t.Error("out-of-range index must be rejected")
	}
	if h.engine.ToggleChecklistItem("s", 0, true) {
		t.Error("simple tasks have no checklist to toggle")
	}

	if h.engine.MarkComplete("c") || h.engine.MarkPending("c", "r") || h.engine.MarkIncomplete("c", "r") {
		t.Error("manual status operations must not apply to checklist tasks")
	}
	if h.engine.Move("c", model.StatusFinished) {
		t.Error("checklist tasks cannot be moved directly")
	}
	if got := h.task(t, "c").Status; got != model.StatusToday {
		t.Errorf("checklist status changed to %s", got)
	}

	if _, ok := h.engine.Simple("c"); ok {
		t.Error("Simple() must not return a handle for a checklist task")
	}
	if _, ok := h.engine.Checklist("s"); ok {
		t.Error("Checklist() must not return a handle for a simple task")
	}
}

func TestMoveIsPermissive(t *testing.T) {
	h := newHarness(t, simple("a", model.StatusToday, date(2024, 1, 10)))

	path := []model.Status{
		model.StatusFinished, model.StatusUpcoming, model.StatusIncomplete,
		model.StatusFinished, model.StatusPending, model.StatusToday,
	}
	for _, status := range path {
		if !h.engine.Move("a", status) {
			t.Fatalf("Move to %s rejected", status)
		}
		if got := h.task(t, "a").Status; got != status {
			t.Errorf("status = %s, want %s", got, status)
		}
		assertFinishedInvariant(t, h.store)
	}

	if h.engine.Move("a", model.StatusToday) {
		t.Error("moving to the current status should report no change")
	}
	if h.engine.Move("a", model.Status("archived")) {
		t.Error("unknown status must be rejected")
	}
	if h.lastMessage() != MsgMoved {
		t.Errorf("message = %q", h.lastMessage())
	}
}

func TestEditKeepsStatus(t *testing.T) {
	h := newHarness(t, simple("a", model.StatusToday, date(2024, 1, 10)))

	title := "Finish report"
	tomorrow := date(2024, 1, 11)
	high := model.PriorityHigh
	category := "Work"
	if !h.engine.Edit("a", Patch{Title: &title, Date: &tomorrow, Priority: &high, Category: &category}) {
		t.Fatal("Edit failed")
	}

	task := h.task(t, "a")
	if task.Title != title || !task.Date.Equal(tomorrow) || task.Priority != high || task.Category != category {
		t.Errorf("edit not applied: %+v", task)
	}
	if task.Status != model.StatusToday {
		t.Errorf("edit must not change status, got %s", task.Status)
	}
	if task.ID != "a" {
		t.Error("edit must not change the id")
	}

	empty := " "
	if h.engine.Edit("a", Patch{Title: &empty}) {
		t.Error("empty title must be rejected")
	}
	bad := model.Priority("Urgent")
	if h.engine.Edit("a", Patch{Priority: &bad}) {
		t.Error("unknown priority must be rejected")
	}
	if h.task(t, "a").Title != title {
		t.Error("rejected edit changed the task")
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	h := newHarness(t, simple("a", model.StatusToday, date(2024, 1, 10)))

	var prompt string
	decline := ConfirmFunc(func(p string) bool {
		prompt = p
		return false
	})
	if h.engine.Delete("a", decline) {
		t.Fatal("declined delete must not proceed")
	}
	if prompt != `Delete "a"?` {
		t.Errorf("prompt = %q", prompt)
	}
	if h.engine.Delete("a", nil) {
		t.Fatal("delete without a confirmer must not proceed")
	}
	if h.store.Len() != 1 {
		t.Fatal("task removed without confirmation")
	}

	if !h.engine.Delete("a", Confirmed) {
		t.Fatal("confirmed delete failed")
	}
	if _, ok := h.store.Get("a"); ok {
		t.Error("task still present after delete")
	}
	if h.lastMessage() != MsgDeleted {
		t.Errorf("message = %q", h.lastMessage())
	}
}

func TestSweepOverdue(t *testing.T) {
	yesterday := date(2024, 1, 9)
	finishedAt := testNow.Add(-48 * time.Hour)

	done := simple("finished", model.StatusFinished, yesterday)
	done.FinishedAt = &finishedAt
	pending := simple("pending", model.StatusPending, yesterday)
	pending.Reason = "blocked"
	incomplete := simple("incomplete", model.StatusIncomplete, yesterday)
	incomplete.Reason = "skipped"
	stale := simple("stale", model.StatusToday, yesterday)
	stale.Reason = "earlier note"

	h := newHarness(t,
		done, pending, incomplete, stale,
		simple("late-upcoming", model.StatusUpcoming, date(2023, 12, 1)),
		simple("today", model.StatusToday, date(2024, 1, 10)),
		simple("future", model.StatusUpcoming, date(2024, 1, 20)),
	)
	before := map[string]model.Task{}
	for _, task := range h.store.All() {
		before[task.ID] = task
	}

	if n := h.engine.SweepOverdue(); n != 2 {
		t.Errorf("swept %d tasks, want 2", n)
	}

	for _, id := range []string{"finished", "pending", "incomplete", "today", "future"} {
		got := h.task(t, id)
		if got.Status != before[id].Status || got.Reason != before[id].Reason {
			t.Errorf("sweep touched %s: %+v", id, got)
		}
	}
	if got := h.task(t, "stale"); got.Status != model.StatusIncomplete || got.Reason != "earlier note" {
		t.Errorf("stale task after sweep: %+v", got)
	}
	if got := h.task(t, "late-upcoming"); got.Status != model.StatusIncomplete || got.Reason != "" {
		t.Errorf("late upcoming task after sweep: %+v", got)
	}

	if n := h.engine.SweepOverdue(); n != 0 {
		t.Errorf("second sweep changed %d tasks", n)
	}
	assertFinishedInvariant(t, h.store)
}

func TestOpenSeedsAndSweeps(t *testing.T) {
	mem := store.NewMemory()
	yesterday := simple("old", model.StatusToday, date(2024, 1, 9))
	mem.SaveTasks([]model.Task{yesterday})

	s := store.New(mem)
	e := New(s, nil, WithClock(func() time.Time { return testNow }))
	swept, err := e.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if swept != 1 {
		t.Errorf("swept = %d, want 1", swept)
	}

	fresh := New(store.New(store.NewMemory()), nil, WithClock(func() time.Time { return testNow }))
	if _, err := fresh.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if fresh.Store().Len() != 3 {
		t.Errorf("first run should seed 3 tasks, got %d", fresh.Store().Len())
	}
}

func TestUpload(t *testing.T) {
	h := newHarness(t, simple("existing", model.StatusToday, date(2024, 1, 10)))

	sched, tasks, ok := h.engine.Upload("Go shopping\nCall Sam", schedule.BeginToday())
	if !ok {
		t.Fatal("Upload failed")
	}
	if len(tasks) != 2 || sched.Days() != 2 || !sched.Start.Equal(date(2024, 1, 10)) {
		t.Fatalf("unexpected upload result: %+v %+v", sched, tasks)
	}

	all := h.store.All()
	if all[0].Title != "Go shopping" || all[1].Title != "Call Sam" || all[2].ID != "existing" {
		t.Errorf("uploaded tasks should be prepended in order: %+v", all)
	}
	if h.lastMessage() != MsgUploaded {
		t.Errorf("message = %q", h.lastMessage())
	}

	if _, _, ok := h.engine.Upload("\n\n", schedule.BeginToday()); ok {
		t.Error("empty upload should be rejected")
	}
}
