package notify

import (
	"reflect"
	"testing"
	"time"
)

func TestNotificationArgs(t *testing.T) {
	n := Notification{
		Title:   "Overdue",
		Body:    "2 overdue tasks",
		Urgency: UrgencyCritical,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	}
	want := []string{
		"-u", "critical", "-t", "15000", "-i", "emblem-important-symbolic",
		"-a", "daybook", "Overdue", "2 overdue tasks",
	}
	if got := n.args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args() = %v, want %v", got, want)
	}
}

func TestNotifierDisabledDoesNotRun(t *testing.T) {
	n := NewNotifier(false)
	called := false
	n.run = func(string, ...string) error {
		called = true
		return nil
	}

	if err := n.SendOverdue(3); err != nil {
		t.Fatalf("SendOverdue failed: %v", err)
	}
	n.Notify("ignored")
	if called {
		t.Error("disabled notifier should not invoke notify-send")
	}
}

func TestNotifierSend(t *testing.T) {
	n := NewNotifier(true)
	var gotName string
	var gotArgs []string
	n.run = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	if err := n.SendDueReminder(2); err != nil {
		t.Fatalf("SendDueReminder failed: %v", err)
	}
	if gotName != "notify-send" {
		t.Errorf("ran %q, want notify-send", gotName)
	}
	if gotArgs[len(gotArgs)-1] != "2 tasks scheduled for today" {
		t.Errorf("unexpected body: %v", gotArgs)
	}

	gotArgs = nil
	if err := n.SendDueReminder(0); err != nil || gotArgs != nil {
		t.Error("zero count should not send")
	}
}

func TestToastsExpireAndCap(t *testing.T) {
	clock := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	toasts := NewToasts(2)
	toasts.now = func() time.Time { return clock }

	toasts.Notify("Task added")
	toasts.Notify("Task moved")
	toasts.Notify("Marked complete")

	active := toasts.Active()
	if len(active) != 2 || active[0].Message != "Task moved" {
		t.Fatalf("expected the two newest toasts, got %+v", active)
	}

	latest, ok := toasts.Latest()
	if !ok || latest.Message != "Marked complete" {
		t.Errorf("Latest() = %+v, %v", latest, ok)
	}

	clock = clock.Add(ToastLifetime + time.Millisecond)
	if _, ok := toasts.Latest(); ok {
		t.Error("toasts should expire after their lifetime")
	}
}

func TestFanout(t *testing.T) {
	var a, b []string
	sink := Fanout(
		SinkFunc(func(m string) { a = append(a, m) }),
		nil,
		SinkFunc(func(m string) { b = append(b, m) }),
	)

	sink.Notify("Task deleted")

	if len(a) != 1 || len(b) != 1 || a[0] != "Task deleted" {
		t.Errorf("fanout delivered a=%v b=%v", a, b)
	}
}
