package notify

import (
	"os/exec"
	"strconv"
	"time"
)

// Sink receives short, fire-and-forget user notifications
type Sink interface {
	Notify(message string)
}

// SinkFunc adapts a plain function to a Sink
type SinkFunc func(message string)

// Notify calls f(message)
func (f SinkFunc) Notify(message string) {
	f(message)
}

// Discard drops every notification
var Discard Sink = SinkFunc(func(string) {})

// Fanout delivers each notification to every sink in order
func Fanout(sinks ...Sink) Sink {
	return SinkFunc(func(message string) {
		for _, s := range sinks {
			if s != nil {
				s.Notify(message)
			}
		}
	})
}

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	run     func(name string, args ...string) error
}

// NewNotifier creates a new notifier; desktop delivery starts disabled
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}
	return n.run("notify-send", notification.args()...)
}

// Notify sends message as a low-urgency desktop notification without waiting
// for it to be delivered. Delivery errors are dropped.
func (n *Notifier) Notify(message string) {
	if !n.enabled {
		return
	}
	go n.Send(Notification{
		Title:   "daybook",
		Body:    message,
		Urgency: UrgencyLow,
		Timeout: 3 * time.Second,
	})
}

// SendDueReminder sends a reminder for tasks due today
func (n *Notifier) SendDueReminder(count int) error {
	if count == 0 {
		return nil
	}
	body := "1 task scheduled for today"
	if count > 1 {
		body = strconv.Itoa(count) + " tasks scheduled for today"
	}
	return n.Send(Notification{
		Title:   "Today",
		Body:    body,
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "appointment-soon-symbolic",
	})
}

// SendOverdue reports tasks the overdue sweep marked incomplete
func (n *Notifier) SendOverdue(count int) error {
	if count == 0 {
		return nil
	}
	body := "1 overdue task marked not completed"
	if count > 1 {
		body = strconv.Itoa(count) + " overdue tasks marked not completed"
	}
	return n.Send(Notification{
		Title:   "Overdue",
		Body:    body,
		Urgency: UrgencyCritical,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	})
}

func (n Notification) args() []string {
	args := []string{}

	switch n.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// Timeout is in milliseconds
	if n.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(n.Timeout.Milliseconds())))
	}

	if n.Icon != "" {
		args = append(args, "-i", n.Icon)
	}

	args = append(args, "-a", "daybook")

	args = append(args, n.Title)
	if n.Body != "" {
		args = append(args, n.Body)
	}
	return args
}
