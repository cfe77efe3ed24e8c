package notify

import (
	"sync"
	"time"
)

// ToastLifetime is how long an in-app toast stays visible
const ToastLifetime = 2200 * time.Millisecond

// Toast is one in-app message
type Toast struct {
	Message string
	At      time.Time
}

// Toasts is an in-app notification sink that keeps the most recent messages
// until they expire. It is safe to call Notify from any goroutine.
type Toasts struct {
	mu       sync.Mutex
	items    []Toast
	limit    int
	lifetime time.Duration
	now      func() time.Time
}

// NewToasts creates a toast sink keeping at most limit messages
func NewToasts(limit int) *Toasts {
	if limit < 1 {
		limit = 1
	}
	return &Toasts{limit: limit, lifetime: ToastLifetime, now: time.Now}
}

// Notify records a toast
func (t *Toasts) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = append(t.items, Toast{Message: message, At: t.now()})
	if len(t.items) > t.limit {
		t.items = t.items[len(t.items)-t.limit:]
	}
}

// Active returns unexpired toasts, oldest first, dropping expired ones
func (t *Toasts) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-t.lifetime)
	kept := t.items[:0]
	for _, item := range t.items {
		if item.At.After(cutoff) {
			kept = append(kept, item)
		}
	}
	t.items = kept

	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}

// Latest returns the newest unexpired toast
func (t *Toasts) Latest() (Toast, bool) {
	active := t.Active()
	if len(active) == 0 {
		return Toast{}, false
	}
	return active[len(active)-1], true
}
