package view

import (
	"time"
)

// DefaultBannerInterval is how often the banner advances
const DefaultBannerInterval = 20 * time.Second

// RotationDeps is the dependency set that restarts the banner timer
type RotationDeps struct {
	Version     uint64 // task collection identity
	SelectedDay int
}

// Rotator owns the banner rotation subscription. Each Restart hands out a new
// generation; ticks from older generations are ignored, so restarting
// cancels the previous timer without touching shared state.
//
// The Rotator decides, the caller schedules: after Restart or an accepted
// Tick the caller arranges the next tick for the returned generation.
type Rotator struct {
	Interval time.Duration

	index      int
	generation uint64
	running    bool
	deps       RotationDeps
}

// NewRotator creates a stopped rotator
func NewRotator(interval time.Duration) *Rotator {
	if interval <= 0 {
		interval = DefaultBannerInterval
	}
	return &Rotator{Interval: interval}
}

// Index returns the current banner index
func (r *Rotator) Index() int {
	return r.index
}

// Generation returns the live timer generation
func (r *Rotator) Generation() uint64 {
	return r.generation
}

// Running returns true while a timer generation is live
func (r *Rotator) Running() bool {
	return r.running
}

// Start begins rotation for deps and returns the generation to schedule
func (r *Rotator) Start(deps RotationDeps) uint64 {
	r.deps = deps
	return r.restart()
}

// Sync restarts the timer if deps changed since the last start. A change of
// selected day also resets the index. It returns the generation to schedule
// and true when a restart happened.
func (r *Rotator) Sync(deps RotationDeps) (uint64, bool) {
	if r.running && deps == r.deps {
		return r.generation, false
	}
	if deps.SelectedDay != r.deps.SelectedDay {
		r.index = 0
	}
	r.deps = deps
	return r.restart(), true
}

// Tick advances the index if gen is the live generation
func (r *Rotator) Tick(gen uint64) bool {
	if !r.running || gen != r.generation {
		return false
	}
	r.index++
	return true
}

// Stop tears the subscription down; pending ticks become stale
func (r *Rotator) Stop() {
	r.running = false
	r.generation++
}

func (r *Rotator) restart() uint64 {
	r.generation++
	r.running = true
	return r.generation
}
