package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/lockstep/pkg/domain"
)

// ManualClock is a domain.Clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current frozen time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Recorder captures lifecycle hook invocations.
type Recorder struct {
	mu          sync.Mutex
	Ticks       []domain.TickEvent
	Transitions []domain.TransitionEvent
	Drops       []domain.DropEvent
	Faults      []domain.FaultEvent
}

// Hooks returns lifecycle hooks appending to the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(_ context.Context, e *domain.TickEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Ticks = append(r.Ticks, *e)
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Transitions = append(r.Transitions, *e)
		},
		OnDrop: func(_ context.Context, e *domain.DropEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Drops = append(r.Drops, *e)
		},
		OnFault: func(_ context.Context, e *domain.FaultEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Faults = append(r.Faults, *e)
		},
	}
}

// DropReasons returns the reasons of all recorded drops in order.
func (r *Recorder) DropReasons() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	reasons := make([]string, 0, len(r.Drops))
	for _, d := range r.Drops {
		reasons = append(reasons, d.Reason)
	}
	return reasons
}
