package domain

import (
	"context"
	"time"
)

// TickEvent summarizes a committed tick.
type TickEvent struct {
	Tick      uint64        `json:"tick"`
	Now       time.Time     `json:"now"`
	Fired     int           `json:"fired"`
	Emitted   int           `json:"emitted"`
	Routed    int           `json:"routed"`
	Delivered int           `json:"delivered"`
	Dropped   int           `json:"dropped"`
	Duration  time.Duration `json:"duration"`
}

// TransitionEvent reports a fired rule.
type TransitionEvent struct {
	Tick      uint64       `json:"tick"`
	Component string       `json:"component"`
	From      ControlState `json:"from"`
	To        ControlState `json:"to"`
	Trigger   *Event       `json:"trigger,omitempty"`
	Emitted   []Event      `json:"emitted,omitempty"`
}

// DropEvent reports an event or message discarded without error.
type DropEvent struct {
	Tick      uint64 `json:"tick"`
	Component string `json:"component"`
	Reason    string `json:"reason"`
	Event     *Event `json:"event,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// FaultEvent reports an aborted tick.
type FaultEvent struct {
	Tick uint64 `json:"tick"`
	Err  error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Transition, drop and tick hooks only run for committed ticks.
type LifecycleHooks struct {
	OnTick       func(context.Context, *TickEvent)
	OnTransition func(context.Context, *TransitionEvent)
	OnDrop       func(context.Context, *DropEvent)
	OnFault      func(context.Context, *FaultEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTick:       chain(h.OnTick, other.OnTick),
		OnTransition: chain(h.OnTransition, other.OnTransition),
		OnDrop:       chain(h.OnDrop, other.OnDrop),
		OnFault:      chain(h.OnFault, other.OnFault),
	}
}

func chain[T any](a, b func(context.Context, T)) func(context.Context, T) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, ev T) {
		a(ctx, ev)
		b(ctx, ev)
	}
}
