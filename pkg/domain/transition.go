package domain

import "time"

// ControlState is the discrete mode of a component's state machine.
type ControlState string

// Env is the read-only tick context handed to guards and actions.
// Now is sampled once per tick from the engine clock.
type Env struct {
	Tick uint64
	Now  time.Time
}

// Emit appends an event to the firing component's emission buffer.
type Emit func(Event)

// Guard gates a rule on the component's data state.
type Guard func(env Env, data any) bool

// Action runs when a rule fires and returns the new data state.
// trigger is nil for spontaneous rules.
type Action func(env Env, data any, emit Emit, trigger *Event) (any, error)

// Trigger selects the event (kind and port) a rule reacts to.
type Trigger struct {
	Kind EventKind `json:"kind" yaml:"kind"`
	Port PortID    `json:"port" yaml:"port"`
}

// Rule defines a transition from one control state to another.
type Rule struct {
	From ControlState `json:"from" yaml:"from"`
	To   ControlState `json:"to" yaml:"to"`

	// Trigger is nil for spontaneous rules, which are evaluated every tick
	// purely on their guard.
	Trigger *Trigger `json:"trigger,omitempty" yaml:"trigger,omitempty"`

	// Guard is optional; a nil guard always holds.
	Guard Guard `json:"-" yaml:"-"`

	// Action is optional; a nil action keeps the data state and emits nothing.
	Action Action `json:"-" yaml:"-"`

	// Label is a human readable description used by visualizations.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Spontaneous reports whether the rule has no event trigger.
func (r Rule) Spontaneous() bool {
	return r.Trigger == nil
}

// Allows evaluates the guard against the data state.
func (r Rule) Allows(env Env, data any) bool {
	return r.Guard == nil || r.Guard(env, data)
}
