package domain

// InstanceState is the runtime state of one component.
type InstanceState struct {
	// Control is the current state machine mode.
	Control ControlState `json:"control"`

	// Data is the component's auxiliary value (counters, timestamps).
	// It is replaced, never mutated, by rule actions.
	Data any `json:"data,omitempty"`

	// Inbox holds the events routed to the component during the previous tick.
	Inbox []Event `json:"inbox"`
}

// Start designates the initial state of a component instance.
type Start struct {
	Component string
	Control   ControlState
	Data      any

	// Outbox is routed before the first tick, typically to broadcast startup values.
	Outbox []Event
}

// ConfigurationState is the snapshot of every component instance after a tick.
type ConfigurationState struct {
	// Tick is the number of ticks completed so far.
	Tick uint64 `json:"tick"`

	Instances map[string]InstanceState `json:"instances"`
}

// Instance returns the state of a named component.
func (s ConfigurationState) Instance(name string) (InstanceState, bool) {
	inst, ok := s.Instances[name]
	return inst, ok
}

// Clone returns a copy that shares no inbox storage with s.
// Data values are shared; actions must treat them as immutable.
func (s ConfigurationState) Clone() ConfigurationState {
	next := ConfigurationState{
		Tick:      s.Tick,
		Instances: make(map[string]InstanceState, len(s.Instances)),
	}
	for name, inst := range s.Instances {
		inst.Inbox = append([]Event(nil), inst.Inbox...)
		next.Instances[name] = inst
	}
	return next
}
