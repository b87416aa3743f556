package domain

import "context"

// Direction declares how a port may be wired.
type Direction int

const (
	// In ports receive events.
	In Direction = iota + 1
	// Out ports send events.
	Out
	// InOut ports can be wired either way.
	InOut
)

// CanReceive reports whether the port may be the destination of a connection.
func (d Direction) CanReceive() bool { return d == In || d == InOut }

// CanSend reports whether the port may be the source of a connection.
func (d Direction) CanSend() bool { return d == Out || d == InOut }

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case InOut:
		return "inout"
	default:
		return "invalid"
	}
}

// Port is a named, directional endpoint of a component.
type Port struct {
	ID        PortID    `json:"id" yaml:"id"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Source is the inbound side of an adapter component.
// Drain returns the events available for the tick without consuming them; it
// may be called again for the same tick if the previous attempt was aborted.
// Commit is called only once the tick commits and consumes what the last
// Drain returned.
type Source interface {
	Drain(env Env) []Event
	Commit(ctx context.Context, env Env)
}

// Sink is the outbound side of an adapter component.
// Deliver receives every event that was in the component's inbox this tick.
type Sink interface {
	Deliver(ctx context.Context, env Env, events []Event)
}

// Component is the immutable blueprint of a state machine or adapter.
// A component has either Rules, a Source or a Sink.
type Component struct {
	Name  string `json:"name" yaml:"name"`
	Ports []Port `json:"ports" yaml:"ports"`
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`

	Source Source `json:"-" yaml:"-"`
	Sink   Sink   `json:"-" yaml:"-"`

	// CheckData, when set, rejects data states the rules cannot work with.
	// It applies to the start data, to the data a rule fires against and to
	// the data an action returns.
	CheckData func(data any) error `json:"-" yaml:"-"`
}

// Port looks up a declared port.
func (c Component) Port(id PortID) (Port, bool) {
	for _, p := range c.Ports {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// IsAdapter reports whether the component bridges an external transport.
func (c Component) IsAdapter() bool {
	return c.Source != nil || c.Sink != nil
}

// States lists the control states referenced by the rule table in declaration order.
func (c Component) States() []ControlState {
	seen := make(map[ControlState]bool)
	var states []ControlState
	for _, r := range c.Rules {
		for _, s := range []ControlState{r.From, r.To} {
			if !seen[s] {
				seen[s] = true
				states = append(states, s)
			}
		}
	}
	return states
}

// MarshalText renders the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
