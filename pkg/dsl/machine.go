package dsl

import (
	"fmt"

	"github.com/aretw0/lockstep/pkg/domain"
)

// Machine manages the construction of one state machine component.
// C is the control state type and D the data state type.
type Machine[C ~string, D any] struct {
	name  string
	ports []domain.Port
	rules []*RuleBuilder[C, D]
}

// New creates a builder for a component with the given name.
func New[C ~string, D any](name string) *Machine[C, D] {
	return &Machine[C, D]{name: name}
}

// In declares a receive-only port.
func (m *Machine[C, D]) In(id domain.PortID) *Machine[C, D] {
	return m.Port(id, domain.In)
}

// Out declares a send-only port.
func (m *Machine[C, D]) Out(id domain.PortID) *Machine[C, D] {
	return m.Port(id, domain.Out)
}

// InOut declares a port that can both send and receive.
func (m *Machine[C, D]) InOut(id domain.PortID) *Machine[C, D] {
	return m.Port(id, domain.InOut)
}

// Port declares a port with an explicit direction.
func (m *Machine[C, D]) Port(id domain.PortID, dir domain.Direction) *Machine[C, D] {
	m.ports = append(m.ports, domain.Port{ID: id, Direction: dir})
	return m
}

// From starts a new rule leaving the given control state.
// Rules are matched in the order in which From is called.
func (m *Machine[C, D]) From(state C) *RuleBuilder[C, D] {
	rb := &RuleBuilder[C, D]{from: state}
	m.rules = append(m.rules, rb)
	return rb
}

// Build compiles the machine into a component blueprint.
// Structural problems such as a rule without a target are reported by the
// engine's validation, not here.
func (m *Machine[C, D]) Build() domain.Component {
	comp := domain.Component{
		Name:  m.name,
		Ports: append([]domain.Port(nil), m.ports...),
		Rules: make([]domain.Rule, 0, len(m.rules)),

		CheckData: checkData[D],
	}
	for _, rb := range m.rules {
		comp.Rules = append(comp.Rules, rb.build())
	}
	return comp
}

// Start designates the initial control and data state of the machine.
// Outbox events are routed before the first tick.
func (m *Machine[C, D]) Start(control C, data D, outbox ...domain.Event) domain.Start {
	return domain.Start{
		Component: m.name,
		Control:   domain.ControlState(control),
		Data:      data,
		Outbox:    outbox,
	}
}

// Data extracts typed data from an instance state.
// It returns the zero value when the instance holds no data of type D.
func Data[D any](inst domain.InstanceState) D {
	return as[D](inst.Data)
}

func as[D any](v any) D {
	d, _ := v.(D)
	return d
}

func checkData[D any](v any) error {
	_, err := typed[D](v)
	return err
}

// typed converts a data state to D. A nil data state is the zero value;
// anything else must hold a D.
func typed[D any](v any) (D, error) {
	var zero D
	if v == nil {
		return zero, nil
	}
	d, ok := v.(D)
	if !ok {
		return zero, fmt.Errorf("data state is %T, want %T", v, zero)
	}
	return d, nil
}
