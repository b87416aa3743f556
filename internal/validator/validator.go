package validator

import (
	"fmt"

	"github.com/aretw0/lockstep/pkg/domain"
)

type collector struct {
	errs []error
}

func (c *collector) add(component string, port domain.PortID, sentinel error, format string, args ...any) {
	c.errs = append(c.errs, &Error{
		Component: component,
		Port:      string(port),
		Reason:    fmt.Sprintf(format, args...),
		Err:       sentinel,
	})
}

func (c *collector) result() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: c.errs}
}

// ValidateConfiguration checks a topology before any tick runs.
// All defects are reported at once.
func ValidateConfiguration(cfg domain.Configuration) error {
	c := &collector{}

	if len(cfg.Components) == 0 {
		c.add("", "", nil, "configuration has no components")
	}

	names := make(map[string]bool, len(cfg.Components))
	for _, comp := range cfg.Components {
		if comp.Name == "" {
			c.add("", "", nil, "component name is empty")
			continue
		}
		if names[comp.Name] {
			c.add(comp.Name, "", domain.ErrDuplicateComponent, "declared more than once")
			continue
		}
		names[comp.Name] = true
		validateComponent(c, comp)
	}

	seen := make(map[domain.Connection]bool, len(cfg.Connections))
	for _, conn := range cfg.Connections {
		if seen[conn] {
			c.add(conn.From, conn.FromPort, nil, "duplicate connection %s", conn)
			continue
		}
		seen[conn] = true
		validateConnection(c, cfg, conn)
	}

	return c.result()
}

func validateComponent(c *collector, comp domain.Component) {
	ports := make(map[domain.PortID]bool, len(comp.Ports))
	for _, p := range comp.Ports {
		if p.ID == "" {
			c.add(comp.Name, "", nil, "port id is empty")
			continue
		}
		if ports[p.ID] {
			c.add(comp.Name, p.ID, nil, "port declared more than once")
		}
		ports[p.ID] = true
		if !p.Direction.CanSend() && !p.Direction.CanReceive() {
			c.add(comp.Name, p.ID, domain.ErrPortDirection, "invalid direction %d", p.Direction)
		}
	}

	switch {
	case comp.Source != nil && comp.Sink != nil:
		c.add(comp.Name, "", nil, "adapter cannot be both source and sink")
	case comp.Source != nil:
		validateAdapter(c, comp, "source", domain.Direction.CanSend)
	case comp.Sink != nil:
		validateAdapter(c, comp, "sink", domain.Direction.CanReceive)
	default:
		validateRules(c, comp)
	}
}

func validateAdapter(c *collector, comp domain.Component, kind string, capable func(domain.Direction) bool) {
	if len(comp.Rules) > 0 {
		c.add(comp.Name, "", nil, "%s adapter cannot declare rules", kind)
	}
	if len(comp.Ports) != 1 {
		c.add(comp.Name, "", nil, "%s adapter must own exactly one port, has %d", kind, len(comp.Ports))
		return
	}
	if p := comp.Ports[0]; !capable(p.Direction) {
		c.add(comp.Name, p.ID, domain.ErrPortDirection, "%s adapter port cannot be %s", kind, p.Direction)
	}
}

func validateRules(c *collector, comp domain.Component) {
	for i, r := range comp.Rules {
		if r.From == "" || r.To == "" {
			c.add(comp.Name, "", nil, "rule %d has an empty control state", i)
		}
		if r.Trigger == nil {
			continue
		}
		p, ok := comp.Port(r.Trigger.Port)
		if !ok {
			c.add(comp.Name, r.Trigger.Port, domain.ErrUnknownPort, "rule %d triggers on an undeclared port", i)
			continue
		}
		if !p.Direction.CanReceive() {
			c.add(comp.Name, p.ID, domain.ErrPortDirection, "rule %d triggers on a port that cannot receive", i)
		}
	}
}

func validateConnection(c *collector, cfg domain.Configuration, conn domain.Connection) {
	src, ok := cfg.Component(conn.From)
	if !ok {
		c.add(conn.From, "", domain.ErrUnknownComponent, "connection %s references an unknown source", conn)
	} else if p, ok := src.Port(conn.FromPort); !ok {
		c.add(conn.From, conn.FromPort, domain.ErrUnknownPort, "connection %s uses an undeclared source port", conn)
	} else if !p.Direction.CanSend() {
		c.add(conn.From, conn.FromPort, domain.ErrPortDirection, "connection %s starts at a port that cannot send", conn)
	}

	dst, ok := cfg.Component(conn.To)
	if !ok {
		c.add(conn.To, "", domain.ErrUnknownComponent, "connection %s references an unknown destination", conn)
	} else if p, ok := dst.Port(conn.ToPort); !ok {
		c.add(conn.To, conn.ToPort, domain.ErrUnknownPort, "connection %s uses an undeclared destination port", conn)
	} else if !p.Direction.CanReceive() {
		c.add(conn.To, conn.ToPort, domain.ErrPortDirection, "connection %s ends at a port that cannot receive", conn)
	}
}

// ValidateStarts checks that every component has exactly one start and that
// startup outboxes only use send-capable ports.
func ValidateStarts(cfg domain.Configuration, starts []domain.Start) error {
	c := &collector{}

	byName := make(map[string]bool, len(starts))
	for _, s := range starts {
		comp, ok := cfg.Component(s.Component)
		if !ok {
			c.add(s.Component, "", domain.ErrUnknownComponent, "start state for an unknown component")
			continue
		}
		if byName[s.Component] {
			c.add(s.Component, "", nil, "start state declared more than once")
			continue
		}
		byName[s.Component] = true

		if !comp.IsAdapter() && s.Control == "" {
			c.add(s.Component, "", nil, "start control state is empty")
		}
		if comp.CheckData != nil {
			if err := comp.CheckData(s.Data); err != nil {
				c.add(s.Component, "", domain.ErrInvalidData, "start data: %v", err)
			}
		}
		for _, ev := range s.Outbox {
			p, ok := comp.Port(ev.Port())
			if !ok {
				c.add(s.Component, ev.Port(), domain.ErrUnknownPort, "startup event %s on an undeclared port", ev.Kind())
				continue
			}
			if !p.Direction.CanSend() {
				c.add(s.Component, ev.Port(), domain.ErrPortDirection, "startup event %s on a port that cannot send", ev.Kind())
			}
		}
	}

	for _, comp := range cfg.Components {
		if !byName[comp.Name] && !comp.IsAdapter() {
			c.add(comp.Name, "", domain.ErrMissingStart, "no start state")
		}
	}

	return c.result()
}
