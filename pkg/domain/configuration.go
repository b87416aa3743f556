package domain

import "fmt"

// Connection wires an output port of one component to an input port of another.
type Connection struct {
	From     string `json:"from" yaml:"from"`
	FromPort PortID `json:"from_port" yaml:"from_port"`
	To       string `json:"to" yaml:"to"`
	ToPort   PortID `json:"to_port" yaml:"to_port"`
}

func (c Connection) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", c.From, c.FromPort, c.To, c.ToPort)
}

// Connect is shorthand for building a Connection.
func Connect(from string, fromPort PortID, to string, toPort PortID) Connection {
	return Connection{From: from, FromPort: fromPort, To: to, ToPort: toPort}
}

// Configuration is the static topology of a run.
// The order of Components is the firing order and the fan-in tie-break.
type Configuration struct {
	Components  []Component  `json:"components" yaml:"components"`
	Connections []Connection `json:"connections" yaml:"connections"`
}

// Component looks up a component by name.
func (c Configuration) Component(name string) (Component, bool) {
	for _, comp := range c.Components {
		if comp.Name == name {
			return comp, true
		}
	}
	return Component{}, false
}

// Outgoing returns the connections leaving the given port, in declaration order.
func (c Configuration) Outgoing(component string, port PortID) []Connection {
	var out []Connection
	for _, conn := range c.Connections {
		if conn.From == component && conn.FromPort == port {
			out = append(out, conn)
		}
	}
	return out
}
