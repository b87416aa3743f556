package domain

import (
	"encoding/json"
	"fmt"
)

// EventKind is the tag of an event. Each application defines its own closed set.
type EventKind string

// PortID names a port on a component.
type PortID string

// Payload is the data carried by an event.
// Every variant belongs to exactly one EventKind, which makes the payload shape
// a function of the tag.
type Payload interface {
	Kind() EventKind
}

// Event is an immutable message travelling over a port.
type Event struct {
	kind    EventKind
	port    PortID
	payload Payload
}

// NewEvent creates an event without payload.
func NewEvent(kind EventKind, port PortID) Event {
	return Event{kind: kind, port: port}
}

// NewPayloadEvent creates an event whose kind is the kind of its payload.
func NewPayloadEvent(port PortID, payload Payload) Event {
	if payload == nil {
		panic("domain: NewPayloadEvent called with nil payload")
	}
	return Event{kind: payload.Kind(), port: port, payload: payload}
}

// Kind returns the event tag.
func (e Event) Kind() EventKind { return e.kind }

// Port returns the port the event departs from or arrives on.
func (e Event) Port() PortID { return e.port }

// Payload returns the payload, or nil when the event carries none.
func (e Event) Payload() Payload { return e.payload }

// OnPort returns a copy of the event bound to another port.
func (e Event) OnPort(port PortID) Event {
	e.port = port
	return e
}

// Matches reports whether the event satisfies the trigger.
func (e Event) Matches(t Trigger) bool {
	return e.kind == t.Kind && e.port == t.Port
}

func (e Event) String() string {
	if e.payload == nil {
		return fmt.Sprintf("%s@%s", e.kind, e.port)
	}
	return fmt.Sprintf("%s@%s%+v", e.kind, e.port, e.payload)
}

type eventJSON struct {
	Kind    EventKind `json:"kind"`
	Port    PortID    `json:"port"`
	Payload Payload   `json:"payload,omitempty"`
}

// MarshalJSON renders the event for introspection endpoints.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{Kind: e.kind, Port: e.port, Payload: e.payload})
}
