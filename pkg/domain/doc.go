/*
Package domain contains the core domain models of the lockstep engine.

It defines the building blocks of a configuration: Events travelling over Ports,
transition Rules grouped into Components, the Connections wiring component ports
together, and the runtime snapshot (ConfigurationState) the engine advances one
tick at a time. This package is kept pure and free of I/O, following Hexagonal
Architecture principles.

# Key Entities

  - Event: an immutable tagged message bound to a port, with an optional typed Payload.
  - Rule: a guarded transition between two control states, optionally triggered by an event.
  - Component: a named blueprint of ports plus either a rule table or an adapter (Source/Sink).
  - Connection: a directed wire from an output port to an input port.
  - Configuration: the static topology (components + connections).
  - ConfigurationState: the per-tick snapshot of every component instance.
*/
package domain
