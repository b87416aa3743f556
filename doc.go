/*
Package lockstep is a deterministic, tick-driven engine for composing independent
finite-state machines that talk only through typed ports and events.

# Concept

A Configuration declares components and the connections between their ports.
Every tick each component looks at its own instance state, fires at most one rule
and emits events. Emitted events are routed along the connections and become
visible to their receivers on the next tick, never earlier. Nothing else is shared
between components, so given the same configuration state and clock reading a
tick always produces the same result.

Components come in three shapes:

  - State machines, described by an ordered rule table (see package dsl).
  - Inbound adapters, which drain messages from an external transport.
  - Outbound adapters, which publish their inbox to an external transport.

# Usage

	eng, err := lockstep.New(cfg, lockstep.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	state, err := eng.Init(starts...)
	if err != nil {
		log.Fatal(err)
	}

	for {
		state, err = eng.Step(ctx, state)
		if err != nil {
			// The tick was aborted and state is unchanged.
			log.Fatal(err)
		}
	}

In applications the loop is owned by a runner.Runner, which steps the engine on a
fixed interval and publishes immutable snapshots for concurrent readers.
*/
package lockstep
