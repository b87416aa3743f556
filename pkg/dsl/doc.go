/*
Package dsl provides a typed, fluent builder for lockstep state machine components.

A Machine is parameterised by its control state type and its data type, so guards
and actions receive the component's data with its real type instead of any.
Build compiles the machine into a domain.Component whose rule table keeps the
declaration order of the From calls.

Example usage:

	type Mode string

	const (
		Idle Mode = "IDLE"
		Busy Mode = "BUSY"
	)

	type Counter struct{ N int }

	m := dsl.New[Mode, Counter]("worker").
		In("jobs").
		Out("done")

	m.From(Idle).On("JOB", "jobs").
		Do(func(env domain.Env, c Counter, emit domain.Emit, _ *domain.Event) (Counter, error) {
			emit(domain.NewEvent("ACK", "done"))
			return Counter{N: c.N + 1}, nil
		}).
		To(Busy)

	m.From(Busy).To(Idle)

	component := m.Build()
	start := m.Start(Idle, Counter{})
*/
package dsl
