package runtime

import (
	"fmt"

	"github.com/aretw0/lockstep/pkg/domain"
)

// ActionFaultError reports a rule action that failed during a tick.
// The tick that raised it is never applied.
type ActionFaultError struct {
	Component string
	From      domain.ControlState
	To        domain.ControlState
	Tick      uint64
	Err       error
}

func (e *ActionFaultError) Error() string {
	return fmt.Sprintf("tick %d: component '%s' faulted in %s -> %s: %v", e.Tick, e.Component, e.From, e.To, e.Err)
}

func (e *ActionFaultError) Unwrap() error {
	return e.Err
}

// EmissionError reports an event emitted on a port that cannot send.
type EmissionError struct {
	Event domain.Event
	Cause error
}

func (e *EmissionError) Error() string {
	return fmt.Sprintf("emitted %s: %v", e.Event, e.Cause)
}

func (e *EmissionError) Unwrap() error {
	return e.Cause
}

// PanicError wraps a value recovered from a panicking action.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("action panicked: %v", e.Value)
}
