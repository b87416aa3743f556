package domain

import "errors"

// ErrUnknownComponent is returned when a name does not match any component of the configuration.
var ErrUnknownComponent = errors.New("unknown component")

// ErrUnknownPort is returned when a port is not declared by the component it is used on.
var ErrUnknownPort = errors.New("unknown port")

// ErrPortDirection is returned when a port is used in a direction it does not support.
var ErrPortDirection = errors.New("port direction mismatch")

// ErrDuplicateComponent is returned when two components share the same name.
var ErrDuplicateComponent = errors.New("duplicate component")

// ErrMissingStart is returned when a component has no designated start state.
var ErrMissingStart = errors.New("missing start state")

// ErrInvalidData is returned when a data state does not have the shape a component's rules expect.
var ErrInvalidData = errors.New("invalid data state")
