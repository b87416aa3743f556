package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Error describes a single configuration defect.
type Error struct {
	Component string // Component name, if any
	Port      string // Port id, if any
	Reason    string // Human-readable reason
	Err       error  // Sentinel from pkg/domain, if any
}

func (e *Error) Error() string {
	var where []string
	if e.Component != "" {
		where = append(where, fmt.Sprintf("component %q", e.Component))
	}
	if e.Port != "" {
		where = append(where, fmt.Sprintf("port %q", e.Port))
	}
	if len(where) == 0 {
		return e.Reason
	}
	return strings.Join(where, " ") + ": " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d configuration errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Errors returns all validation errors if err is or wraps an AggregateError.
// Otherwise returns nil.
func Errors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
