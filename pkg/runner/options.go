package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/lockstep/pkg/domain"
)

// DefaultInterval is the tick interval used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// OverrunFunc is called when a tick took longer than the interval.
type OverrunFunc func(tick uint64, took time.Duration)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEngine configures the engine to drive and the start states passed to its Init.
func WithEngine(engine Engine, starts ...domain.Start) Option {
	return func(r *Runner) {
		r.engine = engine
		r.starts = starts
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInterval sets the time between two ticks.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.Interval = d
		}
	}
}

// WithOverrunHook registers a callback for ticks exceeding the interval.
// Drift is not corrected; the next tick simply starts at the next ticker beat.
func WithOverrunHook(fn OverrunFunc) Option {
	return func(r *Runner) {
		r.onOverrun = fn
	}
}

// WithMaxTicks stops Run after the given tick has been committed. Zero means unbounded.
func WithMaxTicks(n uint64) Option {
	return func(r *Runner) {
		r.maxTicks = n
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.runID = id
	}
}
