package lockstep

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/lockstep/internal/runtime"
	"github.com/aretw0/lockstep/pkg/domain"
)

// Engine is the high-level entry point for the lockstep library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime  *runtime.Engine
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	clock    domain.Clock
	parallel int
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
// Calling it more than once merges the hooks in call order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock injects the time source sampled at the start of every tick.
func WithClock(clock domain.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithParallel fires up to n components concurrently inside a tick.
// Values below 2 keep sequential firing.
func WithParallel(n int) Option {
	return func(e *Engine) {
		e.parallel = n
	}
}

// WithName labels the engine; the name is attached to every log record.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New validates the configuration and builds an engine for it.
// Malformed configurations are rejected with a *validator.AggregateError
// before any tick runs.
func New(cfg domain.Configuration, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("engine", eng.Name)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithClock(eng.clock),
		runtime.WithParallel(eng.parallel),
	}

	rt, err := runtime.NewEngine(cfg, runtimeOpts...)
	if err != nil {
		return nil, err
	}
	eng.runtime = rt

	return eng, nil
}

// Init creates the configuration state before the first tick and routes every
// start outbox so that it is visible at tick 1.
func (e *Engine) Init(starts ...domain.Start) (domain.ConfigurationState, error) {
	return e.runtime.Init(starts...)
}

// Step advances the configuration by one tick.
// On a fault the input state is returned unchanged together with the error.
func (e *Engine) Step(ctx context.Context, state domain.ConfigurationState) (domain.ConfigurationState, error) {
	return e.runtime.Step(ctx, state)
}

// Configuration returns the topology the engine runs.
func (e *Engine) Configuration() domain.Configuration {
	return e.runtime.Configuration()
}

// Logger returns the logger the engine writes to.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
