package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/lockstep/internal/validator"
	"github.com/aretw0/lockstep/pkg/domain"
	"golang.org/x/sync/errgroup"
)

type portKey struct {
	component string
	port      domain.PortID
}

// Engine advances a configuration state one tick at a time.
// It holds only the immutable topology; all mutable state is passed in and out.
type Engine struct {
	cfg      domain.Configuration
	outgoing map[portKey][]domain.Connection
	clock    domain.Clock
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	parallel int
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock sets the time source sampled once per tick.
func WithClock(clock domain.Clock) EngineOption {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithParallel fires up to n components concurrently within a tick.
// Results are still assembled in declaration order before routing.
func WithParallel(n int) EngineOption {
	return func(e *Engine) {
		e.parallel = n
	}
}

// NewEngine validates the configuration and creates an engine for it.
func NewEngine(cfg domain.Configuration, opts ...EngineOption) (*Engine, error) {
	if err := validator.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		outgoing: make(map[portKey][]domain.Connection),
		clock:    domain.SystemClock{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, conn := range cfg.Connections {
		k := portKey{component: conn.From, port: conn.FromPort}
		e.outgoing[k] = append(e.outgoing[k], conn)
	}

	return e, nil
}

// Configuration returns the topology the engine runs.
func (e *Engine) Configuration() domain.Configuration {
	return e.cfg
}

// Init creates the state before the first tick.
// Start outboxes are routed so that they are visible at tick 1.
// Adapter components without a start begin in domain.ReadyState.
func (e *Engine) Init(starts ...domain.Start) (domain.ConfigurationState, error) {
	if err := validator.ValidateStarts(e.cfg, starts); err != nil {
		return domain.ConfigurationState{}, fmt.Errorf("invalid start states: %w", err)
	}

	byName := make(map[string]domain.Start, len(starts))
	for _, s := range starts {
		byName[s.Component] = s
	}

	state := domain.ConfigurationState{Instances: make(map[string]domain.InstanceState, len(e.cfg.Components))}
	for _, comp := range e.cfg.Components {
		s, ok := byName[comp.Name]
		inst := domain.InstanceState{Control: s.Control, Data: s.Data}
		if !ok || comp.IsAdapter() {
			inst.Control = domain.ReadyState
		}
		state.Instances[comp.Name] = inst
	}

	for _, comp := range e.cfg.Components {
		e.route(state, comp.Name, byName[comp.Name].Outbox)
	}

	return state, nil
}

// Step advances the state by exactly one tick.
// The input state is never modified. If any component faults, the input state
// is returned unchanged together with the error and nothing is committed.
func (e *Engine) Step(ctx context.Context, state domain.ConfigurationState) (domain.ConfigurationState, error) {
	started := time.Now()
	env := domain.Env{Tick: state.Tick + 1, Now: e.clock.Now()}

	for _, comp := range e.cfg.Components {
		if _, ok := state.Instances[comp.Name]; !ok {
			return state, fmt.Errorf("component '%s': %w", comp.Name, domain.ErrMissingStart)
		}
	}

	outcomes, err := e.fireAll(env, state)
	if err != nil {
		e.logger.Warn("tick aborted", "tick", env.Tick, "error", err)
		if e.hooks.OnFault != nil {
			e.hooks.OnFault(ctx, &domain.FaultEvent{Tick: env.Tick, Err: err})
		}
		return state, err
	}

	next := domain.ConfigurationState{
		Tick:      env.Tick,
		Instances: make(map[string]domain.InstanceState, len(e.cfg.Components)),
	}
	for i, comp := range e.cfg.Components {
		next.Instances[comp.Name] = outcomes[i].next
	}

	summary := domain.TickEvent{Tick: env.Tick, Now: env.Now}
	for i, comp := range e.cfg.Components {
		summary.Emitted += len(outcomes[i].emitted)
		summary.Routed += e.route(next, comp.Name, outcomes[i].emitted)
	}

	// Commit phase: side effects and reporting only happen for a complete tick.
	// Sources consume what they drained here, so an aborted tick sees the same
	// input again on retry.
	for i, comp := range e.cfg.Components {
		out := outcomes[i]
		if comp.Source != nil {
			comp.Source.Commit(ctx, env)
		}
		if comp.Sink != nil && len(out.deliver) > 0 {
			comp.Sink.Deliver(ctx, env, out.deliver)
			summary.Delivered += len(out.deliver)
		}
		if out.fired() {
			summary.Fired++
		}
		summary.Dropped += len(out.dropped)
		e.report(ctx, env, comp.Name, state.Instances[comp.Name], out)
	}

	summary.Duration = time.Since(started)
	if e.hooks.OnTick != nil {
		e.hooks.OnTick(ctx, &summary)
	}

	return next, nil
}

// fireAll evaluates every component, sequentially or with bounded parallelism.
// Faults are collected in declaration order.
func (e *Engine) fireAll(env domain.Env, state domain.ConfigurationState) ([]outcome, error) {
	n := len(e.cfg.Components)
	outcomes := make([]outcome, n)
	faults := make([]error, n)

	if e.parallel > 1 {
		var g errgroup.Group
		g.SetLimit(e.parallel)
		for i := range e.cfg.Components {
			g.Go(func() error {
				outcomes[i], faults[i] = e.fireOne(env, i, state)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range e.cfg.Components {
			outcomes[i], faults[i] = e.fireOne(env, i, state)
		}
	}

	var errs []error
	for _, err := range faults {
		if err != nil {
			errs = append(errs, err)
		}
	}
	switch len(errs) {
	case 0:
		return outcomes, nil
	case 1:
		return nil, errs[0]
	default:
		return nil, errors.Join(errs...)
	}
}

func (e *Engine) fireOne(env domain.Env, i int, state domain.ConfigurationState) (out outcome, err error) {
	comp := e.cfg.Components[i]
	inst := state.Instances[comp.Name]

	defer func() {
		if r := recover(); r != nil {
			err = &ActionFaultError{
				Component: comp.Name,
				From:      inst.Control,
				To:        inst.Control,
				Tick:      env.Tick,
				Err:       &PanicError{Value: r},
			}
		}
	}()

	return fire(env, comp, inst)
}

// report emits lifecycle hooks and debug logs for one committed outcome.
func (e *Engine) report(ctx context.Context, env domain.Env, name string, prev domain.InstanceState, out outcome) {
	if out.fired() {
		e.logger.Debug("rule fired",
			"tick", env.Tick,
			"component", name,
			"from", prev.Control,
			"to", out.next.Control,
			"emitted", len(out.emitted),
		)
		if e.hooks.OnTransition != nil {
			e.hooks.OnTransition(ctx, &domain.TransitionEvent{
				Tick:      env.Tick,
				Component: name,
				From:      prev.Control,
				To:        out.next.Control,
				Trigger:   out.trigger,
				Emitted:   out.emitted,
			})
		}
	}

	for _, ev := range out.dropped {
		e.logger.Debug("event dropped", "tick", env.Tick, "component", name, "event", ev.String())
		if e.hooks.OnDrop != nil {
			dropped := ev
			e.hooks.OnDrop(ctx, &domain.DropEvent{
				Tick:      env.Tick,
				Component: name,
				Reason:    domain.DropUnmatched,
				Event:     &dropped,
			})
		}
	}
}
