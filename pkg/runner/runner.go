package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/lockstep/pkg/domain"
)

// ErrNoEngine is returned when the runner was built without WithEngine.
var ErrNoEngine = errors.New("runner has no engine")

// Engine is the part of lockstep.Engine the runner depends on.
type Engine interface {
	Init(starts ...domain.Start) (domain.ConfigurationState, error)
	Step(ctx context.Context, state domain.ConfigurationState) (domain.ConfigurationState, error)
}

// Runner drives an engine on a fixed interval.
type Runner struct {
	// Logger is used for lifecycle logging. If nil, a no-op logger is used.
	Logger *slog.Logger

	// Interval is the time between two ticks.
	Interval time.Duration

	engine    Engine
	starts    []domain.Start
	onOverrun OverrunFunc
	maxTicks  uint64
	runID     string

	// mu serialises Init and Tick; readers use the snapshot.
	mu       sync.Mutex
	snapshot atomic.Pointer[domain.ConfigurationState]
}

// NewRunner creates a runner. Without options it has no engine and Run fails.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}
	r.Logger = r.Logger.With("run_id", r.runID)

	return r
}

// RunID identifies this runner in logs.
func (r *Runner) RunID() string {
	return r.runID
}

// Snapshot returns the last committed state. It is safe for concurrent use.
func (r *Runner) Snapshot() (domain.ConfigurationState, bool) {
	s := r.snapshot.Load()
	if s == nil {
		return domain.ConfigurationState{}, false
	}
	return *s, true
}

// Init creates the initial state. It is a no-op once a state exists.
func (r *Runner) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initLocked()
}

func (r *Runner) initLocked() error {
	if r.snapshot.Load() != nil {
		return nil
	}
	if r.engine == nil {
		return ErrNoEngine
	}

	state, err := r.engine.Init(r.starts...)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	r.publish(state)
	return nil
}

// Tick advances the engine exactly once and publishes the new state.
// On error the published state is left untouched.
func (r *Runner) Tick(ctx context.Context) (domain.ConfigurationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.initLocked(); err != nil {
		return domain.ConfigurationState{}, err
	}

	current := *r.snapshot.Load()
	next, err := r.engine.Step(ctx, current)
	if err != nil {
		return current, fmt.Errorf("tick %d: %w", current.Tick+1, err)
	}
	r.publish(next)
	return next, nil
}

// publish stores a private copy so that readers never share inbox storage with
// the state the next tick is computed from.
func (r *Runner) publish(state domain.ConfigurationState) {
	s := state.Clone()
	r.snapshot.Store(&s)
}

// Run ticks every Interval until ctx is canceled, a tick faults or the
// configured tick limit is reached. Cancellation is not an error.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.Init(); err != nil {
		return err
	}

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	r.Logger.Info("runner started", "interval", r.Interval)

	for {
		select {
		case <-ctx.Done():
			state, _ := r.Snapshot()
			r.Logger.Info("runner stopped", "tick", state.Tick)
			return nil
		case <-ticker.C:
		}

		started := time.Now()
		state, err := r.Tick(ctx)
		if err != nil {
			r.Logger.Error("runner halted", "error", err)
			return err
		}

		if took := time.Since(started); took > r.Interval {
			r.Logger.Warn("tick overrun", "tick", state.Tick, "took", took, "interval", r.Interval)
			if r.onOverrun != nil {
				r.onOverrun(state.Tick, took)
			}
		}

		if r.maxTicks > 0 && state.Tick >= r.maxTicks {
			r.Logger.Info("runner finished", "tick", state.Tick)
			return nil
		}
	}
}
