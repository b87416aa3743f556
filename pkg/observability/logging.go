package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/lockstep/pkg/domain"
)

// Logging returns lifecycle hooks that write structured records to logger.
// Transitions are logged at Info, ticks at Debug, drops at Warn and faults at Error.
func Logging(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(ctx context.Context, e *domain.TickEvent) {
			logger.DebugContext(ctx, "tick",
				"tick", e.Tick,
				"fired", e.Fired,
				"emitted", e.Emitted,
				"routed", e.Routed,
				"delivered", e.Delivered,
				"dropped", e.Dropped,
				"duration", e.Duration,
			)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			attrs := []any{
				"tick", e.Tick,
				"component", e.Component,
				"from", e.From,
				"to", e.To,
			}
			if e.Trigger != nil {
				attrs = append(attrs, "trigger", e.Trigger.String())
			}
			if len(e.Emitted) > 0 {
				attrs = append(attrs, "emitted", len(e.Emitted))
			}
			logger.InfoContext(ctx, "transition", attrs...)
		},
		OnDrop: LogDrop(logger),
		OnFault: func(ctx context.Context, e *domain.FaultEvent) {
			logger.ErrorContext(ctx, "tick aborted", "tick", e.Tick, "error", e.Err)
		},
	}
}

// LogDrop returns a drop hook for adapters that are not driven by lifecycle hooks.
func LogDrop(logger *slog.Logger) func(context.Context, *domain.DropEvent) {
	return func(ctx context.Context, e *domain.DropEvent) {
		attrs := []any{"tick", e.Tick, "component", e.Component, "reason", e.Reason}
		if e.Event != nil {
			attrs = append(attrs, "event", e.Event.String())
		}
		if e.Detail != "" {
			attrs = append(attrs, "detail", e.Detail)
		}
		logger.WarnContext(ctx, "event dropped", attrs...)
	}
}
