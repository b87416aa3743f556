package bridge

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/lockstep/pkg/domain"
)

// DropHook receives every message or event a bridge discards.
type DropHook func(context.Context, *domain.DropEvent)

// DefaultQueueSize is the inbound queue capacity when none is configured.
const DefaultQueueSize = 256

type settings struct {
	onDrop    DropHook
	logger    *slog.Logger
	queueSize int
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		queueSize: DefaultQueueSize,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) drop(ctx context.Context, ev *domain.DropEvent) {
	s.logger.Debug("bridge drop", "component", ev.Component, "reason", ev.Reason, "detail", ev.Detail)
	if s.onDrop != nil {
		s.onDrop(ctx, ev)
	}
}

// Option configures an Inbound or Outbound bridge.
type Option func(*settings)

// WithDropHook registers the hook called for every discarded message or event.
func WithDropHook(hook DropHook) Option {
	return func(s *settings) {
		s.onDrop = hook
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithQueueSize bounds the inbound queue. Ignored by Outbound.
func WithQueueSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.queueSize = n
		}
	}
}
