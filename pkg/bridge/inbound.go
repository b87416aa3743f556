package bridge

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ports"
)

// Decoder turns a raw message into an event. Returning false drops the message.
// The port of the returned event is ignored; events leave on the bridge's port.
type Decoder func(ports.Message) (domain.Event, bool)

// Inbound is a source adapter component fed by a transport.
// Messages stay queued until the tick that drained them commits.
type Inbound struct {
	name   string
	port   domain.PortID
	decode Decoder
	cfg    settings

	mu    sync.Mutex
	queue []ports.Message

	// drained is the queue prefix seen by the last Drain; rejected holds the
	// undecodable drops found in it, reported on Commit.
	drained  int
	rejected []domain.DropEvent

	// lastTick labels overflow drops, which happen between ticks.
	lastTick atomic.Uint64
}

// NewInbound creates an inbound bridge emitting on port.
func NewInbound(name string, port domain.PortID, decode Decoder, opts ...Option) *Inbound {
	return &Inbound{
		name:   name,
		port:   port,
		decode: decode,
		cfg:    newSettings(opts),
	}
}

// Component returns the blueprint to place in a configuration.
func (b *Inbound) Component() domain.Component {
	return domain.Component{
		Name:   b.name,
		Ports:  []domain.Port{{ID: b.port, Direction: domain.Out}},
		Source: b,
	}
}

// Subscribe feeds the bridge from the given topics.
func (b *Inbound) Subscribe(ctx context.Context, transport ports.Transport, topics ...string) error {
	for _, topic := range topics {
		if err := transport.Subscribe(ctx, topic, b.Enqueue); err != nil {
			return fmt.Errorf("bridge %s: %w", b.name, err)
		}
	}
	return nil
}

// Enqueue buffers a message until the next tick.
// When the queue is full the newest message is dropped.
func (b *Inbound) Enqueue(msg ports.Message) {
	b.mu.Lock()
	if len(b.queue) >= b.cfg.queueSize {
		b.mu.Unlock()
		b.cfg.drop(context.Background(), &domain.DropEvent{
			Tick:      b.lastTick.Load(),
			Component: b.name,
			Reason:    domain.DropQueueFull,
			Detail:    msg.Topic,
		})
		return
	}
	b.queue = append(b.queue, msg)
	b.mu.Unlock()
}

// Pending returns the number of buffered messages.
func (b *Inbound) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Drain decodes the queued messages in arrival order without consuming them.
// Messages arriving afterwards are left for the next tick.
func (b *Inbound) Drain(env domain.Env) []domain.Event {
	b.mu.Lock()
	queue := append([]ports.Message(nil), b.queue...)
	b.mu.Unlock()

	var (
		events   []domain.Event
		rejected []domain.DropEvent
	)
	for _, msg := range queue {
		ev, ok := b.decode(msg)
		if !ok {
			rejected = append(rejected, domain.DropEvent{
				Tick:      env.Tick,
				Component: b.name,
				Reason:    domain.DropUndecodable,
				Detail:    fmt.Sprintf("%s: %q", msg.Topic, msg.Payload),
			})
			continue
		}
		events = append(events, ev.OnPort(b.port))
	}

	b.mu.Lock()
	b.drained = len(queue)
	b.rejected = rejected
	b.mu.Unlock()

	return events
}

// Commit consumes the messages returned by the last Drain and reports the
// ones that could not be decoded.
func (b *Inbound) Commit(ctx context.Context, env domain.Env) {
	b.lastTick.Store(env.Tick)

	b.mu.Lock()
	n := min(b.drained, len(b.queue))
	b.queue = append([]ports.Message(nil), b.queue[n:]...)
	rejected := b.rejected
	b.drained, b.rejected = 0, nil
	b.mu.Unlock()

	for i := range rejected {
		b.cfg.drop(ctx, &rejected[i])
	}
}
