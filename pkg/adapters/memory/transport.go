package memory

import (
	"context"
	"sync"

	"github.com/aretw0/lockstep/pkg/ports"
)

// Transport implements ports.Transport as an in-process bus.
// Publish delivers synchronously to every handler subscribed to the exact topic,
// in subscription order. Safe for concurrent use.
type Transport struct {
	mu       sync.RWMutex
	handlers map[string][]ports.MessageHandler
	closed   bool
}

// NewTransport creates an empty in-memory bus.
func NewTransport() *Transport {
	return &Transport{
		handlers: make(map[string][]ports.MessageHandler),
	}
}

// Subscribe registers handler for topic.
func (t *Transport) Subscribe(ctx context.Context, topic string, handler ports.MessageHandler) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ports.ErrTransportClosed
	}
	t.handlers[topic] = append(t.handlers[topic], handler)
	return nil
}

// Publish hands a private copy of payload to every subscriber of topic.
func (t *Transport) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.RLock()
	if t.closed {
		t.mu.RUnlock()
		return ports.ErrTransportClosed
	}
	handlers := append([]ports.MessageHandler(nil), t.handlers[topic]...)
	t.mu.RUnlock()

	// Handlers run outside the lock so they may publish themselves.
	for _, h := range handlers {
		h(ports.Message{Topic: topic, Payload: append([]byte(nil), payload...)})
	}
	return nil
}

// Close drops every subscription.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.handlers = nil
	return nil
}
