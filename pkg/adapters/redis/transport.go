package redis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/lockstep/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Transport implements ports.Transport over Redis Pub/Sub.
// Each Subscribe call owns one Pub/Sub connection and one delivery goroutine,
// so messages of a topic are handed over in publish order.
type Transport struct {
	client     *backend.Client
	prefix     string
	ownsClient bool

	mu     sync.Mutex
	subs   []*backend.PubSub
	closed bool
	wg     sync.WaitGroup
}

// Option configures the Transport.
type Option func(*Transport)

// WithPrefix namespaces every channel, e.g. "lockstep:".
func WithPrefix(prefix string) Option {
	return func(t *Transport) {
		t.prefix = prefix
	}
}

// New connects to the Redis server at addr. The client is closed with the transport.
func New(addr string, opts ...Option) *Transport {
	t := NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
	t.ownsClient = true
	return t
}

// NewFromClient wraps an existing client. Close leaves the client open.
func NewFromClient(client *backend.Client, opts ...Option) *Transport {
	t := &Transport{client: client}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ping checks that the server is reachable.
func (t *Transport) Ping(ctx context.Context) error {
	if err := t.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Subscribe waits for the server to confirm the subscription before returning.
func (t *Transport) Subscribe(ctx context.Context, topic string, handler ports.MessageHandler) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ports.ErrTransportClosed
	}
	t.mu.Unlock()

	ps := t.client.Subscribe(ctx, t.prefix+topic)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return fmt.Errorf("redis subscribe %q: %w", topic, err)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		_ = ps.Close()
		return ports.ErrTransportClosed
	}
	t.subs = append(t.subs, ps)
	t.wg.Add(1)
	t.mu.Unlock()

	ch := ps.Channel()
	go func() {
		defer t.wg.Done()
		for msg := range ch {
			handler(ports.Message{
				Topic:   strings.TrimPrefix(msg.Channel, t.prefix),
				Payload: []byte(msg.Payload),
			})
		}
	}()

	return nil
}

// Publish sends payload to the channel for topic.
func (t *Transport) Publish(ctx context.Context, topic string, payload []byte) error {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return ports.ErrTransportClosed
	}

	if err := t.client.Publish(ctx, t.prefix+topic, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %q: %w", topic, err)
	}
	return nil
}

// Close unsubscribes everything and waits for the delivery goroutines to exit.
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	subs := t.subs
	t.subs = nil
	t.mu.Unlock()

	var firstErr error
	for _, ps := range subs {
		if err := ps.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	t.wg.Wait()

	if t.ownsClient {
		if err := t.client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
