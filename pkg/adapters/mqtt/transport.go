// Package mqtt implements ports.Transport over an MQTT broker using the Eclipse Paho client.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/aretw0/lockstep/pkg/ports"
)

// Config holds the broker connection parameters.
type Config struct {
	URL      string
	Username string
	Password string

	// ClientID defaults to "lockstep-" followed by a random suffix.
	ClientID string

	// QoS used for subscriptions and publications. Defaults to 0.
	QoS byte

	// ConnectTimeout bounds Dial. Defaults to 10s.
	ConnectTimeout time.Duration
}

// newClient is replaced in tests.
var newClient = paho.NewClient

// Transport implements ports.Transport on top of a Paho client.
// Subscriptions are restored automatically after a reconnect.
type Transport struct {
	client paho.Client
	qos    byte

	mu     sync.Mutex
	subs   map[string]paho.MessageHandler
	closed bool
}

// Dial connects to the broker and blocks until the connection is established,
// the timeout elapses or ctx is canceled.
func Dial(ctx context.Context, cfg Config) (*Transport, error) {
	if cfg.URL == "" {
		return nil, errors.New("mqtt: broker url is required")
	}

	t := &Transport{
		qos:  cfg.QoS,
		subs: make(map[string]paho.MessageHandler),
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	t.client = newClient(t.clientOptions(cfg))

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := wait(ctx, t.client.Connect()); err != nil {
		// Stops a connect attempt still running in the background.
		t.client.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.URL, err)
	}
	return t, nil
}

func (t *Transport) clientOptions(cfg Config) *paho.ClientOptions {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "lockstep-" + uuid.NewString()[:8]
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetCleanSession(true).
		SetOrderMatters(true).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetOnConnectHandler(t.resubscribe)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	return opts
}

// resubscribe restores subscriptions lost with a clean session.
func (t *Transport) resubscribe(c paho.Client) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for topic, h := range t.subs {
		c.Subscribe(topic, t.qos, h)
	}
}

// Subscribe registers handler for topic and waits for the broker acknowledgement.
func (t *Transport) Subscribe(ctx context.Context, topic string, handler ports.MessageHandler) error {
	h := func(_ paho.Client, m paho.Message) {
		handler(ports.Message{Topic: m.Topic(), Payload: append([]byte(nil), m.Payload()...)})
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ports.ErrTransportClosed
	}
	t.subs[topic] = h
	t.mu.Unlock()

	if err := wait(ctx, t.client.Subscribe(topic, t.qos, h)); err != nil {
		t.mu.Lock()
		delete(t.subs, topic)
		t.mu.Unlock()
		return fmt.Errorf("mqtt subscribe %q: %w", topic, err)
	}
	return nil
}

// Publish sends payload to topic without the retain flag.
func (t *Transport) Publish(ctx context.Context, topic string, payload []byte) error {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return ports.ErrTransportClosed
	}

	if err := wait(ctx, t.client.Publish(topic, t.qos, false, payload)); err != nil {
		return fmt.Errorf("mqtt publish %q: %w", topic, err)
	}
	return nil
}

// Close disconnects after giving in-flight work 250ms to complete.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.client.Disconnect(250)
	return nil
}

func wait(ctx context.Context, token paho.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}
