package mqtt

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lockstep/pkg/ports"
)

func TestClientOptions(t *testing.T) {
	tr := &Transport{}

	opts := tr.clientOptions(Config{
		URL:      "tcp://broker.local:1883",
		Username: "sorrir",
		Password: "secret",
		ClientID: "garage-1",
	})

	require.Len(t, opts.Servers, 1)
	assert.Equal(t, "broker.local:1883", opts.Servers[0].Host)
	assert.Equal(t, "garage-1", opts.ClientID)
	assert.Equal(t, "sorrir", opts.Username)
	assert.Equal(t, "secret", opts.Password)
	assert.True(t, opts.AutoReconnect)
	assert.True(t, opts.CleanSession)
}

func TestClientOptions_GeneratedClientID(t *testing.T) {
	tr := &Transport{}

	a := tr.clientOptions(Config{URL: "tcp://localhost:1883"})
	b := tr.clientOptions(Config{URL: "tcp://localhost:1883"})

	assert.True(t, strings.HasPrefix(a.ClientID, "lockstep-"))
	assert.NotEqual(t, a.ClientID, b.ClientID)
	assert.Empty(t, a.Username)
}

func TestDial_RequiresURL(t *testing.T) {
	_, err := Dial(context.Background(), Config{})
	assert.Error(t, err)
}

func TestDial_UnreachableBroker(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := Dial(ctx, Config{URL: "tcp://127.0.0.1:1", ConnectTimeout: time.Second})
	assert.Error(t, err)
}

// token completes immediately with err, or never when pending is set.
type token struct {
	done    chan struct{}
	err     error
	pending bool
}

func newToken(err error, pending bool) *token {
	tk := &token{done: make(chan struct{}), err: err, pending: pending}
	if !pending {
		close(tk.done)
	}
	return tk
}

func (tk *token) Wait() bool                     { <-tk.done; return true }
func (tk *token) WaitTimeout(time.Duration) bool { return !tk.pending }
func (tk *token) Done() <-chan struct{}          { return tk.done }
func (tk *token) Error() error                   { return tk.err }

type fakeClient struct {
	paho.Client

	connect     *token
	subscribe   *token
	disconnects atomic.Int32
	quiesce     atomic.Uint32
}

func (c *fakeClient) Connect() paho.Token { return c.connect }

func (c *fakeClient) Subscribe(string, byte, paho.MessageHandler) paho.Token { return c.subscribe }

func (c *fakeClient) Disconnect(quiesce uint) {
	c.disconnects.Add(1)
	c.quiesce.Store(uint32(quiesce))
}

func useClient(t *testing.T, c *fakeClient) {
	t.Helper()
	prev := newClient
	newClient = func(*paho.ClientOptions) paho.Client { return c }
	t.Cleanup(func() { newClient = prev })
}

func TestDial_FailedConnectDisconnects(t *testing.T) {
	t.Run("refused", func(t *testing.T) {
		c := &fakeClient{connect: newToken(errors.New("connection refused"), false)}
		useClient(t, c)

		_, err := Dial(context.Background(), Config{URL: "tcp://broker.local:1883"})
		assert.ErrorContains(t, err, "connection refused")
		assert.Equal(t, int32(1), c.disconnects.Load())
		assert.Zero(t, c.quiesce.Load())
	})

	t.Run("timeout", func(t *testing.T) {
		c := &fakeClient{connect: newToken(nil, true)}
		useClient(t, c)

		_, err := Dial(context.Background(), Config{URL: "tcp://broker.local:1883", ConnectTimeout: 20 * time.Millisecond})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, int32(1), c.disconnects.Load())
	})
}

func TestSubscribe_FailureForgetsTopic(t *testing.T) {
	c := &fakeClient{connect: newToken(nil, false)}
	useClient(t, c)

	tr, err := Dial(context.Background(), Config{URL: "tcp://broker.local:1883"})
	require.NoError(t, err)

	c.subscribe = newToken(errors.New("not authorized"), false)
	err = tr.Subscribe(context.Background(), "garage/denied", func(ports.Message) {})
	assert.ErrorContains(t, err, "not authorized")

	c.subscribe = newToken(nil, false)
	require.NoError(t, tr.Subscribe(context.Background(), "garage/ok", func(ports.Message) {}))

	tr.mu.Lock()
	defer tr.mu.Unlock()
	assert.NotContains(t, tr.subs, "garage/denied")
	assert.Contains(t, tr.subs, "garage/ok")
	assert.Zero(t, c.disconnects.Load())
}
