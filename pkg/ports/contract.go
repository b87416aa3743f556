package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTransportContract runs a suite of tests to verify that a Transport implementation
// adheres to the defined interface contract. The transport is not closed by the suite.
func RunTransportContract(t *testing.T, transport Transport) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405.000000")

	collect := func(t *testing.T, topic string) *inbox {
		box := &inbox{}
		err := transport.Subscribe(ctx, topic, box.add)
		require.NoError(t, err, "Subscribe should not return error")
		return box
	}

	t.Run("Publish and Receive", func(t *testing.T) {
		topic := prefix + "/basic"
		box := collect(t, topic)

		require.NoError(t, transport.Publish(ctx, topic, []byte("hello")))

		require.Eventually(t, func() bool { return box.count() == 1 }, 2*time.Second, 10*time.Millisecond)
		msg := box.all()[0]
		assert.Equal(t, topic, msg.Topic)
		assert.Equal(t, []byte("hello"), msg.Payload)
	})

	t.Run("Order Preserved", func(t *testing.T) {
		topic := prefix + "/ordered"
		box := collect(t, topic)

		for i := range 5 {
			require.NoError(t, transport.Publish(ctx, topic, fmt.Appendf(nil, "%d", i)))
		}

		require.Eventually(t, func() bool { return box.count() == 5 }, 2*time.Second, 10*time.Millisecond)
		for i, msg := range box.all() {
			assert.Equal(t, fmt.Sprintf("%d", i), string(msg.Payload))
		}
	})

	t.Run("Topic Isolation", func(t *testing.T) {
		wanted := prefix + "/wanted"
		other := prefix + "/other"
		box := collect(t, wanted)

		require.NoError(t, transport.Publish(ctx, other, []byte("ignored")))
		require.NoError(t, transport.Publish(ctx, wanted, []byte("kept")))

		require.Eventually(t, func() bool { return box.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
		// Give a misrouted message the same chance to arrive.
		time.Sleep(50 * time.Millisecond)
		msgs := box.all()
		require.Len(t, msgs, 1)
		assert.Equal(t, "kept", string(msgs[0].Payload))
	})

	t.Run("Publish Without Subscribers", func(t *testing.T) {
		assert.NoError(t, transport.Publish(ctx, prefix+"/nobody", []byte("lost")))
	})
}

type inbox struct {
	mu   sync.Mutex
	msgs []Message
}

func (b *inbox) add(m Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, m)
}

func (b *inbox) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.msgs)
}

func (b *inbox) all() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Message(nil), b.msgs...)
}
