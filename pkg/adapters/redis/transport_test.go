package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/lockstep/pkg/adapters/redis"
	"github.com/aretw0/lockstep/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisTransport_Contract(t *testing.T) {
	// Setup miniredis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	defer client.Close()

	transport := redis.NewFromClient(client)
	defer transport.Close()

	ports.RunTransportContract(t, transport)
}

func TestRedisTransport_Prefix(t *testing.T) {
	mr := miniredis.RunT(t)
	transport := redis.New(mr.Addr(), redis.WithPrefix("lockstep:"))
	defer transport.Close()

	ctx := context.Background()
	require.NoError(t, transport.Ping(ctx))

	got := make(chan ports.Message, 1)
	require.NoError(t, transport.Subscribe(ctx, "signals", func(m ports.Message) { got <- m }))

	// The raw channel carries the prefix; handlers see the bare topic.
	assert.Equal(t, 1, mr.Publish("lockstep:signals", "raw"))

	select {
	case m := <-got:
		assert.Equal(t, "signals", m.Topic)
		assert.Equal(t, "raw", string(m.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestRedisTransport_Close(t *testing.T) {
	mr := miniredis.RunT(t)
	transport := redis.New(mr.Addr())
	ctx := context.Background()

	require.NoError(t, transport.Subscribe(ctx, "t", func(ports.Message) {}))
	require.NoError(t, transport.Close())
	require.NoError(t, transport.Close())

	assert.ErrorIs(t, transport.Publish(ctx, "t", nil), ports.ErrTransportClosed)
	assert.ErrorIs(t, transport.Subscribe(ctx, "t", func(ports.Message) {}), ports.ErrTransportClosed)
}

func TestRedisTransport_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	transport := redis.New(addr)
	defer transport.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.Error(t, transport.Ping(ctx))
	assert.Error(t, transport.Publish(ctx, "t", []byte("x")))
}
