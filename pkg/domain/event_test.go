package domain_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level struct {
	Value int `json:"value"`
}

func (level) Kind() domain.EventKind { return "LEVEL" }

func TestNewPayloadEvent_KindFollowsPayload(t *testing.T) {
	ev := domain.NewPayloadEvent("out", level{Value: 3})

	assert.Equal(t, domain.EventKind("LEVEL"), ev.Kind())
	assert.Equal(t, domain.PortID("out"), ev.Port())
	assert.Equal(t, level{Value: 3}, ev.Payload())
	assert.Panics(t, func() { domain.NewPayloadEvent("out", nil) })
}

func TestEvent_OnPortKeepsOriginal(t *testing.T) {
	ev := domain.NewEvent("PING", "out")
	moved := ev.OnPort("in")

	assert.Equal(t, domain.PortID("out"), ev.Port())
	assert.Equal(t, domain.PortID("in"), moved.Port())
	assert.True(t, moved.Matches(domain.Trigger{Kind: "PING", Port: "in"}))
	assert.False(t, ev.Matches(domain.Trigger{Kind: "PING", Port: "in"}))
}

func TestEvent_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(domain.NewPayloadEvent("out", level{Value: 7}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"LEVEL","port":"out","payload":{"value":7}}`, string(data))

	data, err = json.Marshal(domain.NewEvent("PING", "in"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"PING","port":"in"}`, string(data))
}

func TestConfigurationState_CloneIsolatesInboxes(t *testing.T) {
	state := domain.ConfigurationState{
		Tick: 4,
		Instances: map[string]domain.InstanceState{
			"a": {Control: "IDLE", Inbox: []domain.Event{domain.NewEvent("PING", "in")}},
		},
	}

	clone := state.Clone()
	a := clone.Instances["a"]
	a.Inbox[0] = domain.NewEvent("PONG", "in")
	a.Control = "BUSY"
	clone.Instances["a"] = a

	assert.Equal(t, domain.ControlState("IDLE"), state.Instances["a"].Control)
	assert.Equal(t, domain.EventKind("PING"), state.Instances["a"].Inbox[0].Kind())
	assert.Equal(t, uint64(4), clone.Tick)
}

func TestComponent_StatesAndPorts(t *testing.T) {
	comp := domain.Component{
		Name:  "m",
		Ports: []domain.Port{{ID: "in", Direction: domain.In}, {ID: "io", Direction: domain.InOut}},
		Rules: []domain.Rule{
			{From: "A", To: "B"},
			{From: "B", To: "A"},
			{From: "B", To: "C"},
		},
	}

	assert.Equal(t, []domain.ControlState{"A", "B", "C"}, comp.States())

	p, ok := comp.Port("io")
	require.True(t, ok)
	assert.True(t, p.Direction.CanSend())
	assert.True(t, p.Direction.CanReceive())

	_, ok = comp.Port("missing")
	assert.False(t, ok)
	assert.False(t, comp.IsAdapter())
}

func TestConfiguration_Outgoing(t *testing.T) {
	cfg := domain.Configuration{
		Connections: []domain.Connection{
			domain.Connect("a", "out", "b", "in"),
			domain.Connect("a", "other", "c", "in"),
			domain.Connect("a", "out", "d", "in"),
		},
	}

	out := cfg.Outgoing("a", "out")
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].To)
	assert.Equal(t, "d", out[1].To)
	assert.Equal(t, "a.out -> b.in", out[0].String())
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	first := domain.LifecycleHooks{
		OnTick: func(context.Context, *domain.TickEvent) { calls = append(calls, "first") },
	}
	second := domain.LifecycleHooks{
		OnTick: func(context.Context, *domain.TickEvent) { calls = append(calls, "second") },
		OnDrop: func(context.Context, *domain.DropEvent) { calls = append(calls, "drop") },
	}

	merged := first.Merge(second)
	merged.OnTick(context.Background(), &domain.TickEvent{})
	merged.OnDrop(context.Background(), &domain.DropEvent{})

	assert.Nil(t, merged.OnTransition)
	assert.Equal(t, []string{"first", "second", "drop"}, calls)
}
