package parking_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/lockstep"
	"github.com/aretw0/lockstep/internal/testutils"
	"github.com/aretw0/lockstep/pkg/bridge"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/dsl"
	"github.com/aretw0/lockstep/pkg/parking"
	"github.com/aretw0/lockstep/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(in *bridge.Inbound, kind domain.EventKind) {
	in.Enqueue(ports.Message{Topic: parking.ButtonTopic, Payload: []byte(kind)})
}

func TestBarrier_Cooldown(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := testutils.NewManualClock(t0)
	rec := &testutils.Recorder{}

	buttons := bridge.NewInbound(parking.BarrierControllerName, parking.ToBarrier, parking.DecodeButton)
	barrier := parking.NewBarrier()

	eng, err := lockstep.New(domain.Configuration{
		Components: []domain.Component{buttons.Component(), barrier.Build()},
		Connections: []domain.Connection{
			domain.Connect(parking.BarrierControllerName, parking.ToBarrier, parking.BarrierName, parking.FromBarrierController),
		},
	}, lockstep.WithClock(clock), lockstep.WithLifecycleHooks(rec.Hooks()))
	require.NoError(t, err)

	state, err := eng.Init(barrier.Start(parking.Idle, parking.BarrierData{}))
	require.NoError(t, err)

	ctx := context.Background()
	step := func() domain.InstanceState {
		t.Helper()
		state, err = eng.Step(ctx, state)
		require.NoError(t, err)
		inst, _ := state.Instance(parking.BarrierName)
		return inst
	}

	press(buttons, parking.ButtonUpPressed)
	assert.Equal(t, domain.ControlState(parking.Idle), step().Control, "tick 1 only drains the button")

	inst := step()
	assert.Equal(t, domain.ControlState(parking.CarEntry), inst.Control)
	assert.True(t, dsl.Data[parking.BarrierData](inst).LastAction.Equal(t0))
	require.Len(t, rec.Transitions, 1)
	assert.Equal(t, domain.EventKind(parking.CarIn), rec.Transitions[0].Emitted[0].Kind())

	press(buttons, parking.ButtonDownPressed)
	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, domain.ControlState(parking.CarEntry), step().Control, "still cooling down")

	clock.Advance(time.Millisecond)
	assert.Equal(t, domain.ControlState(parking.Idle), step().Control)

	// The second press reached the barrier while it was cooling down.
	require.Len(t, rec.Drops, 1)
	assert.Equal(t, parking.BarrierName, rec.Drops[0].Component)
	assert.Equal(t, domain.DropUnmatched, rec.Drops[0].Reason)
	assert.Equal(t, domain.EventKind(parking.ButtonDownPressed), rec.Drops[0].Event.Kind())
}

func TestBarrier_DownEmitsCarOut(t *testing.T) {
	rule := parking.NewBarrier().Build().Rules[0]

	var emitted []domain.Event
	now := time.Unix(42, 0)
	next, err := rule.Action(domain.Env{Now: now}, parking.BarrierData{}, func(ev domain.Event) {
		emitted = append(emitted, ev)
	}, nil)
	require.NoError(t, err)

	require.Len(t, emitted, 1)
	assert.Equal(t, domain.EventKind(parking.CarOut), emitted[0].Kind())
	assert.Equal(t, parking.ToParkingManagement, emitted[0].Port())
	assert.Equal(t, parking.BarrierData{LastAction: now}, next)
}
