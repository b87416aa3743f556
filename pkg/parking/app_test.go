package parking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/lockstep"
	"github.com/aretw0/lockstep/internal/testutils"
	"github.com/aretw0/lockstep/pkg/adapters/memory"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/parking"
	"github.com/aretw0/lockstep/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monitor struct {
	mu     sync.Mutex
	events []domain.Event
}

func (m *monitor) handle(msg ports.Message) {
	ev, ok := parking.DecodeSignal(msg)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

func (m *monitor) last(kind domain.EventKind) (domain.Payload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.events) - 1; i >= 0; i-- {
		if m.events[i].Kind() == kind {
			return m.events[i].Payload(), true
		}
	}
	return nil, false
}

func TestApp_EndToEnd(t *testing.T) {
	ctx := context.Background()
	transport := memory.NewTransport()
	defer transport.Close()

	mon := &monitor{}
	for _, kind := range []domain.EventKind{parking.LedRedKind, parking.LedGreenKind, parking.DisplayKind} {
		require.NoError(t, transport.Subscribe(ctx, parking.SignalTopic+"/"+string(kind), mon.handle))
	}

	app, err := parking.NewApp(transport, 5)
	require.NoError(t, err)
	require.NoError(t, app.Subscribe(ctx))

	eng, err := lockstep.New(app.Configuration(), lockstep.WithClock(testutils.NewManualClock(time.Unix(0, 0))))
	require.NoError(t, err)
	state, err := eng.Init(app.Starts()...)
	require.NoError(t, err)

	step := func() {
		t.Helper()
		state, err = eng.Step(ctx, state)
		require.NoError(t, err)
	}

	step()
	display, ok := mon.last(parking.DisplayKind)
	require.True(t, ok)
	assert.Equal(t, parking.Display{FreeSpaces: 5}, display)

	require.NoError(t, transport.Publish(ctx, parking.ButtonTopic, []byte("BUTTON_UP_PRESSED")))
	require.NoError(t, transport.Publish(ctx, parking.ButtonTopic, []byte("garbage")))

	// Drain, barrier, management, publish.
	for range 4 {
		step()
	}

	display, _ = mon.last(parking.DisplayKind)
	assert.Equal(t, parking.Display{FreeSpaces: 4}, display)
	green, _ := mon.last(parking.LedGreenKind)
	assert.Equal(t, parking.LedGreen{On: true}, green)

	inst, _ := state.Instance(parking.BarrierName)
	assert.Equal(t, domain.ControlState(parking.CarEntry), inst.Control)
}

func TestNewApp_RejectsEmptyGarage(t *testing.T) {
	_, err := parking.NewApp(memory.NewTransport(), 0)
	assert.Error(t, err)
}

func TestConfiguration_Topology(t *testing.T) {
	app, err := parking.NewApp(memory.NewTransport(), parking.DefaultTotalSpaces)
	require.NoError(t, err)

	_, err = lockstep.New(app.Configuration())
	require.NoError(t, err)

	cfg := app.Configuration()
	names := make([]string, 0, len(cfg.Components))
	for _, c := range cfg.Components {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"barrier", "parkingManagement", "barrierController", "signalController"}, names)
	assert.Len(t, cfg.Connections, 3)
}
