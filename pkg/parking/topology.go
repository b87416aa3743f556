package parking

import (
	"context"
	"fmt"

	"github.com/aretw0/lockstep/pkg/bridge"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ports"
)

// Component names.
const (
	BarrierControllerName = "barrierController"
	BarrierName           = "barrier"
	ManagementName        = "parkingManagement"
	SignalControllerName  = "signalController"
)

// Adapter ports.
const (
	ToBarrier             domain.PortID = "TO_BARRIER"
	FromParkingManagement domain.PortID = "FROM_PARKING_MANAGEMENT"
)

// DefaultTotalSpaces is the capacity of the garage when none is configured.
const DefaultTotalSpaces = 5

// Configuration wires the garage: buttons feed the barrier, the barrier feeds
// the management and the management feeds the signal publisher.
func Configuration(inbound, outbound domain.Component) domain.Configuration {
	return domain.Configuration{
		Components: []domain.Component{
			NewBarrier().Build(),
			NewManagement().Build(),
			inbound,
			outbound,
		},
		Connections: []domain.Connection{
			domain.Connect(inbound.Name, ToBarrier, BarrierName, FromBarrierController),
			domain.Connect(BarrierName, ToParkingManagement, ManagementName, FromBarrier),
			domain.Connect(ManagementName, ToSignalController, outbound.Name, FromParkingManagement),
		},
	}
}

// Starts returns the start states of the two state machines.
func Starts(totalSpaces int) []domain.Start {
	return []domain.Start{
		NewBarrier().Start(Idle, BarrierData{}),
		ManagementStart(totalSpaces),
	}
}

// App bundles the garage configuration with its transport bridges.
type App struct {
	Inbound     *bridge.Inbound
	Outbound    *bridge.Outbound
	TotalSpaces int

	transport ports.Transport
}

// NewApp creates the bridges for transport. Bridge options apply to both sides.
func NewApp(transport ports.Transport, totalSpaces int, opts ...bridge.Option) (*App, error) {
	if totalSpaces < 1 {
		return nil, fmt.Errorf("total spaces must be at least 1, got %d", totalSpaces)
	}
	return &App{
		Inbound:     bridge.NewInbound(BarrierControllerName, ToBarrier, DecodeButton, opts...),
		Outbound:    bridge.NewOutbound(SignalControllerName, FromParkingManagement, transport, SignalTopic, EncodeSignal, opts...),
		TotalSpaces: totalSpaces,
		transport:   transport,
	}, nil
}

// Configuration returns the topology using the app's bridges.
func (a *App) Configuration() domain.Configuration {
	return Configuration(a.Inbound.Component(), a.Outbound.Component())
}

// Starts returns the start states for the app's capacity.
func (a *App) Starts() []domain.Start {
	return Starts(a.TotalSpaces)
}

// Subscribe starts listening for button presses.
func (a *App) Subscribe(ctx context.Context) error {
	return a.Inbound.Subscribe(ctx, a.transport, ButtonTopic)
}
