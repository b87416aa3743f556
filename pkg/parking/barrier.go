package parking

import (
	"time"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/dsl"
)

// BarrierMode is the control state of the barrier.
type BarrierMode string

const (
	Idle     BarrierMode = "IDLE"
	CarEntry BarrierMode = "CAR_ENTRY"
)

// Barrier ports.
const (
	FromBarrierController domain.PortID = "FROM_BARRIER_CONTROLLER"
	ToParkingManagement   domain.PortID = "TO_PARKING_MANAGEMENT"
)

// BarrierCooldown is how long the barrier ignores buttons after a car passed.
const BarrierCooldown = 1000 * time.Millisecond

// BarrierData remembers when the barrier last opened.
type BarrierData struct {
	LastAction time.Time
}

// NewBarrier builds the barrier state machine.
func NewBarrier() *dsl.Machine[BarrierMode, BarrierData] {
	m := dsl.New[BarrierMode, BarrierData](BarrierName).
		Out(ToParkingManagement).
		In(FromBarrierController)

	m.From(Idle).On(ButtonDownPressed, FromBarrierController).
		Do(passCar(CarOut)).
		To(CarEntry).
		Label("car leaves")

	m.From(Idle).On(ButtonUpPressed, FromBarrierController).
		Do(passCar(CarIn)).
		To(CarEntry).
		Label("car enters")

	m.From(CarEntry).
		When(func(env domain.Env, d BarrierData) bool {
			return !env.Now.Before(d.LastAction.Add(BarrierCooldown))
		}).
		To(Idle).
		Label("cool-down elapsed")

	return m
}

func passCar(kind domain.EventKind) dsl.ActionFunc[BarrierData] {
	return func(env domain.Env, _ BarrierData, emit domain.Emit, _ *domain.Event) (BarrierData, error) {
		emit(domain.NewEvent(kind, ToParkingManagement))
		return BarrierData{LastAction: env.Now}, nil
	}
}
