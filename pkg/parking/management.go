package parking

import (
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/dsl"
)

// ManagementMode is the control state of the parking management.
type ManagementMode string

const (
	Available ManagementMode = "AVAILABLE"
	Full      ManagementMode = "FULL"
)

// Parking management ports.
const (
	FromBarrier        domain.PortID = "FROM_BARRIER"
	ToSignalController domain.PortID = "TO_SIGNAL_CONTROLLER"
)

// Spaces is the free-space counter.
type Spaces struct {
	Free  int `json:"free"`
	Total int `json:"total"`
}

// NewManagement builds the parking management state machine.
func NewManagement() *dsl.Machine[ManagementMode, Spaces] {
	m := dsl.New[ManagementMode, Spaces](ManagementName).
		In(FromBarrier).
		Out(ToSignalController)

	m.From(Available).On(CarIn, FromBarrier).
		When(func(_ domain.Env, s Spaces) bool { return s.Free-1 > 0 }).
		Do(adjust(-1)).
		To(Available)

	m.From(Available).On(CarIn, FromBarrier).
		When(func(_ domain.Env, s Spaces) bool { return s.Free-1 == 0 }).
		Do(adjust(-1)).
		To(Full)

	m.From(Full).On(CarOut, FromBarrier).
		Do(adjust(+1)).
		To(Available)

	m.From(Available).On(CarOut, FromBarrier).
		When(func(_ domain.Env, s Spaces) bool { return s.Free+1 <= s.Total }).
		Do(adjust(+1)).
		To(Available)

	return m
}

// ManagementStart starts with every space free and broadcasts the initial signals.
func ManagementStart(total int) domain.Start {
	return NewManagement().Start(Available, Spaces{Free: total, Total: total}, signals(ToSignalController, total)...)
}

func adjust(delta int) dsl.ActionFunc[Spaces] {
	return func(_ domain.Env, s Spaces, emit domain.Emit, _ *domain.Event) (Spaces, error) {
		next := Spaces{Free: s.Free + delta, Total: s.Total}
		for _, ev := range signals(ToSignalController, next.Free) {
			emit(ev)
		}
		return next, nil
	}
}
