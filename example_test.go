package lockstep_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/lockstep"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/dsl"
)

type lamp string

const (
	off lamp = "OFF"
	on  lamp = "ON"
)

// ExampleNew shows a switch toggling a lamp. The lamp sees each press one tick
// after the switch emitted it.
func ExampleNew() {
	sw := dsl.New[lamp, int]("switch").Out("press")
	sw.From(off).
		When(func(env domain.Env, _ int) bool { return env.Tick%2 == 1 }).
		Emit(domain.NewEvent("PRESS", "press")).
		To(off)

	light := dsl.New[lamp, int]("light").In("press")
	light.From(off).On("PRESS", "press").To(on)
	light.From(on).On("PRESS", "press").To(off)

	engine, err := lockstep.New(domain.Configuration{
		Components:  []domain.Component{sw.Build(), light.Build()},
		Connections: []domain.Connection{domain.Connect("switch", "press", "light", "press")},
	})
	if err != nil {
		log.Fatal(err)
	}

	state, err := engine.Init(sw.Start(off, 0), light.Start(off, 0))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for range 4 {
		state, err = engine.Step(ctx, state)
		if err != nil {
			log.Fatal(err)
		}
		inst, _ := state.Instance("light")
		fmt.Printf("tick %d: %s\n", state.Tick, inst.Control)
	}
	// Output:
	// tick 1: OFF
	// tick 2: ON
	// tick 3: ON
	// tick 4: OFF
}
