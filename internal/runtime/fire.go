package runtime

import (
	"fmt"

	"github.com/aretw0/lockstep/pkg/domain"
)

// outcome is the result of evaluating one component for one tick.
type outcome struct {
	next    domain.InstanceState
	rule    *domain.Rule
	trigger *domain.Event
	emitted []domain.Event

	// dropped holds inbox entries discarded without a match.
	dropped []domain.Event

	// deliver holds the inbox handed to a sink at commit time.
	deliver []domain.Event
}

func (o outcome) fired() bool {
	return o.rule != nil
}

// fire evaluates a component against its own instance state only.
// At most one rule fires; only the inbox head is considered and the inbox is
// always empty afterwards.
func fire(env domain.Env, comp domain.Component, inst domain.InstanceState) (outcome, error) {
	switch {
	case comp.Source != nil:
		return fireSource(env, comp, inst), nil
	case comp.Sink != nil:
		return outcome{
			next:    domain.InstanceState{Control: domain.ReadyState, Data: inst.Data},
			deliver: inst.Inbox,
		}, nil
	}

	res := outcome{next: domain.InstanceState{Control: inst.Control, Data: inst.Data}}

	if err := checkData(comp, inst.Data); err != nil {
		return outcome{}, &ActionFaultError{
			Component: comp.Name,
			From:      inst.Control,
			To:        inst.Control,
			Tick:      env.Tick,
			Err:       err,
		}
	}

	rule, trigger := match(env, comp.Rules, inst)
	if rule == nil {
		res.dropped = inst.Inbox
		return res, nil
	}
	if trigger != nil {
		res.dropped = inst.Inbox[1:]
	} else {
		res.dropped = inst.Inbox
	}

	data, emitted, err := apply(env, comp, rule, inst.Data, trigger)
	if err == nil {
		err = checkData(comp, data)
	}
	if err != nil {
		return outcome{}, &ActionFaultError{
			Component: comp.Name,
			From:      rule.From,
			To:        rule.To,
			Tick:      env.Tick,
			Err:       err,
		}
	}

	res.next.Control = rule.To
	res.next.Data = data
	res.rule = rule
	res.trigger = trigger
	res.emitted = emitted
	return res, nil
}

// match selects the rule to fire: event-triggered candidates first against the
// inbox head, then spontaneous candidates, each in declaration order.
func match(env domain.Env, rules []domain.Rule, inst domain.InstanceState) (*domain.Rule, *domain.Event) {
	if len(inst.Inbox) > 0 {
		head := inst.Inbox[0]
		for i := range rules {
			r := &rules[i]
			if r.From != inst.Control || r.Spontaneous() {
				continue
			}
			if head.Matches(*r.Trigger) && r.Allows(env, inst.Data) {
				return r, &head
			}
		}
	}

	for i := range rules {
		r := &rules[i]
		if r.From != inst.Control || !r.Spontaneous() {
			continue
		}
		if r.Allows(env, inst.Data) {
			return r, nil
		}
	}

	return nil, nil
}

// apply runs the rule action, turning panics and bad emissions into errors.
func apply(env domain.Env, comp domain.Component, rule *domain.Rule, data any, trigger *domain.Event) (next any, emitted []domain.Event, err error) {
	if rule.Action == nil {
		return data, nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			next, emitted, err = nil, nil, &PanicError{Value: r}
		}
	}()

	var emitErr error
	emit := func(ev domain.Event) {
		if emitErr != nil {
			return
		}
		if err := checkSend(comp, ev.Port()); err != nil {
			emitErr = &EmissionError{Event: ev, Cause: err}
			return
		}
		emitted = append(emitted, ev)
	}

	next, err = rule.Action(env, data, emit, trigger)
	if err != nil {
		return nil, nil, err
	}
	if emitErr != nil {
		return nil, nil, emitErr
	}
	return next, emitted, nil
}

func fireSource(env domain.Env, comp domain.Component, inst domain.InstanceState) outcome {
	port := comp.Ports[0].ID
	drained := comp.Source.Drain(env)

	emitted := make([]domain.Event, 0, len(drained))
	for _, ev := range drained {
		emitted = append(emitted, ev.OnPort(port))
	}

	return outcome{
		next:    domain.InstanceState{Control: domain.ReadyState, Data: inst.Data},
		emitted: emitted,
		dropped: inst.Inbox,
	}
}

func checkData(comp domain.Component, data any) error {
	if comp.CheckData == nil {
		return nil
	}
	if err := comp.CheckData(data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidData, err)
	}
	return nil
}

func checkSend(comp domain.Component, id domain.PortID) error {
	p, ok := comp.Port(id)
	if !ok {
		return domain.ErrUnknownPort
	}
	if !p.Direction.CanSend() {
		return domain.ErrPortDirection
	}
	return nil
}
