package dsl

import "github.com/aretw0/lockstep/pkg/domain"

// GuardFunc is a typed guard over the component's data.
type GuardFunc[D any] func(env domain.Env, data D) bool

// ActionFunc is a typed action. It returns the new data state.
type ActionFunc[D any] func(env domain.Env, data D, emit domain.Emit, trigger *domain.Event) (D, error)

// RuleBuilder provides a fluent API for configuring a transition rule.
type RuleBuilder[C ~string, D any] struct {
	from    C
	to      C
	trigger *domain.Trigger
	guards  []GuardFunc[D]
	action  ActionFunc[D]
	emits   []domain.Event
	label   string
}

// On makes the rule event-triggered: it only fires when the head of the inbox
// has the given kind and arrived on the given port.
func (r *RuleBuilder[C, D]) On(kind domain.EventKind, port domain.PortID) *RuleBuilder[C, D] {
	r.trigger = &domain.Trigger{Kind: kind, Port: port}
	return r
}

// When adds a guard. Multiple guards must all hold.
func (r *RuleBuilder[C, D]) When(guard GuardFunc[D]) *RuleBuilder[C, D] {
	r.guards = append(r.guards, guard)
	return r
}

// Do sets the action run when the rule fires.
func (r *RuleBuilder[C, D]) Do(action ActionFunc[D]) *RuleBuilder[C, D] {
	r.action = action
	return r
}

// Update sets an action that only computes the new data state.
func (r *RuleBuilder[C, D]) Update(fn func(env domain.Env, data D) D) *RuleBuilder[C, D] {
	return r.Do(func(env domain.Env, data D, _ domain.Emit, _ *domain.Event) (D, error) {
		return fn(env, data), nil
	})
}

// Emit adds fixed events emitted after the action, in the given order.
func (r *RuleBuilder[C, D]) Emit(events ...domain.Event) *RuleBuilder[C, D] {
	r.emits = append(r.emits, events...)
	return r
}

// To sets the target control state.
func (r *RuleBuilder[C, D]) To(state C) *RuleBuilder[C, D] {
	r.to = state
	return r
}

// Label names the rule in diagrams and logs.
func (r *RuleBuilder[C, D]) Label(label string) *RuleBuilder[C, D] {
	r.label = label
	return r
}

func (r *RuleBuilder[C, D]) build() domain.Rule {
	rule := domain.Rule{
		From:    domain.ControlState(r.from),
		To:      domain.ControlState(r.to),
		Trigger: r.trigger,
		Label:   r.label,
	}

	if len(r.guards) > 0 {
		guards := append([]GuardFunc[D](nil), r.guards...)
		rule.Guard = func(env domain.Env, data any) bool {
			d := as[D](data)
			for _, g := range guards {
				if !g(env, d) {
					return false
				}
			}
			return true
		}
	}

	if r.action != nil || len(r.emits) > 0 {
		action := r.action
		emits := append([]domain.Event(nil), r.emits...)
		rule.Action = func(env domain.Env, data any, emit domain.Emit, trigger *domain.Event) (any, error) {
			d, err := typed[D](data)
			if err != nil {
				return nil, err
			}
			if action != nil {
				next, err := action(env, d, emit, trigger)
				if err != nil {
					return nil, err
				}
				d = next
			}
			for _, ev := range emits {
				emit(ev)
			}
			return d, nil
		}
	}

	return rule
}
