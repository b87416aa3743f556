package runtime

import "github.com/aretw0/lockstep/pkg/domain"

// route appends the events emitted by one component to the inboxes of every
// connected destination in state, rebinding each copy to the destination port.
// Callers route emitters in declaration order, which fixes fan-in order.
// It returns the number of inbox entries created.
func (e *Engine) route(state domain.ConfigurationState, from string, emitted []domain.Event) int {
	delivered := 0
	for _, ev := range emitted {
		for _, conn := range e.outgoing[portKey{component: from, port: ev.Port()}] {
			inst := state.Instances[conn.To]
			inst.Inbox = append(inst.Inbox, ev.OnPort(conn.ToPort))
			state.Instances[conn.To] = inst
			delivered++
		}
	}
	return delivered
}
