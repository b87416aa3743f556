package bridge

import (
	"context"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ports"
)

// Encoder turns an event into a topic suffix and a payload.
// Returning false drops the event.
type Encoder func(domain.Event) (topic string, payload []byte, ok bool)

// Outbound is a sink adapter component publishing to a transport.
type Outbound struct {
	name      string
	port      domain.PortID
	transport ports.Transport
	baseTopic string
	encode    Encoder
	cfg       settings
}

// NewOutbound creates an outbound bridge receiving on port.
// Events are published to baseTopic, or to baseTopic/suffix when the encoder
// returns a non-empty topic.
func NewOutbound(name string, port domain.PortID, transport ports.Transport, baseTopic string, encode Encoder, opts ...Option) *Outbound {
	return &Outbound{
		name:      name,
		port:      port,
		transport: transport,
		baseTopic: baseTopic,
		encode:    encode,
		cfg:       newSettings(opts),
	}
}

// Component returns the blueprint to place in a configuration.
func (b *Outbound) Component() domain.Component {
	return domain.Component{
		Name:  b.name,
		Ports: []domain.Port{{ID: b.port, Direction: domain.In}},
		Sink:  b,
	}
}

// Deliver publishes events in inbox order. Failures never abort the tick.
func (b *Outbound) Deliver(ctx context.Context, env domain.Env, events []domain.Event) {
	for _, ev := range events {
		suffix, payload, ok := b.encode(ev)
		if !ok {
			b.dropped(ctx, env, ev, domain.DropUnencodable, "")
			continue
		}

		topic := Topic(b.baseTopic, suffix)
		if err := b.transport.Publish(ctx, topic, payload); err != nil {
			b.dropped(ctx, env, ev, domain.DropPublishFailed, err.Error())
			continue
		}
		b.cfg.logger.Debug("published", "component", b.name, "topic", topic, "tick", env.Tick)
	}
}

func (b *Outbound) dropped(ctx context.Context, env domain.Env, ev domain.Event, reason, detail string) {
	b.cfg.drop(ctx, &domain.DropEvent{
		Tick:      env.Tick,
		Component: b.name,
		Reason:    reason,
		Event:     &ev,
		Detail:    detail,
	})
}

// Topic joins a base topic and an optional suffix with a slash.
func Topic(base, suffix string) string {
	switch {
	case suffix == "":
		return base
	case base == "":
		return suffix
	}
	return base + "/" + suffix
}
