package ports

import (
	"context"
	"errors"
)

// ErrTransportClosed is returned by operations on a closed transport.
var ErrTransportClosed = errors.New("transport closed")

// Message is a raw payload received from or sent to a topic.
type Message struct {
	Topic   string
	Payload []byte
}

// MessageHandler is called for every message received on a subscribed topic.
// Implementations may invoke it from their own goroutines; handlers must not block.
type MessageHandler func(Message)

// Transport defines the publish/subscribe boundary with the outside world.
type Transport interface {
	// Subscribe registers handler for topic. It returns once the subscription is
	// active, so messages published afterwards are not missed.
	Subscribe(ctx context.Context, topic string, handler MessageHandler) error

	// Publish sends payload to topic.
	Publish(ctx context.Context, topic string, payload []byte) error

	// Close releases the connection. Further calls return ErrTransportClosed.
	Close() error
}
