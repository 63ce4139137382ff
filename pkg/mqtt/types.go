package mqtt

import (
	"context"
)

// MessageHandler is the callback invoked for each received message.
//
// Handlers run synchronously on the client's receive path: the broker's
// acknowledgement for a QoS 1 message is not released until the handler
// returns. Combined with a persistent session this gives at-least-once
// processing: a crash mid-handler causes redelivery, not loss.
type MessageHandler func(ctx context.Context, topic string, payload []byte)

// Client is a generic MQTT client abstracting the paho implementation.
type Client interface {
	// Start initiates the connection to the broker. It is non-blocking and
	// returns immediately; use AwaitConnection to wait.
	Start(ctx context.Context) error

	// Disconnect cleanly closes the connection.
	Disconnect(ctx context.Context)

	// Publish sends a message to the specified topic.
	Publish(ctx context.Context, topic string, qos int, retain bool, payload []byte) error

	// Subscribe registers a handler for a topic filter and sends the
	// subscription packet. If the connection drops and is restored, the
	// client automatically re-subscribes.
	Subscribe(ctx context.Context, topic string, qos int, handler MessageHandler) error

	// Unsubscribe removes the handler and sends an UNSUBSCRIBE packet.
	Unsubscribe(ctx context.Context, topic string) error

	// AwaitConnection blocks until the client is connected to the broker.
	AwaitConnection(ctx context.Context) error
}
