// Package notify provides a NATS-based implementation of the Notifier interface.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/book-expert/audio-relay/internal/core"
)

// NatsNotifier publishes audio-published events to a NATS subject so upstream
// services can react to completed generations without polling the relay.
type NatsNotifier struct {
	natsConnection *nats.Conn
	subject        string
}

// New creates a notifier bound to an existing NATS connection.
func New(natsConnection *nats.Conn, subject string) *NatsNotifier {
	return &NatsNotifier{
		natsConnection: natsConnection,
		subject:        subject,
	}
}

// AudioPublished marshals the event and publishes it on the configured subject.
func (n *NatsNotifier) AudioPublished(ctx context.Context, event core.AudioPublishedEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("notification cancelled: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audio published event: %w", err)
	}

	err = n.natsConnection.Publish(n.subject, payload)
	if err != nil {
		return fmt.Errorf("failed to publish event to subject '%s': %w", n.subject, err)
	}

	return nil
}
