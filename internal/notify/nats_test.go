// Package notify_test tests the NATS notifier.
package notify_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/book-expert/audio-relay/internal/core"
	"github.com/book-expert/audio-relay/internal/notify"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

// StartTestServer starts an in-memory NATS server for testing purposes.
func StartTestServer(t *testing.T) (*server.Server, *nats.Conn) {
	t.Helper()

	opts := test.DefaultTestOptions
	opts.Port = -1 // Use a random port
	natsServer := test.RunServer(&opts)

	natsConnection, err := nats.Connect(natsServer.ClientURL())
	if err != nil {
		t.Fatalf("Failed to connect to test NATS server: %v", err)
	}

	return natsServer, natsConnection
}

func TestNatsNotifier_AudioPublished(t *testing.T) {
	t.Parallel()

	natsServer, natsConnection := StartTestServer(t)
	defer natsServer.Shutdown()
	defer natsConnection.Close()

	const subject = "audio.published"

	subscription, err := natsConnection.SubscribeSync(subject)
	require.NoError(t, err)

	notifier := notify.New(natsConnection, subject)

	sent := core.AudioPublishedEvent{
		RequestID:   "abc-1",
		PublicID:    "abc-1",
		SecureURL:   "https://res.cloudinary.com/demo/video/upload/abc-1.mp3",
		Voice:       "female",
		GeneratedAt: time.Now().UTC(),
	}

	err = notifier.AudioPublished(context.Background(), sent)
	require.NoError(t, err)

	msg, err := subscription.NextMsg(5 * time.Second)
	require.NoError(t, err)

	var received core.AudioPublishedEvent

	err = json.Unmarshal(msg.Data, &received)
	require.NoError(t, err)
	require.Equal(t, sent.RequestID, received.RequestID)
	require.Equal(t, sent.PublicID, received.PublicID)
	require.Equal(t, sent.SecureURL, received.SecureURL)
	require.Equal(t, sent.Voice, received.Voice)
}

func TestNatsNotifier_CancelledContext(t *testing.T) {
	t.Parallel()

	natsServer, natsConnection := StartTestServer(t)
	defer natsServer.Shutdown()
	defer natsConnection.Close()

	notifier := notify.New(natsConnection, "audio.published")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := notifier.AudioPublished(ctx, core.AudioPublishedEvent{
		RequestID:   "abc-1",
		PublicID:    "abc-1",
		SecureURL:   "https://example.test/abc-1",
		Voice:       "male",
		GeneratedAt: time.Now().UTC(),
	})
	require.ErrorIs(t, err, context.Canceled)
}
