//go:build integration

package mqtt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests require a running MQTT broker at 127.0.0.1:1883.
//
// Run with:
//   go test -tags=integration -v ./internal/infrastructure/mqtt/...

func TestIntegration_PublishSubscribe(t *testing.T) {
	topics := NewTopics("textinput-integration", "homeassistant")
	client, err := Connect(testConfig(), topics)
	require.NoError(t, err)
	defer client.Close() //nolint:errcheck // Test cleanup

	received := make(chan string, 1)
	topic := topics.EntityCommand("text", "greeting")
	require.NoError(t, client.Subscribe(topic, 1, func(_ string, payload []byte) error {
		received <- string(payload)
		return nil
	}))
	assert.Equal(t, 1, client.SubscriptionCount())

	require.NoError(t, client.Publish(topic, []byte("hello"), 1, false))

	select {
	case got := <-received:
		assert.Equal(t, "hello", got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}

	require.NoError(t, client.Unsubscribe(topic))
	assert.Equal(t, 0, client.SubscriptionCount())
}

func TestIntegration_ConnectInvalidBroker(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.Port = 19999

	_, err := Connect(cfg, NewTopics("n", "homeassistant"))
	assert.ErrorIs(t, err, ErrConnectionFailed)
}
