package influxdb

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/gray-logic-textinput/internal/infrastructure/config"
)

func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "textinput-dev-token",
		Org:           "textinput",
		Bucket:        "metrics",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := Connect(context.Background(), cfg, "test-node")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestConnect_Unreachable(t *testing.T) {
	cfg := testConfig()
	cfg.URL = "http://127.0.0.1:59999"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Connect(ctx, cfg, "test-node")
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestDisconnectedClient_NoOps(t *testing.T) {
	c := &Client{}

	assert.False(t, c.IsConnected())
	assert.ErrorIs(t, c.HealthCheck(context.Background()), ErrNotConnected)
	assert.NotPanics(t, func() {
		c.WriteTextValue("greeting", "AUTO", "hello")
		c.WriteAutomationRun("automation_1", "completed", time.Second, 2)
		c.Flush()
	})
	assert.NoError(t, c.Close())
}

func TestWriteOptions(t *testing.T) {
	cfg := testConfig()
	cfg.BatchSize = 0
	cfg.FlushInterval = 0

	opts := writeOptions(cfg, "hallway")
	assert.Equal(t, uint(defaultBatchSize), opts.BatchSize())
	assert.Equal(t, uint(10000), opts.FlushInterval())
	assert.Equal(t, "hallway", opts.WriteOptions().DefaultTags()[nodeTag])

	cfg.BatchSize = 25
	cfg.FlushInterval = 2
	opts = writeOptions(cfg, "")
	assert.Equal(t, uint(25), opts.BatchSize())
	assert.Equal(t, uint(2000), opts.FlushInterval())
	assert.NotContains(t, opts.WriteOptions().DefaultTags(), nodeTag)
}

func TestTextValuePoint(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	line := strings.TrimSpace(write.PointToLineProtocol(textValuePoint("greeting", "STRING", "hi there", ts), time.Second))

	assert.Equal(t, "text_input,entity_id=greeting,mode=STRING length=8i,value=\"hi there\" 1700000000", line)
}

func TestAutomationRunPoint(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	line := strings.TrimSpace(write.PointToLineProtocol(automationRunPoint("automation_1", "completed", 1500*time.Millisecond, 3, ts), time.Second))

	assert.Equal(t, "automation_run,automation_id=automation_1,status=completed actions=3i,duration_ms=1500i 1700000000", line)
}

func TestWriteTextValue_Live(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") == "" {
		t.Skip("set RUN_INTEGRATION to run against a local InfluxDB")
	}

	c, err := Connect(context.Background(), testConfig(), "test-node")
	require.NoError(t, err)
	defer c.Close() //nolint:errcheck // Test cleanup

	c.WriteTextValue("greeting", "AUTO", "hello")
	c.Flush()
	assert.NoError(t, c.HealthCheck(context.Background()))
}
