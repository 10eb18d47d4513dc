package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names written by this node.
const (
	measurementTextInput  = "text_input"
	measurementAutomation = "automation_run"
)

// WriteTextValue records a published text input value.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - entityID: Entity identifier (e.g., "greeting")
//   - mode: Display mode ("AUTO" or "STRING")
//   - value: The published value
func (c *Client) WriteTextValue(entityID, mode, value string) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(textValuePoint(entityID, mode, value, time.Now()))
}

// WriteAutomationRun records a completed automation execution.
func (c *Client) WriteAutomationRun(automationID, status string, duration time.Duration, actions int) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(automationRunPoint(automationID, status, duration, actions, time.Now()))
}

func textValuePoint(entityID, mode, value string, ts time.Time) *write.Point {
	return write.NewPoint(
		measurementTextInput,
		map[string]string{
			"entity_id": entityID,
			"mode":      mode,
		},
		map[string]interface{}{
			"value":  value,
			"length": len(value),
		},
		ts,
	)
}

func automationRunPoint(automationID, status string, duration time.Duration, actions int, ts time.Time) *write.Point {
	return write.NewPoint(
		measurementAutomation,
		map[string]string{
			"automation_id": automationID,
			"status":        status,
		},
		map[string]interface{}{
			"duration_ms": duration.Milliseconds(),
			"actions":     actions,
		},
		ts,
	)
}
