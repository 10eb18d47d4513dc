package textinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

func TestSchema_Mode(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Mode
	}{
		{"omitted", nil, ModeAuto},
		{"auto", "auto", ModeAuto},
		{"lowercase string", "string", ModeString},
		{"mixed case", "String", ModeString},
		{"uppercase", "STRING", ModeString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"name": "Greeting"}
			if tt.raw != nil {
				raw["mode"] = tt.raw
			}
			cfg := validate(t, raw)
			assert.Equal(t, tt.want, cfg.Get(ConfMode))
		})
	}
}

func TestSchema_ModeRejected(t *testing.T) {
	for _, mode := range []string{"secret", "SECRET", "password", ""} {
		t.Run(mode, func(t *testing.T) {
			_, err := Schema().Validate(map[string]any{"name": "Greeting", "mode": mode}, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, schema.ErrInvalid)
			assert.Contains(t, err.Error(), "mode")
			assert.Contains(t, err.Error(), "not one of the allowed values")
		})
	}
}

func TestSchema_GeneratedIDs(t *testing.T) {
	cfg := validate(t, map[string]any{
		"name": "Greeting",
		"on_value": []any{
			map[string]any{"then": []any{map[string]any{"logger.log": "a"}}},
			map[string]any{"then": []any{map[string]any{"logger.log": "b"}}},
		},
	})

	assert.Equal(t, "text_input_1", cfg.String(ConfID))
	assert.False(t, cfg.Has(ConfMQTTID))

	triggers := cfg.List(ConfOnValue)
	require.Len(t, triggers, 2)
	assert.Equal(t, "text_input_state_trigger_1", triggers[0].String(ConfTriggerID))
	assert.Equal(t, "text_input_state_trigger_2", triggers[1].String(ConfTriggerID))
}

func TestSchema_ExplicitID(t *testing.T) {
	cfg := validate(t, map[string]any{"name": "Greeting", "id": "greeting"})
	assert.Equal(t, "greeting", cfg.String(ConfID))

	_, err := Schema().Validate(map[string]any{"name": "Greeting", "id": "1bad"}, nil)
	assert.ErrorIs(t, err, schema.ErrInvalid)
}

func TestSchema_MQTTID(t *testing.T) {
	t.Run("generated when mqtt is enabled", func(t *testing.T) {
		cfg := validate(t, map[string]any{"name": "Greeting"}, FeatureMQTT)
		assert.Equal(t, "mqtt_text_input_1", cfg.String(ConfMQTTID))
	})

	t.Run("explicit when mqtt is enabled", func(t *testing.T) {
		cfg := validate(t, map[string]any{"name": "Greeting", "mqtt_id": "greeting_mqtt"}, FeatureMQTT)
		assert.Equal(t, "greeting_mqtt", cfg.String(ConfMQTTID))
	})

	t.Run("rejected when mqtt is disabled", func(t *testing.T) {
		_, err := Schema().Validate(map[string]any{"name": "Greeting", "mqtt_id": "greeting_mqtt"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mqtt_id: only allowed when mqtt is enabled")
	})
}

func TestSchema_MQTTComponentKeys(t *testing.T) {
	cfg := validate(t, map[string]any{
		"name":          "Greeting",
		"retain":        false,
		"qos":           1,
		"state_topic":   "custom/greeting",
		"command_topic": "custom/greeting/set",
	}, FeatureMQTT)

	assert.False(t, cfg.Bool("retain"))
	assert.Equal(t, 1, cfg.Int("qos"))
	assert.Equal(t, "custom/greeting", cfg.String("state_topic"))
}

func TestSchema_RejectsUnknownKeys(t *testing.T) {
	for _, key := range []string{"operation", "filters", "raw_value", "min_length"} {
		t.Run(key, func(t *testing.T) {
			_, err := Schema().Validate(map[string]any{"name": "Greeting", key: "x"}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), key+": extra keys not allowed")
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "AUTO", ModeAuto.String())
	assert.Equal(t, "STRING", ModeString.String())
}
