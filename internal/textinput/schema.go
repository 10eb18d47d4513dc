package textinput

import (
	"github.com/nerrad567/gray-logic-textinput/internal/automation"
	"github.com/nerrad567/gray-logic-textinput/internal/entity"
	"github.com/nerrad567/gray-logic-textinput/internal/mqttcomponent"
	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

// Domain is the manifest key for text inputs.
const Domain = "text_input"

// FeatureMQTT is the build feature that enables mqtt_id.
const FeatureMQTT = "mqtt"

// Configuration keys.
const (
	ConfID        = "id"
	ConfMode      = "mode"
	ConfOnValue   = "on_value"
	ConfTriggerID = "trigger_id"
	ConfMQTTID    = "mqtt_id"
)

// Schema returns the schema of one text_input entry: the entity base and
// MQTT component fields plus id, mqtt_id, mode and on_value.
func Schema() schema.Schema {
	return entity.Schema().Extend(
		mqttcomponent.Schema(),
		schema.New(
			schema.Optional(ConfMode, schema.Enum(modes, true)).Default("AUTO"),
			schema.GenerateID(ConfID, "text_input"),
			schema.OnlyWith(ConfMQTTID, FeatureMQTT, "mqtt_text_input"),
			schema.Optional(ConfOnValue, automation.ValidateAutomation(schema.New(
				schema.GenerateID(ConfTriggerID, "text_input_state_trigger"),
			))),
		),
	)
}
