package mqttcomponent

import (
	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

// Configuration keys shared by every MQTT component.
const (
	ConfRetain              = "retain"
	ConfDiscovery           = "discovery"
	ConfQoS                 = "qos"
	ConfStateTopic          = "state_topic"
	ConfCommandTopic        = "command_topic"
	ConfAvailability        = "availability"
	ConfTopic               = "topic"
	ConfPayloadAvailable    = "payload_available"
	ConfPayloadNotAvailable = "payload_not_available"
)

// Schema returns the MQTT fields an entity accepts alongside its own.
func Schema() schema.Schema {
	return schema.New(
		schema.Optional(ConfRetain, schema.Boolean),
		schema.Optional(ConfDiscovery, schema.Boolean),
		schema.Optional(ConfQoS, schema.IntRange(0, 2)),
		schema.Optional(ConfStateTopic, schema.String),
		schema.Optional(ConfCommandTopic, schema.String),
		schema.Optional(ConfAvailability, schema.Nested(availabilitySchema())),
	)
}

func availabilitySchema() schema.Schema {
	return schema.New(
		schema.Required(ConfTopic, schema.String),
		schema.Optional(ConfPayloadAvailable, schema.String).Default("online"),
		schema.Optional(ConfPayloadNotAvailable, schema.String).Default("offline"),
	)
}
