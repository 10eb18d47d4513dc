package mqttcomponent

// Discovery is the Home Assistant MQTT discovery config message.
type Discovery struct {
	Name                string `json:"name"`
	UniqueID            string `json:"unique_id"`
	ObjectID            string `json:"object_id"`
	StateTopic          string `json:"state_topic,omitempty"`
	CommandTopic        string `json:"command_topic,omitempty"`
	AvailabilityTopic   string `json:"availability_topic,omitempty"`
	PayloadAvailable    string `json:"payload_available,omitempty"`
	PayloadNotAvailable string `json:"payload_not_available,omitempty"`
	QoS                 int    `json:"qos,omitempty"`
	Retain              bool   `json:"retain,omitempty"`
	Icon                string `json:"icon,omitempty"`
	EntityCategory      string `json:"entity_category,omitempty"`
	EnabledByDefault    *bool  `json:"enabled_by_default,omitempty"`
	Device              Device `json:"device"`

	// text component
	Mode string `json:"mode,omitempty"`
	Min  int    `json:"min,omitempty"`
	Max  int    `json:"max,omitempty"`
}

// Device groups every entity of a node under one Home Assistant device.
type Device struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Model        string   `json:"model,omitempty"`
	SWVersion    string   `json:"sw_version,omitempty"`
}
