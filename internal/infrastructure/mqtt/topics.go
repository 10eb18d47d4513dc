package mqtt

import "fmt"

// Availability payloads published on the node status topic.
const (
	PayloadOnline  = "online"
	PayloadOffline = "offline"
)

// Topics builds the MQTT topics for one node.
//
// State and command topics follow {prefix}/{component}/{object_id}/{kind};
// discovery topics follow {discovery_prefix}/{component}/{node}/{object_id}/config
// so Home Assistant groups every entity of a node under one device.
//
//	topics := mqtt.NewTopics("hallway-panel", "homeassistant")
//	topics.EntityState("text", "greeting")
//	// Returns: "hallway-panel/text/greeting/state"
type Topics struct {
	Prefix          string
	DiscoveryPrefix string
}

// NewTopics returns a topic builder rooted at prefix.
func NewTopics(prefix, discoveryPrefix string) Topics {
	return Topics{Prefix: prefix, DiscoveryPrefix: discoveryPrefix}
}

// Availability returns the node status topic carrying online/offline.
//
// Example: hallway-panel/status
func (t Topics) Availability() string {
	return t.Prefix + "/status"
}

// EntityState returns the topic an entity publishes its value on.
//
// Example: hallway-panel/text/greeting/state
func (t Topics) EntityState(component, objectID string) string {
	return fmt.Sprintf("%s/%s/%s/state", t.Prefix, component, objectID)
}

// EntityCommand returns the topic an entity accepts new values on.
//
// Example: hallway-panel/text/greeting/command
func (t Topics) EntityCommand(component, objectID string) string {
	return fmt.Sprintf("%s/%s/%s/command", t.Prefix, component, objectID)
}

// Discovery returns the Home Assistant discovery config topic for an entity.
//
// Example: homeassistant/text/hallway-panel/greeting/config
func (t Topics) Discovery(component, nodeID, objectID string) string {
	return fmt.Sprintf("%s/%s/%s/%s/config", t.DiscoveryPrefix, component, nodeID, objectID)
}

// AllCommands returns a wildcard matching every command topic of the node.
//
// Example: hallway-panel/+/+/command
func (t Topics) AllCommands() string {
	return t.Prefix + "/+/+/command"
}
