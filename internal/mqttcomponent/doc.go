// Package mqttcomponent exposes entities over MQTT.
//
// Each entity with an MQTT shadow publishes its value on a state topic,
// accepts new values on a command topic and, when discovery is enabled,
// announces itself to Home Assistant with a retained config message on
// {discovery_prefix}/{component}/{node}/{object_id}/config.
//
// The Registrar does the per-entity wiring; component types such as
// TextInput supply the Home Assistant component name, the extra
// discovery fields and the command handling.
package mqttcomponent
