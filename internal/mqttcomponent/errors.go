package mqttcomponent

import "errors"

var (
	// ErrNoClient is returned by Register when the registrar has no
	// MQTT client.
	ErrNoClient = errors.New("mqttcomponent: no MQTT client")

	// ErrEmptyTopic is returned when a component resolves to an empty
	// state or command topic.
	ErrEmptyTopic = errors.New("mqttcomponent: empty topic")
)
