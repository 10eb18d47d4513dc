package textinput

import "errors"

var (
	// ErrValueTooLong is returned by Set for values over MaxLength bytes.
	ErrValueTooLong = errors.New("textinput: value too long")

	// ErrNoMQTT is returned when an entry carries an mqtt_id but the
	// node has no MQTT registrar.
	ErrNoMQTT = errors.New("textinput: mqtt_id set but MQTT is not available")

	// ErrInvalidEntityID is returned by history queries without an id.
	ErrInvalidEntityID = errors.New("textinput: entity id is required")
)
