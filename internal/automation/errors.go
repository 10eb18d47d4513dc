package automation

import "errors"

// Domain errors for the automation package.
var (
	// ErrUnknownAction is returned when an action name is not in the catalog.
	ErrUnknownAction = errors.New("automation: unknown action")

	// ErrInvalidTemplate is returned when an action template fails to parse.
	ErrInvalidTemplate = errors.New("automation: invalid template")

	// ErrMQTTUnavailable is returned when mqtt.publish runs without a client.
	ErrMQTTUnavailable = errors.New("automation: MQTT unavailable")

	// ErrTargetNotFound is returned when an action targets an unknown entity.
	ErrTargetNotFound = errors.New("automation: target not found")

	// ErrTargetNotSettable is returned when the target entity cannot take a value.
	ErrTargetNotSettable = errors.New("automation: target does not accept values")

	// ErrExecutionNotFound is returned when an execution ID does not exist.
	ErrExecutionNotFound = errors.New("automation: execution not found")
)
