package mqttcomponent

import (
	"context"
	"sync"

	"github.com/nerrad567/gray-logic-textinput/internal/entity"
)

// Component is an entity's MQTT shadow.
type Component interface {
	// ComponentBase returns the resolved MQTT settings holder.
	ComponentBase() *Base

	// Domain returns the Home Assistant component name, e.g. "text".
	Domain() string

	// Entity returns the entity being shadowed.
	Entity() *entity.Base

	// Describe adds component-specific fields to a discovery message.
	Describe(d *Discovery)

	// OnState registers fn to receive every state payload.
	OnState(fn func(ctx context.Context, payload string))

	// Command applies a payload received on the command topic.
	Command(ctx context.Context, payload string) error
}

// Settings are the resolved MQTT options of one component.
type Settings struct {
	StateTopic          string
	CommandTopic        string
	QoS                 byte
	Retain              bool
	Discovery           bool
	AvailabilityTopic   string
	PayloadAvailable    string
	PayloadNotAvailable string
}

// Base stores a component's Settings once it is registered.
type Base struct {
	mu         sync.RWMutex
	settings   Settings
	registered bool
}

// ComponentBase returns b.
func (b *Base) ComponentBase() *Base { return b }

// Settings returns the settings and whether the component is registered.
func (b *Base) Settings() (Settings, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.settings, b.registered
}

func (b *Base) set(s Settings) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.settings = s
	b.registered = true
}
