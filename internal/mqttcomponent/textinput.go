package mqttcomponent

import (
	"context"

	"github.com/nerrad567/gray-logic-textinput/internal/entity"
)

// TextSource is the entity side of a TextInput shadow.
type TextSource interface {
	EntityBase() *entity.Base
	State() (string, bool)
	Set(ctx context.Context, value string) error
	AddOnStateCallback(fn func(ctx context.Context, value string))
	MaxLength() int
}

// TextInput shadows a text input as a Home Assistant "text" entity.
type TextInput struct {
	Base
	source TextSource
}

// NewTextInput returns a shadow bound to source.
func NewTextInput(source TextSource) *TextInput {
	return &TextInput{source: source}
}

// Domain returns "text".
func (t *TextInput) Domain() string { return "text" }

// Entity returns the shadowed entity's base.
func (t *TextInput) Entity() *entity.Base { return t.source.EntityBase() }

// Source returns the shadowed entity.
func (t *TextInput) Source() TextSource { return t.source }

// Describe sets the text-specific discovery fields.
func (t *TextInput) Describe(d *Discovery) {
	d.Mode = "text"
	d.Max = t.source.MaxLength()
}

// OnState forwards every value the entity publishes. The current value,
// if any, is sent immediately.
func (t *TextInput) OnState(fn func(ctx context.Context, payload string)) {
	t.source.AddOnStateCallback(fn)
	if v, ok := t.source.State(); ok {
		fn(context.Background(), v)
	}
}

// CurrentState returns the entity's value, if it has one.
func (t *TextInput) CurrentState() (string, bool) {
	return t.source.State()
}

// Command sets the entity to payload.
func (t *TextInput) Command(ctx context.Context, payload string) error {
	return t.source.Set(ctx, payload)
}
