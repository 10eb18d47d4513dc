package textinput

import (
	"context"
	"fmt"
	"sync"

	"github.com/nerrad567/gray-logic-textinput/internal/entity"
)

// MaxLength is the longest value, in bytes, Set accepts.
const MaxLength = 255

// StateCallback receives every published value.
type StateCallback func(ctx context.Context, value string)

// TextInput is a text entity.
//
// Thread Safety: all methods are safe for concurrent use. Callbacks run
// on the publishing goroutine, in registration order.
type TextInput struct {
	*entity.Base
	Traits Traits

	mu        sync.RWMutex
	state     string
	hasState  bool
	callbacks []StateCallback
}

// NewTextInput allocates a text input bound to id.
func NewTextInput(id string) *TextInput {
	return &TextInput{Base: entity.NewBase(id)}
}

// State returns the current value and whether one was ever published.
func (t *TextInput) State() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state, t.hasState
}

// MaxLength returns the longest accepted value.
func (t *TextInput) MaxLength() int { return MaxLength }

// AddOnStateCallback registers fn for every subsequent PublishState.
func (t *TextInput) AddOnStateCallback(fn func(ctx context.Context, value string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.callbacks = append(t.callbacks, fn)
}

// PublishState stores value and notifies every callback. Publishing the
// current value again still notifies.
func (t *TextInput) PublishState(ctx context.Context, value string) {
	t.mu.Lock()
	t.state = value
	t.hasState = true
	callbacks := append([]StateCallback(nil), t.callbacks...)
	t.mu.Unlock()

	for _, fn := range callbacks {
		fn(ctx, value)
	}
}

// Set validates value and publishes it. This is the control path used by
// MQTT commands, the API and the text_input.set action.
func (t *TextInput) Set(ctx context.Context, value string) error {
	if len(value) > MaxLength {
		return fmt.Errorf("%w: %s has %d bytes, max %d", ErrValueTooLong, t.ID(), len(value), MaxLength)
	}
	t.PublishState(ctx, value)
	return nil
}
