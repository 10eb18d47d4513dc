package textinput

import (
	"context"

	"github.com/nerrad567/gray-logic-textinput/internal/automation"
)

// StateTrigger fires its automations with the new value each time the
// parent publishes a state.
type StateTrigger struct {
	*automation.TriggerBase
	parent *TextInput
}

// NewStateTrigger returns a trigger bound to parent.
func NewStateTrigger(id string, parent *TextInput) *StateTrigger {
	t := &StateTrigger{TriggerBase: automation.NewTriggerBase(id), parent: parent}
	parent.AddOnStateCallback(func(ctx context.Context, value string) {
		t.Fire(ctx, value)
	})
	return t
}

// Parent returns the text input the trigger listens to.
func (t *StateTrigger) Parent() *TextInput { return t.parent }
