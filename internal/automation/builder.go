package automation

import (
	"context"
	"fmt"
	"sync"

	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

// Publisher is the MQTT capability used by mqtt.publish.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// EntityLookup resolves entity identifiers for actions that target
// entities. *core.IDRegistry satisfies it.
type EntityLookup interface {
	Get(id string) (any, bool)
}

// Builder turns validated automation blocks into actions and attaches
// them to triggers.
type Builder struct {
	runner   Runner
	entities EntityLookup
	logger   Logger

	mu   sync.RWMutex
	mqtt Publisher
}

// NewBuilder creates a builder whose automations run on runner.
//
// Parameters:
//   - runner: Executes automations when triggers fire (usually *Engine)
//   - entities: Resolves text_input.set targets (may be nil)
//   - logger: Destination for logger.log actions (nil discards)
func NewBuilder(runner Runner, entities EntityLookup, logger Logger) *Builder {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Builder{runner: runner, entities: entities, logger: logger}
}

// SetPublisher sets the MQTT client used by mqtt.publish actions.
// Actions built earlier pick up the change.
func (b *Builder) SetPublisher(p Publisher) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mqtt = p
}

func (b *Builder) publisher() Publisher {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mqtt
}

// Build constructs the actions of one validated automation block and
// attaches the automation to trigger. args names the values the trigger
// passes when it fires.
func (b *Builder) Build(ctx context.Context, trigger Trigger, args []Arg, conf schema.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	specs, _ := conf.Get(ConfThen).([]any)
	actions := make([]Action, 0, len(specs))
	for i, raw := range specs {
		spec, ok := raw.(ActionSpec)
		if !ok {
			return fmt.Errorf("%w: entry %d is %T", ErrUnknownAction, i, raw)
		}
		def, ok := actionCatalog[spec.Name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAction, spec.Name)
		}
		action, err := def.build(b, spec.Config)
		if err != nil {
			return fmt.Errorf("building action %d (%s): %w", i, spec.Name, err)
		}
		actions = append(actions, action)
	}

	a := &Automation{
		ID:        conf.String(ConfAutomationID),
		TriggerID: trigger.TriggerID(),
		Args:      append([]Arg(nil), args...),
		Actions:   actions,
	}
	trigger.Attach(a, b.runner)

	b.logger.Debug("automation built",
		"automation_id", a.ID,
		"trigger_id", a.TriggerID,
		"actions", len(actions),
	)
	return nil
}
