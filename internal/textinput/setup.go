package textinput

import (
	"context"
	"fmt"
	"sync"

	"github.com/nerrad567/gray-logic-textinput/internal/automation"
	"github.com/nerrad567/gray-logic-textinput/internal/entity"
	"github.com/nerrad567/gray-logic-textinput/internal/mqttcomponent"
	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

// EntitySetup applies the entity-base part of a configuration.
// *entity.Setup satisfies it.
type EntitySetup interface {
	Setup(ctx context.Context, e entity.Entity, cfg schema.Config) error
}

// AutomationBuilder attaches a validated automation to a trigger.
// *automation.Builder satisfies it.
type AutomationBuilder interface {
	Build(ctx context.Context, trigger automation.Trigger, args []automation.Arg, conf schema.Config) error
}

// MQTTRegistrar exposes a component over MQTT.
// *mqttcomponent.Registrar satisfies it.
type MQTTRegistrar interface {
	Register(ctx context.Context, c mqttcomponent.Component, cfg schema.Config) error
}

// Registry records declared objects and the node's text inputs.
// *core.App satisfies it.
type Registry interface {
	HasID(id string) bool
	Declare(id string, obj any) error
	RegisterTextInput(t *TextInput)
}

// Deps are the collaborators of Setup. MQTT may be nil when the node
// runs without a broker.
type Deps struct {
	Registry    Registry
	Entities    EntitySetup
	Automations AutomationBuilder
	MQTT        MQTTRegistrar
	Logger      Logger
}

// Setup creates and registers text inputs from validated configuration.
type Setup struct {
	registry    Registry
	entities    EntitySetup
	automations AutomationBuilder
	mqtt        MQTTRegistrar
	logger      Logger

	mu   sync.Mutex
	done map[*TextInput]struct{}
}

// NewSetup returns a Setup using deps.
func NewSetup(deps Deps) *Setup {
	logger := deps.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return &Setup{
		registry:    deps.Registry,
		entities:    deps.Entities,
		automations: deps.Automations,
		mqtt:        deps.MQTT,
		logger:      logger,
		done:        make(map[*TextInput]struct{}),
	}
}

// triggerArgs is the argument list of on_value automations: the new
// value, as a string named x.
var triggerArgs = []automation.Arg{{Type: automation.ArgString, Name: "x"}}

// Register binds t to cfg's id and declares it unless the id is already
// known, adds it to the node's text inputs and runs the setup sequence.
// The setup sequence runs once per instance; later calls only make sure
// t is registered.
//
// Parameters:
//   - ctx: Context passed to every collaborator
//   - t: Text input to register
//   - cfg: Validated text_input entry
//
// Returns:
//   - error: The first collaborator error, wrapped
func (s *Setup) Register(ctx context.Context, t *TextInput, cfg schema.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := cfg.String(ConfID)
	if !s.registry.HasID(id) {
		t.SetID(id)
		if err := s.registry.Declare(id, t); err != nil {
			return fmt.Errorf("declaring text input %s: %w", id, err)
		}
	}
	s.registry.RegisterTextInput(t)

	// Triggers and MQTT callbacks must be attached once per instance.
	if _, ok := s.done[t]; ok {
		s.logger.Debug("text input already set up", "id", t.ID())
		return nil
	}
	if err := s.setup(ctx, t, cfg); err != nil {
		return err
	}
	s.done[t] = struct{}{}
	return nil
}

// New allocates a text input declared under cfg's id and registers it.
func (s *Setup) New(ctx context.Context, cfg schema.Config) (*TextInput, error) {
	id := cfg.String(ConfID)
	t := NewTextInput(id)
	if err := s.registry.Declare(id, t); err != nil {
		return nil, fmt.Errorf("declaring text input %s: %w", id, err)
	}
	if err := s.Register(ctx, t, cfg); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Setup) setup(ctx context.Context, t *TextInput, cfg schema.Config) error {
	id := t.ID()

	if err := s.entities.Setup(ctx, t, cfg); err != nil {
		return fmt.Errorf("entity setup for %s: %w", id, err)
	}

	mode, ok := schema.Value[Mode](cfg, ConfMode)
	if !ok {
		mode = ModeAuto
	}
	t.Traits.SetMode(mode)

	for i, conf := range cfg.List(ConfOnValue) {
		trigger := NewStateTrigger(conf.String(ConfTriggerID), t)
		if err := s.automations.Build(ctx, trigger, triggerArgs, conf); err != nil {
			return fmt.Errorf("building on_value[%d] for %s: %w", i, id, err)
		}
	}

	if cfg.Has(ConfMQTTID) {
		if s.mqtt == nil {
			return fmt.Errorf("%w: %s", ErrNoMQTT, id)
		}
		shadow := mqttcomponent.NewTextInput(t)
		if err := s.mqtt.Register(ctx, shadow, cfg); err != nil {
			return fmt.Errorf("registering mqtt for %s: %w", id, err)
		}
	}

	s.logger.Debug("text input set up",
		"id", id,
		"mode", mode.String(),
		"on_value", len(cfg.List(ConfOnValue)),
		"mqtt", cfg.Has(ConfMQTTID),
	)
	return nil
}
