package mqttcomponent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nerrad567/gray-logic-textinput/internal/entity"
	"github.com/nerrad567/gray-logic-textinput/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

// Client is the MQTT capability the registrar needs. *mqtt.Client
// satisfies it.
type Client interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Logger defines the logging interface used by the Registrar.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Node describes the device all components belong to.
type Node struct {
	ID              string
	Name            string
	Version         string
	DefaultQoS      byte
	DefaultDiscover bool
}

// Registrar publishes and subscribes on behalf of components.
type Registrar struct {
	client Client
	topics mqtt.Topics
	node   Node
	logger Logger

	mu         sync.RWMutex
	components []Component
}

// NewRegistrar creates a registrar.
//
// Parameters:
//   - client: Connected MQTT client
//   - topics: Topic builder for this node
//   - node: Device identity and defaults for components
func NewRegistrar(client Client, topics mqtt.Topics, node Node) *Registrar {
	if node.Name == "" {
		node.Name = node.ID
	}
	return &Registrar{client: client, topics: topics, node: node, logger: noopLogger{}}
}

// SetLogger sets the logger for the registrar.
func (r *Registrar) SetLogger(logger Logger) {
	r.logger = logger
}

// Register resolves c's settings from cfg, subscribes to its command
// topic, starts forwarding its state and publishes discovery.
// Internal entities are recorded but never exposed.
func (r *Registrar) Register(ctx context.Context, c Component, cfg schema.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.client == nil {
		return ErrNoClient
	}

	e := c.Entity()
	s := r.resolve(c, cfg)
	if s.StateTopic == "" || s.CommandTopic == "" {
		return fmt.Errorf("%w: %s", ErrEmptyTopic, e.ID())
	}
	c.ComponentBase().set(s)

	r.mu.Lock()
	r.components = append(r.components, c)
	r.mu.Unlock()

	if e.Internal() {
		r.logger.Debug("internal entity not exposed over MQTT", "id", e.ID())
		return nil
	}

	if err := r.client.Subscribe(s.CommandTopic, s.QoS, r.commandHandler(c)); err != nil {
		return fmt.Errorf("subscribing %s: %w", s.CommandTopic, err)
	}

	c.OnState(func(_ context.Context, payload string) {
		if err := r.client.Publish(s.StateTopic, []byte(payload), s.QoS, s.Retain); err != nil {
			r.logger.Warn("publishing state failed", "id", e.ID(), "topic", s.StateTopic, "error", err)
		}
	})

	if s.Discovery {
		if err := r.PublishDiscovery(c); err != nil {
			return err
		}
	}

	r.logger.Info("mqtt component registered",
		"id", e.ID(),
		"state_topic", s.StateTopic,
		"command_topic", s.CommandTopic,
	)
	return nil
}

// PublishDiscovery sends c's retained discovery message.
func (r *Registrar) PublishDiscovery(c Component) error {
	s, _ := c.ComponentBase().Settings()
	e := c.Entity()

	payload, err := json.Marshal(r.discovery(c, s))
	if err != nil {
		return fmt.Errorf("encoding discovery for %s: %w", e.ID(), err)
	}
	topic := r.topics.Discovery(c.Domain(), r.node.ID, e.ObjectID())
	if err := r.client.Publish(topic, payload, 1, true); err != nil {
		return fmt.Errorf("publishing discovery for %s: %w", e.ID(), err)
	}
	return nil
}

// RepublishDiscovery resends discovery for every exposed component,
// e.g. after Home Assistant restarts.
func (r *Registrar) RepublishDiscovery() {
	for _, c := range r.Components() {
		s, ok := c.ComponentBase().Settings()
		if !ok || !s.Discovery || c.Entity().Internal() {
			continue
		}
		if err := r.PublishDiscovery(c); err != nil {
			r.logger.Warn("republishing discovery failed", "id", c.Entity().ID(), "error", err)
		}
	}
}

// stateful is implemented by components that can report their current
// value.
type stateful interface {
	CurrentState() (string, bool)
}

// RepublishState sends the current value of every exposed component
// that has one, e.g. after values were restored from history or the
// broker lost its retained messages.
func (r *Registrar) RepublishState() {
	for _, c := range r.Components() {
		s, ok := c.ComponentBase().Settings()
		if !ok || c.Entity().Internal() {
			continue
		}
		sc, ok := c.(stateful)
		if !ok {
			continue
		}
		v, ok := sc.CurrentState()
		if !ok {
			continue
		}
		if err := r.client.Publish(s.StateTopic, []byte(v), s.QoS, s.Retain); err != nil {
			r.logger.Warn("republishing state failed", "id", c.Entity().ID(), "error", err)
		}
	}
}

// Components returns the registered components in registration order.
func (r *Registrar) Components() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Component(nil), r.components...)
}

func (r *Registrar) resolve(c Component, cfg schema.Config) Settings {
	objectID := c.Entity().ObjectID()
	s := Settings{
		StateTopic:          r.topics.EntityState(c.Domain(), objectID),
		CommandTopic:        r.topics.EntityCommand(c.Domain(), objectID),
		QoS:                 r.node.DefaultQoS,
		Retain:              true,
		Discovery:           r.node.DefaultDiscover,
		AvailabilityTopic:   r.topics.Availability(),
		PayloadAvailable:    mqtt.PayloadOnline,
		PayloadNotAvailable: mqtt.PayloadOffline,
	}

	if cfg.Has(ConfStateTopic) {
		s.StateTopic = cfg.String(ConfStateTopic)
	}
	if cfg.Has(ConfCommandTopic) {
		s.CommandTopic = cfg.String(ConfCommandTopic)
	}
	if cfg.Has(ConfQoS) {
		s.QoS = byte(cfg.Int(ConfQoS))
	}
	if cfg.Has(ConfRetain) {
		s.Retain = cfg.Bool(ConfRetain)
	}
	if cfg.Has(ConfDiscovery) {
		s.Discovery = cfg.Bool(ConfDiscovery)
	}
	if cfg.Has(ConfAvailability) {
		a := cfg.Map(ConfAvailability)
		s.AvailabilityTopic = a.String(ConfTopic)
		s.PayloadAvailable = a.String(ConfPayloadAvailable)
		s.PayloadNotAvailable = a.String(ConfPayloadNotAvailable)
	}
	return s
}

func (r *Registrar) discovery(c Component, s Settings) Discovery {
	e := c.Entity()
	d := Discovery{
		Name:                e.Name(),
		UniqueID:            r.node.ID + "_" + c.Domain() + "_" + e.ObjectID(),
		ObjectID:            e.ObjectID(),
		StateTopic:          s.StateTopic,
		CommandTopic:        s.CommandTopic,
		AvailabilityTopic:   s.AvailabilityTopic,
		PayloadAvailable:    s.PayloadAvailable,
		PayloadNotAvailable: s.PayloadNotAvailable,
		QoS:                 int(s.QoS),
		Retain:              s.Retain,
		Icon:                e.Icon(),
		EntityCategory:      e.Category().String(),
		Device: Device{
			Identifiers:  []string{r.node.ID},
			Name:         r.node.Name,
			Manufacturer: "Gray Logic",
			Model:        "textinputd",
			SWVersion:    r.node.Version,
		},
	}
	if e.DisabledByDefault() {
		enabled := false
		d.EnabledByDefault = &enabled
	}
	c.Describe(&d)
	return d
}

func (r *Registrar) commandHandler(c Component) mqtt.MessageHandler {
	return func(topic string, payload []byte) error {
		ctx := entity.WithSource(context.Background(), entity.SourceMQTT)
		if err := c.Command(ctx, string(payload)); err != nil {
			return fmt.Errorf("command on %s: %w", topic, err)
		}
		r.logger.Debug("command applied", "id", c.Entity().ID(), "topic", topic)
		return nil
	}
}
