package mqttcomponent

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/gray-logic-textinput/internal/entity"
	"github.com/nerrad567/gray-logic-textinput/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

type published struct {
	topic    string
	payload  string
	qos      byte
	retained bool
}

type fakeClient struct {
	mu        sync.Mutex
	published []published
	handlers  map[string]mqtt.MessageHandler
	subErr    error
}

func newFakeClient() *fakeClient {
	return &fakeClient{handlers: make(map[string]mqtt.MessageHandler)}
}

func (c *fakeClient) Publish(topic string, payload []byte, qos byte, retained bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, published{topic, string(payload), qos, retained})
	return nil
}

func (c *fakeClient) Subscribe(topic string, _ byte, handler mqtt.MessageHandler) error {
	if c.subErr != nil {
		return c.subErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[topic] = handler
	return nil
}

func (c *fakeClient) on(topic string) []published {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []published
	for _, p := range c.published {
		if p.topic == topic {
			out = append(out, p)
		}
	}
	return out
}

type fakeSource struct {
	*entity.Base
	mu        sync.Mutex
	state     string
	hasState  bool
	callbacks []func(context.Context, string)
	sources   []string
}

func newFakeSource(id, name string) *fakeSource {
	s := &fakeSource{Base: entity.NewBase(id)}
	s.SetName(name)
	return s
}

func (s *fakeSource) State() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.hasState
}

func (s *fakeSource) Set(ctx context.Context, value string) error {
	if value == "reject" {
		return errors.New("rejected")
	}
	s.mu.Lock()
	s.state, s.hasState = value, true
	s.sources = append(s.sources, entity.SourceFrom(ctx))
	callbacks := append(([]func(context.Context, string))(nil), s.callbacks...)
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn(ctx, value)
	}
	return nil
}

func (s *fakeSource) AddOnStateCallback(fn func(ctx context.Context, value string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

func (s *fakeSource) MaxLength() int { return 255 }

func newTestRegistrar(client Client) *Registrar {
	return NewRegistrar(client, mqtt.NewTopics("hallway", "homeassistant"), Node{
		ID:              "hallway",
		Name:            "Hallway Panel",
		Version:         "1.2.3",
		DefaultQoS:      1,
		DefaultDiscover: true,
	})
}

func validated(t *testing.T, raw map[string]any) schema.Config {
	t.Helper()
	cfg, err := Schema().Validate(raw, nil)
	require.NoError(t, err)
	return cfg
}

func TestRegistrar_RegisterDefaults(t *testing.T) {
	client := newFakeClient()
	r := newTestRegistrar(client)
	src := newFakeSource("greeting", "Hallway Greeting")
	src.SetIcon("mdi:form-textbox")
	shadow := NewTextInput(src)

	require.NoError(t, r.Register(context.Background(), shadow, validated(t, map[string]any{})))

	s, ok := shadow.Settings()
	require.True(t, ok)
	assert.Equal(t, "hallway/text/hallway_greeting/state", s.StateTopic)
	assert.Equal(t, "hallway/text/hallway_greeting/command", s.CommandTopic)
	assert.Equal(t, byte(1), s.QoS)
	assert.True(t, s.Retain)
	assert.Contains(t, client.handlers, s.CommandTopic)

	disc := client.on("homeassistant/text/hallway/hallway_greeting/config")
	require.Len(t, disc, 1)
	assert.True(t, disc[0].retained)

	var d Discovery
	require.NoError(t, json.Unmarshal([]byte(disc[0].payload), &d))
	assert.Equal(t, "Hallway Greeting", d.Name)
	assert.Equal(t, "hallway_text_hallway_greeting", d.UniqueID)
	assert.Equal(t, s.StateTopic, d.StateTopic)
	assert.Equal(t, s.CommandTopic, d.CommandTopic)
	assert.Equal(t, "hallway/status", d.AvailabilityTopic)
	assert.Equal(t, "text", d.Mode)
	assert.Equal(t, 255, d.Max)
	assert.Equal(t, "mdi:form-textbox", d.Icon)
	assert.Nil(t, d.EnabledByDefault)
	assert.Equal(t, []string{"hallway"}, d.Device.Identifiers)
	assert.Equal(t, "1.2.3", d.Device.SWVersion)

	assert.Equal(t, []Component{shadow}, r.Components())
}

func TestRegistrar_RegisterOverrides(t *testing.T) {
	client := newFakeClient()
	r := newTestRegistrar(client)
	src := newFakeSource("greeting", "Greeting")
	src.SetDisabledByDefault(true)
	src.SetCategory(entity.CategoryConfig)
	shadow := NewTextInput(src)

	cfg := validated(t, map[string]any{
		"retain":        false,
		"qos":           2,
		"state_topic":   "custom/greeting",
		"command_topic": "custom/greeting/set",
		"availability":  map[string]any{"topic": "custom/status"},
	})
	require.NoError(t, r.Register(context.Background(), shadow, cfg))

	s, _ := shadow.Settings()
	assert.Equal(t, "custom/greeting", s.StateTopic)
	assert.Equal(t, "custom/greeting/set", s.CommandTopic)
	assert.Equal(t, byte(2), s.QoS)
	assert.False(t, s.Retain)
	assert.Equal(t, "custom/status", s.AvailabilityTopic)
	assert.Equal(t, "online", s.PayloadAvailable)

	disc := client.on("homeassistant/text/hallway/greeting/config")
	require.Len(t, disc, 1)
	var d Discovery
	require.NoError(t, json.Unmarshal([]byte(disc[0].payload), &d))
	require.NotNil(t, d.EnabledByDefault)
	assert.False(t, *d.EnabledByDefault)
	assert.Equal(t, "config", d.EntityCategory)
}

func TestRegistrar_DiscoveryDisabled(t *testing.T) {
	client := newFakeClient()
	r := newTestRegistrar(client)
	shadow := NewTextInput(newFakeSource("greeting", "Greeting"))

	require.NoError(t, r.Register(context.Background(), shadow, validated(t, map[string]any{"discovery": false})))
	assert.Empty(t, client.on("homeassistant/text/hallway/greeting/config"))

	r.RepublishDiscovery()
	assert.Empty(t, client.on("homeassistant/text/hallway/greeting/config"))
}

func TestRegistrar_StateAndCommand(t *testing.T) {
	client := newFakeClient()
	r := newTestRegistrar(client)
	src := newFakeSource("greeting", "Greeting")
	require.NoError(t, src.Set(context.Background(), "initial"))
	shadow := NewTextInput(src)

	require.NoError(t, r.Register(context.Background(), shadow, validated(t, map[string]any{})))

	state := "hallway/text/greeting/state"
	require.Len(t, client.on(state), 1, "current value is published on register")
	assert.Equal(t, "initial", client.on(state)[0].payload)

	handler := client.handlers["hallway/text/greeting/command"]
	require.NotNil(t, handler)
	require.NoError(t, handler("hallway/text/greeting/command", []byte("from broker")))

	v, _ := src.State()
	assert.Equal(t, "from broker", v)
	assert.Equal(t, entity.SourceMQTT, src.sources[len(src.sources)-1])

	msgs := client.on(state)
	require.Len(t, msgs, 2)
	assert.Equal(t, "from broker", msgs[1].payload)
	assert.True(t, msgs[1].retained)

	err := handler("hallway/text/greeting/command", []byte("reject"))
	assert.Error(t, err)
}

func TestRegistrar_InternalEntity(t *testing.T) {
	client := newFakeClient()
	r := newTestRegistrar(client)
	src := newFakeSource("greeting", "Greeting")
	src.SetInternal(true)
	shadow := NewTextInput(src)

	require.NoError(t, r.Register(context.Background(), shadow, validated(t, map[string]any{})))
	assert.Empty(t, client.handlers)
	assert.Empty(t, client.published)
	assert.Len(t, r.Components(), 1)
}

func TestRegistrar_Errors(t *testing.T) {
	shadow := NewTextInput(newFakeSource("greeting", "Greeting"))

	err := newTestRegistrar(nil).Register(context.Background(), shadow, schema.Config{})
	assert.ErrorIs(t, err, ErrNoClient)

	client := newFakeClient()
	client.subErr = errors.New("broker down")
	err = newTestRegistrar(client).Register(context.Background(), shadow, schema.Config{})
	assert.ErrorContains(t, err, "broker down")

	err = newTestRegistrar(newFakeClient()).Register(context.Background(), shadow,
		schema.Config{ConfStateTopic: ""})
	assert.ErrorIs(t, err, ErrEmptyTopic)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = newTestRegistrar(newFakeClient()).Register(ctx, shadow, schema.Config{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistrar_RepublishDiscovery(t *testing.T) {
	client := newFakeClient()
	r := newTestRegistrar(client)
	require.NoError(t, r.Register(context.Background(), NewTextInput(newFakeSource("a", "A")), schema.Config{}))
	require.NoError(t, r.Register(context.Background(), NewTextInput(newFakeSource("b", "B")), schema.Config{}))

	r.RepublishDiscovery()

	assert.Len(t, client.on("homeassistant/text/hallway/a/config"), 2)
	assert.Len(t, client.on("homeassistant/text/hallway/b/config"), 2)
}

func TestRegistrar_RepublishState(t *testing.T) {
	client := newFakeClient()
	r := newTestRegistrar(client)
	restored := newFakeSource("a", "A")
	empty := newFakeSource("b", "B")
	hidden := newFakeSource("c", "C")
	hidden.SetInternal(true)
	for _, src := range []*fakeSource{restored, empty, hidden} {
		require.NoError(t, r.Register(context.Background(), NewTextInput(src), schema.Config{}))
	}

	// Values restored without firing callbacks.
	restored.state, restored.hasState = "from history", true
	hidden.state, hidden.hasState = "secret", true

	r.RepublishState()

	msgs := client.on("hallway/text/a/state")
	require.Len(t, msgs, 1)
	assert.Equal(t, "from history", msgs[0].payload)
	assert.True(t, msgs[0].retained)
	assert.Empty(t, client.on("hallway/text/b/state"))
	assert.Empty(t, client.on("hallway/text/c/state"))
}

func TestSchema_Availability(t *testing.T) {
	_, err := Schema().Validate(map[string]any{"availability": map[string]any{}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "availability.topic: required key not provided")

	_, err = Schema().Validate(map[string]any{"qos": 3}, nil)
	assert.ErrorIs(t, err, schema.ErrInvalid)
}
