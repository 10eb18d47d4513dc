package textinput

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nerrad567/gray-logic-textinput/internal/automation"
	"github.com/nerrad567/gray-logic-textinput/internal/entity"
	"github.com/nerrad567/gray-logic-textinput/internal/mqttcomponent"
	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

var errDuplicate = errors.New("duplicate id")

// callLog records collaborator calls across fakes in call order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeRegistry struct {
	log      *callLog
	objects  map[string]any
	declares int
	inputs   []*TextInput
}

func newFakeRegistry(log *callLog) *fakeRegistry {
	return &fakeRegistry{log: log, objects: make(map[string]any)}
}

func (r *fakeRegistry) HasID(id string) bool {
	_, ok := r.objects[id]
	return ok
}

func (r *fakeRegistry) Declare(id string, obj any) error {
	if _, ok := r.objects[id]; ok {
		return fmt.Errorf("%w: %s", errDuplicate, id)
	}
	r.declares++
	r.objects[id] = obj
	r.log.add("declare %s", id)
	return nil
}

func (r *fakeRegistry) RegisterTextInput(t *TextInput) {
	for _, existing := range r.inputs {
		if existing.ID() == t.ID() {
			return
		}
	}
	r.inputs = append(r.inputs, t)
	r.log.add("register %s", t.ID())
}

type fakeEntitySetup struct {
	log *callLog
	err error
}

func (f *fakeEntitySetup) Setup(_ context.Context, e entity.Entity, cfg schema.Config) error {
	f.log.add("entity %s", e.EntityBase().ID())
	if f.err != nil {
		return f.err
	}
	e.EntityBase().SetName(cfg.String(entity.ConfName))
	return nil
}

type builtTrigger struct {
	trigger *StateTrigger
	args    []automation.Arg
	conf    schema.Config
	mode    Mode
}

type fakeBuilder struct {
	log   *callLog
	built []builtTrigger
	err   error
}

func (f *fakeBuilder) Build(_ context.Context, trigger automation.Trigger, args []automation.Arg, conf schema.Config) error {
	st := trigger.(*StateTrigger)
	f.log.add("trigger %s", trigger.TriggerID())
	if f.err != nil {
		return f.err
	}
	f.built = append(f.built, builtTrigger{
		trigger: st,
		args:    args,
		conf:    conf,
		mode:    st.Parent().Traits.Mode(),
	})
	return nil
}

type fakeMQTT struct {
	log        *callLog
	components []mqttcomponent.Component
	err        error
}

func (f *fakeMQTT) Register(_ context.Context, c mqttcomponent.Component, _ schema.Config) error {
	f.log.add("mqtt %s", c.Entity().ID())
	if f.err != nil {
		return f.err
	}
	f.components = append(f.components, c)
	return nil
}

type fixture struct {
	log      *callLog
	registry *fakeRegistry
	entities *fakeEntitySetup
	builder  *fakeBuilder
	mqtt     *fakeMQTT
	setup    *Setup
}

func newFixture() *fixture {
	log := &callLog{}
	f := &fixture{
		log:      log,
		registry: newFakeRegistry(log),
		entities: &fakeEntitySetup{log: log},
		builder:  &fakeBuilder{log: log},
		mqtt:     &fakeMQTT{log: log},
	}
	f.setup = NewSetup(Deps{
		Registry:    f.registry,
		Entities:    f.entities,
		Automations: f.builder,
		MQTT:        f.mqtt,
	})
	return f
}

func validate(t *testing.T, raw map[string]any, features ...string) schema.Config {
	t.Helper()
	cfg, err := Schema().Validate(raw, schema.NewContext(features...))
	require.NoError(t, err)
	return cfg
}

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Warn(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}

func (l *recordingLogger) Info(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.infos...)
}
