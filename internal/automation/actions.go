package automation

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/nerrad567/gray-logic-textinput/internal/entity"
	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

// Action catalog names.
const (
	ActionLoggerLog    = "logger.log"
	ActionDelay        = "delay"
	ActionMQTTPublish  = "mqtt.publish"
	ActionTextInputSet = "text_input.set"
)

type actionDef struct {
	validate func(ctx *schema.Context, value any) (schema.Config, error)
	build    func(b *Builder, conf schema.Config) (Action, error)
}

var (
	logSchema = schema.New(
		schema.Required("format", templateString),
		schema.Optional("level", schema.OneOf("debug", "info", "warn", "error")).Default("debug"),
	)

	mqttPublishSchema = schema.New(
		schema.Required("topic", templateString),
		schema.Required("payload", templateString),
		schema.Optional("qos", schema.IntRange(0, 2)).Default(0),
		schema.Optional("retain", schema.Boolean).Default(false),
	)

	textInputSetSchema = schema.New(
		schema.Required("id", schema.IDRef),
		schema.Required("value", templateString),
	)
)

// actionCatalog is the fixed set of actions an automation may use.
var actionCatalog = map[string]actionDef{
	ActionLoggerLog:    {validate: shorthand("format", logSchema), build: (*Builder).buildLog},
	ActionDelay:        {validate: validateDelay, build: (*Builder).buildDelay},
	ActionMQTTPublish:  {validate: nested(mqttPublishSchema), build: (*Builder).buildMQTTPublish},
	ActionTextInputSet: {validate: nested(textInputSetSchema), build: (*Builder).buildTextInputSet},
}

func validateDelay(ctx *schema.Context, value any) (schema.Config, error) {
	d, err := schema.Duration(ctx, value)
	if err != nil {
		return nil, err
	}
	return schema.Config{"duration": d}, nil
}

func parseTemplate(name, text string) (*template.Template, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTemplate, name, err)
	}
	return t, nil
}

func render(t *template.Template, vars Vars) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("rendering %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// ─── logger.log ─────────────────────────────────────────────────────────────

type logAction struct {
	format *template.Template
	level  string
	logger Logger
}

func (b *Builder) buildLog(conf schema.Config) (Action, error) {
	t, err := parseTemplate("format", conf.String("format"))
	if err != nil {
		return nil, err
	}
	return &logAction{format: t, level: conf.String("level"), logger: b.logger}, nil
}

func (a *logAction) Name() string { return ActionLoggerLog }

func (a *logAction) Play(_ context.Context, vars Vars) error {
	msg, err := render(a.format, vars)
	if err != nil {
		return err
	}
	switch a.level {
	case "error":
		a.logger.Error(msg)
	case "warn":
		a.logger.Warn(msg)
	case "info":
		a.logger.Info(msg)
	default:
		a.logger.Debug(msg)
	}
	return nil
}

// ─── delay ──────────────────────────────────────────────────────────────────

type delayAction struct {
	duration time.Duration
}

func (b *Builder) buildDelay(conf schema.Config) (Action, error) {
	d, _ := schema.Value[time.Duration](conf, "duration")
	return &delayAction{duration: d}, nil
}

func (a *delayAction) Name() string { return ActionDelay }

func (a *delayAction) Play(ctx context.Context, _ Vars) error {
	timer := time.NewTimer(a.duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("delay interrupted: %w", ctx.Err())
	}
}

// ─── mqtt.publish ───────────────────────────────────────────────────────────

type mqttPublishAction struct {
	topic   *template.Template
	payload *template.Template
	qos     byte
	retain  bool
	builder *Builder
}

func (b *Builder) buildMQTTPublish(conf schema.Config) (Action, error) {
	topic, err := parseTemplate("topic", conf.String("topic"))
	if err != nil {
		return nil, err
	}
	payload, err := parseTemplate("payload", conf.String("payload"))
	if err != nil {
		return nil, err
	}
	return &mqttPublishAction{
		topic:   topic,
		payload: payload,
		qos:     byte(conf.Int("qos")), //nolint:gosec // validated to 0-2
		retain:  conf.Bool("retain"),
		builder: b,
	}, nil
}

func (a *mqttPublishAction) Name() string { return ActionMQTTPublish }

func (a *mqttPublishAction) Play(_ context.Context, vars Vars) error {
	pub := a.builder.publisher()
	if pub == nil {
		return ErrMQTTUnavailable
	}

	topic, err := render(a.topic, vars)
	if err != nil {
		return err
	}
	payload, err := render(a.payload, vars)
	if err != nil {
		return err
	}

	if err := pub.Publish(topic, []byte(payload), a.qos, a.retain); err != nil {
		return fmt.Errorf("publishing to %q: %w", topic, err)
	}
	return nil
}

// ─── text_input.set ─────────────────────────────────────────────────────────

// Setter is implemented by entities that accept a new value from an action.
type Setter interface {
	Set(ctx context.Context, value string) error
}

type textInputSetAction struct {
	id      string
	value   *template.Template
	builder *Builder
}

func (b *Builder) buildTextInputSet(conf schema.Config) (Action, error) {
	value, err := parseTemplate("value", conf.String("value"))
	if err != nil {
		return nil, err
	}
	return &textInputSetAction{id: conf.String("id"), value: value, builder: b}, nil
}

func (a *textInputSetAction) Name() string { return ActionTextInputSet }

// Play resolves the target at run time so actions may reference entities
// declared later in the manifest.
func (a *textInputSetAction) Play(ctx context.Context, vars Vars) error {
	if a.builder.entities == nil {
		return fmt.Errorf("%w: %s", ErrTargetNotFound, a.id)
	}
	target, ok := a.builder.entities.Get(a.id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTargetNotFound, a.id)
	}
	setter, ok := target.(Setter)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTargetNotSettable, a.id)
	}

	value, err := render(a.value, vars)
	if err != nil {
		return err
	}
	return setter.Set(entity.WithSource(ctx, entity.SourceAutomation), value)
}
