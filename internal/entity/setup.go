package entity

import (
	"context"
	"fmt"

	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

// Configuration keys of the entity base.
const (
	ConfName              = "name"
	ConfIcon              = "icon"
	ConfInternal          = "internal"
	ConfDisabledByDefault = "disabled_by_default"
	ConfEntityCategory    = "entity_category"
)

var categories = map[string]Category{
	"config":     CategoryConfig,
	"diagnostic": CategoryDiagnostic,
}

// Schema returns the fields every entity accepts.
func Schema() schema.Schema {
	return schema.New(
		schema.Required(ConfName, schema.String),
		schema.Optional(ConfIcon, schema.Icon),
		schema.Optional(ConfInternal, schema.Boolean),
		schema.Optional(ConfDisabledByDefault, schema.Boolean).Default(false),
		schema.Optional(ConfEntityCategory, validateCategory),
	)
}

func validateCategory(ctx *schema.Context, value any) (any, error) {
	v, err := schema.OneOf("config", "diagnostic")(ctx, value)
	if err != nil {
		return nil, err
	}
	return categories[v.(string)], nil
}

// Entity is anything built on a Base.
type Entity interface {
	EntityBase() *Base
}

// Logger is the logging interface used by Setup.
type Logger interface {
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}

// Setup applies the entity-base part of a validated configuration.
type Setup struct {
	logger Logger
}

// NewSetup returns a Setup. A nil logger discards output.
func NewSetup(logger Logger) *Setup {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Setup{logger: logger}
}

// Setup sets name, icon and flags on e from cfg.
func (s *Setup) Setup(ctx context.Context, e Entity, cfg schema.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := e.EntityBase()
	name := cfg.String(ConfName)
	if name == "" {
		return fmt.Errorf("%w: %s", ErrNameRequired, b.ID())
	}
	b.SetName(name)

	if cfg.Has(ConfIcon) {
		b.SetIcon(cfg.String(ConfIcon))
	}
	if cfg.Has(ConfInternal) {
		b.SetInternal(cfg.Bool(ConfInternal))
	}
	b.SetDisabledByDefault(cfg.Bool(ConfDisabledByDefault))
	if c, ok := schema.Value[Category](cfg, ConfEntityCategory); ok {
		b.SetCategory(c)
	}

	s.logger.Debug("entity configured", "id", b.ID(), "name", name, "object_id", b.ObjectID())
	return nil
}
