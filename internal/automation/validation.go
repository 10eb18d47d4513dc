package automation

import (
	"fmt"
	"sort"
	"text/template"

	"github.com/nerrad567/gray-logic-textinput/internal/schema"
)

// Configuration keys of an automation block.
const (
	ConfAutomationID = "automation_id"
	ConfThen         = "then"
)

// ActionSpec is a validated entry of a then: list.
type ActionSpec struct {
	Name   string
	Config schema.Config
}

// MarshalYAML renders the action in manifest form: {name: config}.
func (a ActionSpec) MarshalYAML() (any, error) {
	return map[string]any{a.Name: map[string]any(a.Config)}, nil
}

// ValidateAutomation returns a validator for an automation list such as
// on_value. Three shapes are accepted and normalised to a list of blocks:
//
//	on_value:              # one automation
//	  then: [...]
//	on_value:              # several automations
//	  - then: [...]
//	  - then: [...]
//	on_value:              # bare action list, shorthand for one automation
//	  - logger.log: "..."
//
// Each block gets a generated automation_id; extra adds trigger-specific
// fields such as trigger_id.
func ValidateAutomation(extra schema.Schema) schema.Validator {
	block := extra.Extend(schema.New(
		schema.GenerateID(ConfAutomationID, "automation"),
		schema.Required(ConfThen, schema.ListOf(validateAction)),
	)).Validator()

	one := func(ctx *schema.Context, raw map[string]any) (any, error) {
		v, err := block(ctx, raw)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}

	return func(ctx *schema.Context, value any) (any, error) {
		switch v := value.(type) {
		case []any:
			if isAutomationList(v) {
				return schema.ListOf(block)(ctx, v)
			}
			return one(ctx, map[string]any{ConfThen: v})
		case map[string]any:
			if _, ok := v[ConfThen]; ok {
				return one(ctx, v)
			}
			return one(ctx, map[string]any{ConfThen: v})
		default:
			return one(ctx, map[string]any{ConfThen: v})
		}
	}
}

func isAutomationList(items []any) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := m[ConfThen]; !ok {
			return false
		}
	}
	return true
}

// validateAction checks a single-key action mapping against the catalog.
func validateAction(ctx *schema.Context, value any) (any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, &schema.Error{Message: fmt.Sprintf("expected an action mapping, got %T", value)}
	}
	if len(m) != 1 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, &schema.Error{Message: fmt.Sprintf("an action must have exactly one key, got %v", keys)}
	}

	for name, raw := range m {
		def, ok := actionCatalog[name]
		if !ok {
			return nil, &schema.Error{Path: []string{name}, Message: "unknown action"}
		}
		cfg, err := def.validate(ctx, raw)
		if err != nil {
			return nil, schema.Prefix(name, err)
		}
		return ActionSpec{Name: name, Config: cfg}, nil
	}
	return nil, nil
}

// templateString accepts a string that parses as a text/template.
func templateString(ctx *schema.Context, value any) (any, error) {
	v, err := schema.String(ctx, value)
	if err != nil {
		return nil, err
	}
	if _, err := template.New("").Parse(v.(string)); err != nil {
		return nil, &schema.Error{Message: fmt.Sprintf("invalid template: %v", err)}
	}
	return v, nil
}

// shorthand lets an action take a bare scalar in place of its mapping;
// the scalar becomes the value of key.
func shorthand(key string, s schema.Schema) func(*schema.Context, any) (schema.Config, error) {
	return func(ctx *schema.Context, value any) (schema.Config, error) {
		m, ok := value.(map[string]any)
		if !ok {
			m = map[string]any{key: value}
		}
		return s.Validate(m, ctx)
	}
}

// nested validates a mapping-only action body.
func nested(s schema.Schema) func(*schema.Context, any) (schema.Config, error) {
	return func(ctx *schema.Context, value any) (schema.Config, error) {
		v, err := s.Validator()(ctx, value)
		if err != nil {
			return nil, err
		}
		return v.(schema.Config), nil
	}
}
