package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color int

const (
	colorRed color = iota
	colorGreen
)

var colors = map[string]color{"RED": colorRed, "GREEN": colorGreen}

func testSchema() Schema {
	return New(
		GenerateID("id", "widget"),
		Required("name", String),
		Optional("color", Enum(colors, true)).Default("RED"),
		Optional("count", IntRange(0, 10)),
		OnlyWith("mqtt_id", "mqtt", "mqtt_widget"),
	)
}

func TestValidate_Defaults(t *testing.T) {
	cfg, err := testSchema().Validate(map[string]any{"name": "Hall"}, NewContext())
	require.NoError(t, err)

	assert.Equal(t, "widget_1", cfg.String("id"))
	assert.Equal(t, "Hall", cfg.String("name"))
	assert.Equal(t, colorRed, cfg.Get("color"))
	assert.False(t, cfg.Has("count"))
	assert.False(t, cfg.Has("mqtt_id"))
}

func TestValidate_EnumCaseInsensitive(t *testing.T) {
	for _, in := range []string{"green", "Green", "GREEN"} {
		t.Run(in, func(t *testing.T) {
			cfg, err := testSchema().Validate(map[string]any{"name": "x", "color": in}, nil)
			require.NoError(t, err)

			got, ok := Value[color](cfg, "color")
			require.True(t, ok)
			assert.Equal(t, colorGreen, got)
		})
	}
}

func TestValidate_EnumRejectsUnknown(t *testing.T) {
	_, err := testSchema().Validate(map[string]any{"name": "x", "color": "blue"}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "color: unknown value \"blue\": not one of the allowed values [GREEN, RED]")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	_, err := testSchema().Validate(map[string]any{"count": 11, "shape": "round"}, nil)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 3)
	assert.Equal(t, "name: required key not provided", errs[0].Error())
	assert.Equal(t, "count: value 11 must be between 0 and 10", errs[1].Error())
	assert.Equal(t, "shape: extra keys not allowed", errs[2].Error())
}

func TestValidate_NilTreatedAsAbsent(t *testing.T) {
	cfg, err := testSchema().Validate(map[string]any{"name": "x", "count": nil}, nil)
	require.NoError(t, err)
	assert.False(t, cfg.Has("count"))
}

func TestOnlyWith(t *testing.T) {
	t.Run("feature enabled generates id", func(t *testing.T) {
		cfg, err := testSchema().Validate(map[string]any{"name": "x"}, NewContext("mqtt"))
		require.NoError(t, err)
		assert.Equal(t, "mqtt_widget_1", cfg.String("mqtt_id"))
	})

	t.Run("feature enabled keeps user id", func(t *testing.T) {
		cfg, err := testSchema().Validate(map[string]any{"name": "x", "mqtt_id": "hall_mqtt"}, NewContext("mqtt"))
		require.NoError(t, err)
		assert.Equal(t, "hall_mqtt", cfg.String("mqtt_id"))
	})

	t.Run("feature disabled rejects user id", func(t *testing.T) {
		_, err := testSchema().Validate(map[string]any{"name": "x", "mqtt_id": "hall_mqtt"}, NewContext())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mqtt_id: only allowed when mqtt is enabled")
	})
}

func TestGenerateID_UniquePerContext(t *testing.T) {
	ctx := NewContext()
	s := testSchema()

	first, err := s.Validate(map[string]any{"id": "widget_1", "name": "a"}, ctx)
	require.NoError(t, err)
	second, err := s.Validate(map[string]any{"name": "b"}, ctx)
	require.NoError(t, err)

	assert.Equal(t, "widget_1", first.String("id"))
	assert.Equal(t, "widget_2", second.String("id"))

	_, err = s.Validate(map[string]any{"id": "widget_1", "name": "c"}, ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `id: ID "widget_1" redefined`)
}

func TestGenerateID_SkipsReserved(t *testing.T) {
	ctx := NewContext()
	ctx.Reserve("widget_1")
	s := testSchema()

	generated, err := s.Validate(map[string]any{"name": "a"}, ctx)
	require.NoError(t, err)
	explicit, err := s.Validate(map[string]any{"id": "widget_1", "name": "b"}, ctx)
	require.NoError(t, err)

	assert.Equal(t, "widget_2", generated.String("id"))
	assert.Equal(t, "widget_1", explicit.String("id"))
}

func TestContext_Explicit(t *testing.T) {
	ctx := NewContext()
	s := testSchema()

	_, err := s.Validate(map[string]any{"name": "a"}, ctx)
	require.NoError(t, err)
	_, err = s.Validate(map[string]any{"id": "widget_1", "name": "b"}, ctx)
	require.Error(t, err)
	_, err = s.Validate(map[string]any{"id": "hall", "name": "c"}, ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"hall", "widget_1"}, ctx.Explicit())
}

func TestContext_Unresolved(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.Declare("hall"))

	for _, ref := range []string{"hall", "porch", "attic", "porch"} {
		_, err := IDRef(ctx, ref)
		require.NoError(t, err)
	}

	assert.True(t, ctx.Declared("hall"))
	assert.False(t, ctx.Declared("porch"))
	assert.Equal(t, []string{"porch", "attic"}, ctx.Unresolved())
}

func TestExtend_OverridesInPlace(t *testing.T) {
	base := New(
		Required("name", String),
		Optional("count", Int).Default(1),
	)
	extended := base.Extend(New(
		Optional("count", Int).Default(5),
		Optional("extra", Boolean),
	))

	assert.Equal(t, []string{"name", "count", "extra"}, extended.Keys())
	assert.Equal(t, []string{"name", "count"}, base.Keys())

	cfg, err := extended.Validate(map[string]any{"name": "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Int("count"))
}

func TestNestedListPaths(t *testing.T) {
	item := New(Required("delay", Duration))
	s := New(Optional("then", ListOf(Nested(item))))

	_, err := s.Validate(map[string]any{
		"then": []any{
			map[string]any{"delay": "1s"},
			map[string]any{"delay": "soon"},
		},
	}, nil)

	require.Error(t, err)
	assert.Equal(t, "then[1].delay: expected a non-negative duration, got soon", err.Error())
}

func TestListOf_SingleValue(t *testing.T) {
	v, err := ListOf(String)(NewContext(), "solo")
	require.NoError(t, err)
	assert.Equal(t, []any{"solo"}, v)
}

func TestConfigList(t *testing.T) {
	item := New(Required("delay", Duration))
	s := New(Optional("then", ListOf(Nested(item))))

	cfg, err := s.Validate(map[string]any{
		"then": []any{map[string]any{"delay": 250}},
	}, nil)
	require.NoError(t, err)

	list := cfg.List("then")
	require.Len(t, list, 1)
	assert.Equal(t, 250*time.Millisecond, list[0].Get("delay"))
}
