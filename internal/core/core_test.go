package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/gray-logic-textinput/internal/automation"
	"github.com/nerrad567/gray-logic-textinput/internal/entity"
	"github.com/nerrad567/gray-logic-textinput/internal/schema"
	"github.com/nerrad567/gray-logic-textinput/internal/textinput"
)

func TestIDRegistry(t *testing.T) {
	r := NewIDRegistry()
	assert.False(t, r.HasID("greeting"))

	obj := struct{ n int }{1}
	require.NoError(t, r.Declare("greeting", obj))
	assert.True(t, r.HasID("greeting"))

	got, ok := r.Get("greeting")
	assert.True(t, ok)
	assert.Equal(t, obj, got)

	err := r.Declare("greeting", "other")
	assert.ErrorIs(t, err, ErrDuplicateID)

	require.NoError(t, r.Declare("alpha", 1))
	assert.Equal(t, []string{"alpha", "greeting"}, r.IDs())
	assert.Equal(t, 2, r.Len())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestApp_RegisterTextInput(t *testing.T) {
	app := NewApp()
	a := textinput.NewTextInput("a")
	b := textinput.NewTextInput("b")

	app.RegisterTextInput(a)
	app.RegisterTextInput(b)
	app.RegisterTextInput(a)

	inputs := app.TextInputs()
	require.Len(t, inputs, 2)
	assert.Same(t, a, inputs[0])
	assert.Same(t, b, inputs[1])

	got, ok := app.TextInput("b")
	assert.True(t, ok)
	assert.Same(t, b, got)
}

func newTextInputSetup(app *App) *textinput.Setup {
	engine := automation.NewEngine(nil, nil, nil)
	return textinput.NewSetup(textinput.Deps{
		Registry:    app,
		Entities:    entity.NewSetup(nil),
		Automations: automation.NewBuilder(engine, app, nil),
	})
}

func TestCatalog(t *testing.T) {
	app := NewApp()
	catalog := NewCatalog(newTextInputSetup(app))

	assert.Equal(t, []string{textinput.Domain}, catalog.Domains())

	_, err := catalog.Lookup("number")
	assert.ErrorIs(t, err, ErrUnknownDomain)

	d, err := catalog.Lookup(textinput.Domain)
	require.NoError(t, err)

	cfg, err := d.Schema().Validate(map[string]any{"name": "Greeting", "id": "greeting"}, schema.NewContext())
	require.NoError(t, err)
	require.NoError(t, d.Setup(context.Background(), cfg))

	ti, ok := app.TextInput("greeting")
	require.True(t, ok)
	assert.Equal(t, "Greeting", ti.Name())
	assert.True(t, app.HasID("greeting"))

	err = d.Setup(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, app.TextInputs(), 1)
}

func TestApp_RegisterBindsConfiguredID(t *testing.T) {
	app := NewApp()
	setup := newTextInputSetup(app)

	cfg, err := textinput.Schema().Validate(map[string]any{"name": "Greeting", "id": "greeting"}, nil)
	require.NoError(t, err)

	ti := textinput.NewTextInput("placeholder")
	require.NoError(t, setup.Register(context.Background(), ti, cfg))

	assert.Equal(t, "greeting", ti.ID())
	got, ok := app.TextInput("greeting")
	require.True(t, ok)
	assert.Same(t, ti, got)
	_, ok = app.TextInput("placeholder")
	assert.False(t, ok)
}

func TestApp_SatisfiesLookup(t *testing.T) {
	app := NewApp()
	setup := newTextInputSetup(app)

	cfg, err := textinput.Schema().Validate(map[string]any{"name": "Target", "id": "target"}, nil)
	require.NoError(t, err)
	_, err = setup.New(context.Background(), cfg)
	require.NoError(t, err)

	obj, ok := app.Get("target")
	require.True(t, ok)
	_, isSetter := obj.(automation.Setter)
	assert.True(t, isSetter)
}
