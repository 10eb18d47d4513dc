package core

import (
	"sync"

	"github.com/nerrad567/gray-logic-textinput/internal/textinput"
)

// App is the node-wide registry: identifiers plus one collection per
// entity kind. It satisfies textinput.Registry.
type App struct {
	*IDRegistry

	mu         sync.RWMutex
	textInputs []*textinput.TextInput
	byID       map[string]*textinput.TextInput
	logger     Logger
}

// NewApp returns an empty App.
func NewApp() *App {
	return &App{
		IDRegistry: NewIDRegistry(),
		byID:       make(map[string]*textinput.TextInput),
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger.
func (a *App) SetLogger(logger Logger) {
	a.logger = logger
}

// RegisterTextInput adds t to the text input collection. Adding an id
// that is already present is a no-op.
func (a *App) RegisterTextInput(t *textinput.TextInput) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := t.ID()
	if _, ok := a.byID[id]; ok {
		a.logger.Debug("text input already registered", "id", id)
		return
	}
	a.byID[id] = t
	a.textInputs = append(a.textInputs, t)
	a.logger.Info("text input registered", "id", id, "name", t.Name())
}

// TextInputs returns the registered text inputs in registration order.
func (a *App) TextInputs() []*textinput.TextInput {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]*textinput.TextInput(nil), a.textInputs...)
}

// TextInput returns the text input registered under id.
func (a *App) TextInput(id string) (*textinput.TextInput, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.byID[id]
	return t, ok
}
