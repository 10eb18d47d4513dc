package textinput

import "sync"

// Mode is how frontends render the input.
type Mode int

const (
	// ModeAuto lets the frontend choose.
	ModeAuto Mode = iota
	// ModeString renders a free-text box.
	ModeString
)

// modes maps manifest symbols to modes. SECRET is not supported.
var modes = map[string]Mode{
	"AUTO":   ModeAuto,
	"STRING": ModeString,
}

// String returns the manifest symbol.
func (m Mode) String() string {
	switch m {
	case ModeString:
		return "STRING"
	default:
		return "AUTO"
	}
}

// Traits are the presentation properties of a text input.
type Traits struct {
	mu   sync.RWMutex
	mode Mode
}

// Mode returns the configured mode.
func (t *Traits) Mode() Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// SetMode sets the mode.
func (t *Traits) SetMode(m Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = m
}

// MarshalYAML renders the mode as its manifest symbol.
func (m Mode) MarshalYAML() (any, error) {
	return m.String(), nil
}
