package entity

import (
	"strings"
	"sync"
	"unicode"
)

// Category groups entities that are not primary controls.
type Category int

const (
	CategoryNone Category = iota
	CategoryConfig
	CategoryDiagnostic
)

// String returns the Home Assistant spelling, or "" for CategoryNone.
func (c Category) String() string {
	switch c {
	case CategoryConfig:
		return "config"
	case CategoryDiagnostic:
		return "diagnostic"
	default:
		return ""
	}
}

// MarshalYAML renders the category as its manifest spelling.
func (c Category) MarshalYAML() (any, error) {
	return c.String(), nil
}

// Base holds the fields common to all entities. It is safe for
// concurrent use.
type Base struct {
	mu                sync.RWMutex
	id                string
	name              string
	objectID          string
	icon              string
	internal          bool
	disabledByDefault bool
	category          Category
}

// NewBase returns a Base bound to id.
func NewBase(id string) *Base {
	return &Base{id: id}
}

// EntityBase returns b. Types embedding *Base satisfy Entity through it.
func (b *Base) EntityBase() *Base { return b }

// ID returns the configuration identifier.
func (b *Base) ID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.id
}

// SetID rebinds the entity to a new identifier.
func (b *Base) SetID(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.id = id
}

// Name returns the display name.
func (b *Base) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

// SetName sets the display name and derives the object id from it.
func (b *Base) SetName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
	b.objectID = ObjectID(name)
}

// ObjectID returns the sanitised name used in topics and URLs.
func (b *Base) ObjectID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.objectID
}

// Icon returns the icon, e.g. "mdi:form-textbox".
func (b *Base) Icon() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.icon
}

// SetIcon sets the icon.
func (b *Base) SetIcon(icon string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.icon = icon
}

// Internal reports whether the entity is hidden from frontends.
func (b *Base) Internal() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.internal
}

// SetInternal marks the entity internal.
func (b *Base) SetInternal(internal bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.internal = internal
}

// DisabledByDefault reports whether frontends should add it disabled.
func (b *Base) DisabledByDefault() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.disabledByDefault
}

// SetDisabledByDefault sets the disabled-by-default flag.
func (b *Base) SetDisabledByDefault(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabledByDefault = v
}

// Category returns the entity category.
func (b *Base) Category() Category {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.category
}

// SetCategory sets the entity category.
func (b *Base) SetCategory(c Category) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.category = c
}

// ObjectID converts a display name to snake case restricted to
// [a-z0-9_-]. "Hallway Greeting!" becomes "hallway_greeting_".
func ObjectID(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r == ' ':
			sb.WriteByte('_')
		case r == '-' || r == '_':
			sb.WriteRune(r)
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
