package core

import (
	"fmt"
	"sort"
	"sync"
)

// IDRegistry maps identifiers to declared objects.
type IDRegistry struct {
	mu      sync.RWMutex
	objects map[string]any
}

// NewIDRegistry returns an empty registry.
func NewIDRegistry() *IDRegistry {
	return &IDRegistry{objects: make(map[string]any)}
}

// HasID reports whether id has been declared.
func (r *IDRegistry) HasID(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.objects[id]
	return ok
}

// Declare binds obj to id. Returns ErrDuplicateID if id is taken.
func (r *IDRegistry) Declare(id string, obj any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.objects[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	r.objects[id] = obj
	return nil
}

// Get returns the object declared under id.
func (r *IDRegistry) Get(id string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obj, ok := r.objects[id]
	return obj, ok
}

// IDs returns all declared identifiers, sorted.
func (r *IDRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.objects))
	for id := range r.objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of declared identifiers.
func (r *IDRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}
