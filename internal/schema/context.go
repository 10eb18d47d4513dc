package schema

import (
	"fmt"
	"sort"
	"sync"
)

// Context carries build-wide state through one validation run: which
// features are enabled and which identifiers are taken.
type Context struct {
	mu       sync.Mutex
	features map[string]bool
	declared map[string]bool
	explicit map[string]bool
	reserved map[string]bool
	refs     []string
	counters map[string]int
}

// NewContext returns a Context with the named features enabled.
func NewContext(features ...string) *Context {
	c := &Context{
		features: make(map[string]bool, len(features)),
		declared: make(map[string]bool),
		explicit: make(map[string]bool),
		reserved: make(map[string]bool),
		counters: make(map[string]int),
	}
	for _, f := range features {
		c.features[f] = true
	}
	return c
}

// Enabled reports whether feature is part of the build.
func (c *Context) Enabled(feature string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.features[feature]
}

// Declare claims id. It fails if the id was already claimed in this run.
// A reserved id may be declared once.
func (c *Context) Declare(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.explicit[id] = true
	if c.declared[id] {
		return newError(fmt.Sprintf("ID %q redefined", id))
	}
	c.declared[id] = true
	return nil
}

// NextID returns an unclaimed, unreserved identifier of the form
// prefix_N and claims it.
func (c *Context) NextID(prefix string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		c.counters[prefix]++
		id := fmt.Sprintf("%s_%d", prefix, c.counters[prefix])
		if !c.declared[id] && !c.reserved[id] {
			c.declared[id] = true
			return id
		}
	}
}

// Reserve keeps ids away from NextID so that explicit declarations later
// in the run never collide with a generated id.
func (c *Context) Reserve(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		c.reserved[id] = true
	}
}

// Explicit returns every id passed to Declare in this run, sorted,
// including ids that were rejected as duplicates.
func (c *Context) Explicit() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.explicit))
	for id := range c.explicit {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Declared reports whether id has been claimed in this run.
func (c *Context) Declared(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.declared[id]
}

// Reference records a use of id. See Unresolved.
func (c *Context) Reference(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs = append(c.refs, id)
}

// Unresolved returns the referenced ids that were never claimed, in
// first-use order.
func (c *Context) Unresolved() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	seen := make(map[string]bool)
	for _, id := range c.refs {
		if c.declared[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
