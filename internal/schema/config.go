package schema

// Config is a validated configuration block. Values have already been
// normalised by their validators, so accessors only type-assert.
type Config map[string]any

// Has reports whether key is present.
func (c Config) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Get returns the raw value for key, or nil.
func (c Config) Get(key string) any {
	return c[key]
}

// String returns the value for key as a string, or "".
func (c Config) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// Bool returns the value for key as a bool, or false.
func (c Config) Bool(key string) bool {
	b, _ := c[key].(bool)
	return b
}

// Int returns the value for key as an int, or 0.
func (c Config) Int(key string) int {
	n, _ := c[key].(int)
	return n
}

// Map returns a nested block, or nil.
func (c Config) Map(key string) Config {
	m, _ := c[key].(Config)
	return m
}

// List returns the nested blocks of a list-of-schema value. Entries that
// are not blocks are skipped.
func (c Config) List(key string) []Config {
	raw, _ := c[key].([]any)
	out := make([]Config, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(Config); ok {
			out = append(out, m)
		}
	}
	return out
}

// Value returns the value for key asserted to T.
func Value[T any](c Config, key string) (T, bool) {
	v, ok := c[key].(T)
	return v, ok
}
