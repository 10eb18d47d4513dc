package schema

import (
	"fmt"
	"sort"
)

// Validator normalises one raw value. It returns the typed value or an
// error; *Error and Errors returned from nested validators keep their
// paths.
type Validator func(ctx *Context, value any) (any, error)

type presence int

const (
	presenceRequired presence = iota
	presenceOptional
	presenceGenerated
	presenceFeature
)

// Field declares one key of a Schema.
type Field struct {
	key        string
	presence   presence
	validator  Validator
	def        any
	hasDefault bool
	idPrefix   string
	feature    string
}

// Required declares a key that must be present.
func Required(key string, v Validator) Field {
	return Field{key: key, presence: presenceRequired, validator: v}
}

// Optional declares a key that may be omitted.
func Optional(key string, v Validator) Field {
	return Field{key: key, presence: presenceOptional, validator: v}
}

// Default sets the raw value used when an optional key is omitted. The
// default passes through the field's validator like a user value.
func (f Field) Default(v any) Field {
	f.def = v
	f.hasDefault = true
	return f
}

// GenerateID declares an identifier key. When omitted, a unique
// prefix_N identifier is generated.
func GenerateID(key, prefix string) Field {
	return Field{key: key, presence: presenceGenerated, validator: ID, idPrefix: prefix}
}

// OnlyWith declares an identifier key that exists only when feature is
// enabled. With the feature on it behaves like GenerateID; with it off
// the key is absent and supplying it is an error.
func OnlyWith(key, feature, prefix string) Field {
	return Field{key: key, presence: presenceFeature, validator: ID, idPrefix: prefix, feature: feature}
}

// Key returns the configuration key this field declares.
func (f Field) Key() string {
	return f.key
}

// Schema is an ordered set of fields.
type Schema struct {
	fields []Field
}

// New builds a Schema from fields. Duplicate keys keep the last field.
func New(fields ...Field) Schema {
	var s Schema
	for _, f := range fields {
		s = s.with(f)
	}
	return s
}

// Extend returns a new Schema with the fields of others added after the
// fields of s. A field whose key already exists replaces it in place.
func (s Schema) Extend(others ...Schema) Schema {
	out := Schema{fields: append([]Field(nil), s.fields...)}
	for _, o := range others {
		for _, f := range o.fields {
			out = out.with(f)
		}
	}
	return out
}

func (s Schema) with(f Field) Schema {
	for i := range s.fields {
		if s.fields[i].key == f.key {
			s.fields[i] = f
			return s
		}
	}
	s.fields = append(s.fields, f)
	return s
}

// Keys returns the declared keys in order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.key
	}
	return keys
}

// Validate checks raw against the schema and returns the normalised
// Config. Every failure is reported; the returned error is Errors.
// A nil ctx behaves like NewContext().
func (s Schema) Validate(raw map[string]any, ctx *Context) (Config, error) {
	if ctx == nil {
		ctx = NewContext()
	}

	out := make(Config, len(s.fields))
	known := make(map[string]bool, len(s.fields))
	var errs Errors

	for _, f := range s.fields {
		known[f.key] = true

		v, present := raw[f.key]
		if present && v == nil {
			present = false
		}

		switch f.presence {
		case presenceRequired:
			if !present {
				errs = append(errs, &Error{Path: []string{f.key}, Message: "required key not provided"})
				continue
			}
		case presenceOptional:
			if !present {
				if !f.hasDefault {
					continue
				}
				v = f.def
			}
		case presenceFeature:
			if !ctx.Enabled(f.feature) {
				if present {
					errs = append(errs, &Error{
						Path:    []string{f.key},
						Message: fmt.Sprintf("only allowed when %s is enabled", f.feature),
					})
				}
				continue
			}
			if !present {
				out[f.key] = ctx.NextID(f.idPrefix)
				continue
			}
		case presenceGenerated:
			if !present {
				out[f.key] = ctx.NextID(f.idPrefix)
				continue
			}
		}

		val, err := f.validator(ctx, v)
		if err != nil {
			errs = append(errs, prefix(f.key, err)...)
			continue
		}
		out[f.key] = val
	}

	var extra []string
	for k := range raw {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		errs = append(errs, &Error{Path: []string{k}, Message: "extra keys not allowed"})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// Validator returns s as a Validator for use with Nested values.
func (s Schema) Validator() Validator {
	return func(ctx *Context, value any) (any, error) {
		m, err := asMap(value)
		if err != nil {
			return nil, err
		}
		return s.Validate(m, ctx)
	}
}
