package schema

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	idPattern   = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	iconPattern = regexp.MustCompile(`^[\w\-]+:[\w\-]+$`)
)

// Any accepts every value unchanged.
func Any(_ *Context, value any) (any, error) {
	return value, nil
}

// String accepts strings and scalar numbers, returning a string.
func String(_ *Context, value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int, int64, float64:
		return fmt.Sprint(v), nil
	default:
		return nil, newError(fmt.Sprintf("expected string, got %T", value))
	}
}

// Boolean accepts bools and the strings true/false, yes/no, on/off.
func Boolean(_ *Context, value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "true", "yes", "on", "enable":
			return true, nil
		case "false", "no", "off", "disable":
			return false, nil
		}
	}
	return nil, newError(fmt.Sprintf("expected boolean, got %v", value))
}

// Int accepts integers, integral floats and numeric strings.
func Int(_ *Context, value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), nil
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, nil
		}
	}
	return nil, newError(fmt.Sprintf("expected integer, got %v", value))
}

// IntRange accepts an integer within [lo, hi].
func IntRange(lo, hi int) Validator {
	return func(ctx *Context, value any) (any, error) {
		v, err := Int(ctx, value)
		if err != nil {
			return nil, err
		}
		n := v.(int)
		if n < lo || n > hi {
			return nil, newError(fmt.Sprintf("value %d must be between %d and %d", n, lo, hi))
		}
		return n, nil
	}
}

// Duration accepts Go duration strings ("500ms", "2s") or an integer
// number of milliseconds.
func Duration(_ *Context, value any) (any, error) {
	switch v := value.(type) {
	case int:
		if v >= 0 {
			return time.Duration(v) * time.Millisecond, nil
		}
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err == nil && d >= 0 {
			return d, nil
		}
	}
	return nil, newError(fmt.Sprintf("expected a non-negative duration, got %v", value))
}

// Icon accepts icons of the form "namespace:name", e.g. "mdi:form-textbox".
func Icon(ctx *Context, value any) (any, error) {
	v, err := String(ctx, value)
	if err != nil {
		return nil, err
	}
	s := v.(string)
	if s != "" && !iconPattern.MatchString(s) {
		return nil, newError(fmt.Sprintf("icon %q must be in the form namespace:name", s))
	}
	return s, nil
}

// ID accepts an identifier and claims it in ctx.
func ID(ctx *Context, value any) (any, error) {
	s, err := identifier(value)
	if err != nil {
		return nil, err
	}
	if err := ctx.Declare(s); err != nil {
		return nil, err
	}
	return s, nil
}

// IDRef accepts a reference to an identifier declared elsewhere and
// records it in ctx. Context.Unresolved lists the ones never declared.
func IDRef(ctx *Context, value any) (any, error) {
	s, err := identifier(value)
	if err != nil {
		return nil, err
	}
	if ctx != nil {
		ctx.Reference(s)
	}
	return s, nil
}

func identifier(value any) (string, error) {
	s, ok := value.(string)
	if !ok || !idPattern.MatchString(s) {
		return "", newError(fmt.Sprintf("invalid ID %v: must start with a letter or underscore and contain only letters, digits and underscores", value))
	}
	return s, nil
}

// Enum maps symbolic names to typed values. With upper set, input is
// upper-cased before lookup.
func Enum[V any](values map[string]V, upper bool) Validator {
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	return func(_ *Context, value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, newError(fmt.Sprintf("expected one of [%s], got %v", strings.Join(names, ", "), value))
		}
		key := s
		if upper {
			key = strings.ToUpper(s)
		}
		v, ok := values[key]
		if !ok {
			return nil, newError(fmt.Sprintf("unknown value %q: not one of the allowed values [%s]", s, strings.Join(names, ", ")))
		}
		return v, nil
	}
}

// OneOf accepts one of the given lowercase strings, case-insensitively.
func OneOf(options ...string) Validator {
	values := make(map[string]string, len(options))
	for _, o := range options {
		values[o] = o
	}
	enum := Enum(values, false)
	return func(ctx *Context, value any) (any, error) {
		if s, ok := value.(string); ok {
			value = strings.ToLower(s)
		}
		return enum(ctx, value)
	}
}

// ListOf validates every item of a list. A single non-list value is
// treated as a one-item list.
func ListOf(item Validator) Validator {
	return func(ctx *Context, value any) (any, error) {
		items, ok := value.([]any)
		if !ok {
			items = []any{value}
		}

		out := make([]any, 0, len(items))
		var errs Errors
		for i, raw := range items {
			v, err := item(ctx, raw)
			if err != nil {
				errs = append(errs, prefix(fmt.Sprintf("[%d]", i), err)...)
				continue
			}
			out = append(out, v)
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return out, nil
	}
}

// Nested validates a mapping against s.
func Nested(s Schema) Validator {
	return s.Validator()
}

func asMap(value any) (map[string]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case Config:
		return v, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			ks, ok := k.(string)
			if !ok {
				return nil, newError(fmt.Sprintf("key %v must be a string", k))
			}
			out[ks] = item
		}
		return out, nil
	default:
		return nil, newError(fmt.Sprintf("expected a mapping, got %T", value))
	}
}
