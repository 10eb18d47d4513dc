package schema

import (
	"errors"
	"strings"
)

// ErrInvalid matches any validation failure via errors.Is.
var ErrInvalid = errors.New("schema: invalid configuration")

// Error is a single validation failure at a key path.
type Error struct {
	Path    []string
	Message string
}

// newError reports a failure at the value being validated; callers add the path.
func newError(msg string) *Error {
	return &Error{Message: msg}
}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return renderPath(e.Path) + ": " + e.Message
}

// Is reports whether target is ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Errors aggregates every failure found in one validation run.
type Errors []*Error

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Is reports whether target is ErrInvalid.
func (es Errors) Is(target error) bool {
	return target == ErrInvalid
}

// prefix returns err re-rooted under the given path element.
func prefix(elem string, err error) Errors {
	var es Errors
	var e *Error
	switch {
	case errors.As(err, &es):
	case errors.As(err, &e):
		es = Errors{e}
	default:
		es = Errors{newError(err.Error())}
	}

	out := make(Errors, len(es))
	for i, inner := range es {
		out[i] = &Error{
			Path:    append([]string{elem}, inner.Path...),
			Message: inner.Message,
		}
	}
	return out
}

// renderPath joins keys with dots and attaches list indexes directly:
// on_value[0].then[1].delay
func renderPath(path []string) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 && !strings.HasPrefix(p, "[") {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// Prefix re-roots err under elem, for validators that dispatch on a key
// of their own (e.g. an action name) and need the path to show it.
func Prefix(elem string, err error) error {
	return prefix(elem, err)
}
