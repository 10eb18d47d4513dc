package entity

import "context"

// Value sources recorded with state changes.
const (
	SourceInternal   = "internal"
	SourceMQTT       = "mqtt"
	SourceAPI        = "api"
	SourceAutomation = "automation"
)

type sourceKey struct{}

// WithSource tags ctx with the origin of a value change.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

// SourceFrom returns the origin tagged on ctx, or SourceInternal.
func SourceFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok && s != "" {
		return s
	}
	return SourceInternal
}
