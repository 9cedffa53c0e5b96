package logging

import (
	"context"
	"slices"
)

type attrsKey struct{}

// ContextWith returns a copy of ctx carrying key-value pairs that
// SlogLogger adds to every record logged with that context.
func ContextWith(ctx context.Context, args ...any) context.Context {
	prev := attrsFrom(ctx)
	return context.WithValue(ctx, attrsKey{}, append(slices.Clip(prev), args...))
}

func attrsFrom(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(attrsKey{}).([]any)
	return attrs
}

// withContextAttrs prepends the pairs stored in ctx to args.
func withContextAttrs(ctx context.Context, args []any) []any {
	attrs := attrsFrom(ctx)
	if len(attrs) == 0 {
		return args
	}
	return append(slices.Clip(attrs), args...)
}
