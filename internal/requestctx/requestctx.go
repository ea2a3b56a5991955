// Package requestctx carries the request ID through context so stores and
// services can tag audit rows without importing the transport layer.
package requestctx

import "context"

type ctxKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// GetRequestID returns the request ID set by the tracing middleware, or ""
// for contexts outside a request (seeding, migrations).
func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(ctxKey{}).(string); ok {
		return value
	}
	return ""
}
