package http

import "context"

// CorrelationIDHeader is read from inbound requests and echoed on responses.
const CorrelationIDHeader = "X-Correlation-Id"

type correlationKey struct{}

// WithCorrelationID returns a child context carrying id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id stored in ctx, or "" when none is set.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// CorrelationIDPtr is CorrelationID as a nullable value for JSON bodies.
func CorrelationIDPtr(ctx context.Context) *string {
	id := CorrelationID(ctx)
	if id == "" {
		return nil
	}
	return &id
}
