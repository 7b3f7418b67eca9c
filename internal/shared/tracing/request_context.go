package tracing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RequestContext carries the correlation id and the start instant of one request.
// StartTime keeps its monotonic reading, so durations must be taken with time.Since.
type RequestContext struct {
	TraceID   string
	StartTime time.Time
}

type requestContextKey struct{}

// NewTraceID mints a version-4 UUID string.
var NewTraceID = func() string {
	return uuid.NewString()
}

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// FromContext returns the RequestContext stored in ctx, if any.
func FromContext(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(RequestContext)
	return rc, ok
}

// TraceID returns the trace id stored in ctx or an empty string.
func TraceID(ctx context.Context) string {
	if rc, ok := FromContext(ctx); ok {
		return rc.TraceID
	}
	return ""
}
