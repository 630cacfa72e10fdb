package trace

import "context"

// ctxKey distinguishes the values this package stores in a context.
type ctxKey int

const (
	tracerKey ctxKey = iota
	spanKey
)

// FromContext returns the tracer stored by WithTracer. Code that was not
// handed a tracer gets Nop, so call sites never check for nil.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer returns a child of ctx carrying t. A nil t disables tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey, t)
}

// parentSpan is the ID of the innermost span opened by Start on ctx,
// or 0 at the top level.
func parentSpan(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey).(uint64)
	return id
}

func withSpan(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, spanKey, id)
}
