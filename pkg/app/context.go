package app

import "context"

type ctxRequestKey struct{}

// contextWith returns a context carrying r as the current request. The
// executing controller receives it so nested code reaches the current
// request through explicit context rather than ambient state.
func contextWith(ctx context.Context, r *Request) context.Context {
	return context.WithValue(ctx, ctxRequestKey{}, r)
}

// RequestFromContext returns the request the controller is executing under.
func RequestFromContext(ctx context.Context) (*Request, bool) {
	r, ok := ctx.Value(ctxRequestKey{}).(*Request)
	return r, ok
}
