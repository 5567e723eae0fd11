package app

import "context"

// Controller produces a controller result for a request. The result must
// satisfy response.Response; anything else fails the shape check in
// Request.Execute.
type Controller interface {
	Serve(ctx context.Context, r *Request) (any, error)
}

// ControllerFunc adapts a function into a Controller.
type ControllerFunc func(ctx context.Context, r *Request) (any, error)

// Serve implements Controller.
func (f ControllerFunc) Serve(ctx context.Context, r *Request) (any, error) {
	return f(ctx, r)
}

// asController reports whether v is invocable and adapts it. Routers store
// controllers as opaque values, so this is where the framework decides
// invocability.
func asController(v any) (Controller, bool) {
	switch c := v.(type) {
	case Controller:
		return c, true
	case func(ctx context.Context, r *Request) (any, error):
		return ControllerFunc(c), true
	default:
		return nil, false
	}
}
