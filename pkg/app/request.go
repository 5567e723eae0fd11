package app

import (
	"context"
	"fmt"

	"github.com/ihildebrandt/fuelgo/pkg/input"
	"github.com/ihildebrandt/fuelgo/pkg/logger"
	"github.com/ihildebrandt/fuelgo/pkg/response"
	"github.com/ihildebrandt/fuelgo/pkg/view"
)

// Request resolves a URI into a controller, invokes it and normalizes the
// result into a response. While executing it is pushed onto its
// application's active-request stack; completion (or failure) pops it,
// restoring the previously active request. A Request executes exactly once.
type Request struct {
	app    *Application
	uri    string
	method string
	in     input.Input

	route    string
	params   map[string]string
	resp     response.Response
	parent   *Request
	executed bool
}

// RequestOption mutates a Request under construction.
type RequestOption func(*Request)

// WithInput sets the request input.
func WithInput(in input.Input) RequestOption {
	return func(r *Request) { r.in = in }
}

// WithMethod sets the request method. Defaults to the input's method.
func WithMethod(m string) RequestOption {
	return func(r *Request) { r.method = m }
}

// NewRequest constructs a request for uri bound to this application. The
// request active at construction time becomes the parent, so sub-requests
// can reach the request that spawned them.
func (a *Application) NewRequest(uri string, opts ...RequestOption) *Request {
	r := &Request{app: a, uri: uri, parent: a.ActiveRequest()}
	for _, o := range opts {
		o(r)
	}
	if r.in == nil {
		r.in = a.defaultInput()
	}
	if r.method == "" {
		r.method = r.in.Method()
	}
	return r
}

// Execute runs the request lifecycle: activate, resolve, invoke, normalize,
// deactivate. On every path — success, routing failure, controller error,
// redirect, even a controller panic — the active-request stack is restored
// before Execute returns or the panic unwinds.
func (r *Request) Execute(ctx context.Context) (*Request, error) {
	if r.executed {
		return nil, ErrAlreadyExecuted
	}
	r.executed = true

	r.app.activate(r)
	defer r.app.deactivate(r)

	m, err := r.app.Router().Route(r.method, r.uri)
	if err != nil {
		return nil, fmt.Errorf("route %s %s: %w", r.method, r.uri, err)
	}
	r.route = m.Name
	r.params = m.Params

	ctrl, ok := asController(m.Controller)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s resolved to %T", ErrNotInvocable, r.method, r.uri, m.Controller)
	}

	logger.Debug("request_execute", "app", r.app.Name(), "method", r.method, "uri", r.uri, "route", r.route)

	result, err := ctrl.Serve(contextWith(ctx, r), r)
	if err != nil {
		if rd, ok := AsRedirect(err); ok {
			// redirect is control flow, not failure
			r.resp = r.app.redirectResponse(rd)
			return r, nil
		}
		return nil, err
	}

	resp, ok := result.(response.Response)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s returned %T", ErrInvalidResponse, r.method, r.uri, result)
	}

	// render viewable bodies eagerly so the caller always sees the final
	// string form
	if v, ok := resp.Body().(view.Viewable); ok {
		s, err := v.Render()
		if err != nil {
			return nil, fmt.Errorf("render response for %s: %w", r.uri, err)
		}
		resp.SetBody(s)
	}

	r.resp = resp
	return r, nil
}

// Param returns the named resolved parameter.
func (r *Request) Param(name string) (string, bool) {
	v, ok := r.params[name]
	return v, ok
}

// ParamOr returns the named parameter or def when absent.
func (r *Request) ParamOr(name, def string) string {
	if v, ok := r.params[name]; ok {
		return v
	}
	return def
}

// Params returns a copy of the full resolved parameter mapping.
func (r *Request) Params() map[string]string {
	out := make(map[string]string, len(r.params))
	for k, v := range r.params {
		out[k] = v
	}
	return out
}

// Response returns the normalized response, nil until Execute succeeds.
func (r *Request) Response() response.Response { return r.resp }

// URI returns the request URI.
func (r *Request) URI() string { return r.uri }

// Method returns the request method.
func (r *Request) Method() string { return r.method }

// Input returns the request input.
func (r *Request) Input() input.Input { return r.in }

// Parent returns the request that was active when this one was created, or
// nil for a top-level request.
func (r *Request) Parent() *Request { return r.parent }

// Route returns the matched route name, empty until Execute resolves it.
func (r *Request) Route() string { return r.route }

// App returns the owning application.
func (r *Request) App() *Application { return r.app }
