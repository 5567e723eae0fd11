// Package app holds the framework core: the Environment of named
// applications, the Application with its router and active-request stack,
// and the Request lifecycle that resolves a URI into a controller and
// normalizes its result into a response.
package app

import (
	"context"
	"sync"

	"github.com/ihildebrandt/fuelgo/pkg/input"
	"github.com/ihildebrandt/fuelgo/pkg/logger"
	"github.com/ihildebrandt/fuelgo/pkg/response"
	"github.com/ihildebrandt/fuelgo/pkg/router"
)

// Application binds a router to an active-request stack. The stack records
// which request is "current" so nested sub-requests restore their parent on
// completion.
type Application struct {
	name string
	rtr  router.Router
	env  *Environment

	mu    sync.Mutex
	stack []*Request
}

// Option mutates an Application under construction.
type Option func(*Application)

// WithEnvironment binds the application to an environment, giving requests
// access to the environment's default input.
func WithEnvironment(env *Environment) Option {
	return func(a *Application) { a.env = env }
}

// New constructs an Application around a router.
func New(name string, rtr router.Router, opts ...Option) *Application {
	a := &Application{name: name, rtr: rtr}
	for _, o := range opts {
		o(a)
	}
	if a.env != nil {
		a.env.Register(a)
	}
	return a
}

// Name returns the application name.
func (a *Application) Name() string { return a.name }

// Router returns the application's router.
func (a *Application) Router() router.Router { return a.rtr }

// ActiveRequest returns the request currently considered current, or nil
// when none is executing.
func (a *Application) ActiveRequest() *Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

// Depth returns the number of nested requests currently active.
func (a *Application) Depth() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.stack)
}

// activate pushes r onto the active-request stack.
func (a *Application) activate(r *Request) {
	a.mu.Lock()
	a.stack = append(a.stack, r)
	a.mu.Unlock()
}

// deactivate pops r, restoring the previously active request. Pairing is
// enforced by Request.Execute; a mismatched top is logged and popped anyway
// so the stack cannot wedge.
func (a *Application) deactivate(r *Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.stack) == 0 {
		logger.Warn("request_stack_underflow", "app", a.name, "uri", r.uri)
		return
	}
	top := a.stack[len(a.stack)-1]
	if top != r {
		logger.Warn("request_stack_mismatch", "app", a.name, "uri", r.uri, "top", top.uri)
	}
	a.stack = a.stack[:len(a.stack)-1]
}

// Sub creates and executes a nested request for uri, typically from inside
// a controller to render a partial. The parent request is restored as
// active when the sub-request completes.
func (a *Application) Sub(ctx context.Context, uri string, opts ...RequestOption) (*Request, error) {
	return a.NewRequest(uri, opts...).Execute(ctx)
}

// redirectResponse converts a redirect signal into a response.
func (a *Application) redirectResponse(r *Redirect) response.Response {
	return response.NewRedirect(r.Location, r.Status)
}

// defaultInput returns the environment's default input, or an empty one when
// the application is unbound.
func (a *Application) defaultInput() input.Input {
	if a.env != nil {
		return a.env.DefaultInput()
	}
	return input.Empty()
}
