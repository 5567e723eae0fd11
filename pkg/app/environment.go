package app

import (
	"fmt"
	"sync"

	"github.com/ihildebrandt/fuelgo/pkg/input"
)

// Environment holds the set of named applications and designates one as
// active. It also supplies the default input for requests constructed
// without one. Environments are built explicitly and passed to callers;
// there is no package-level instance.
type Environment struct {
	mu      sync.RWMutex
	apps    map[string]*Application
	active  string
	baseURL string

	// defaultInput builds the input used when a request is created without
	// one. Defaults to input.Empty.
	defaultInput func() input.Input
}

// EnvOption mutates an Environment under construction.
type EnvOption func(*Environment)

// WithBaseURL sets the environment base URL.
func WithBaseURL(u string) EnvOption {
	return func(e *Environment) { e.baseURL = u }
}

// WithDefaultInput overrides the default input factory.
func WithDefaultInput(f func() input.Input) EnvOption {
	return func(e *Environment) { e.defaultInput = f }
}

// NewEnvironment constructs an empty Environment.
func NewEnvironment(opts ...EnvOption) *Environment {
	e := &Environment{
		apps:         map[string]*Application{},
		defaultInput: func() input.Input { return input.Empty() },
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Register adds an application to the environment. The first registered
// application becomes active.
func (e *Environment) Register(a *Application) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apps[a.name] = a
	if e.active == "" {
		e.active = a.name
	}
}

// App looks up an application by name.
func (e *Environment) App(name string) (*Application, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, ok := e.apps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoApplication, name)
	}
	return a, nil
}

// Activate marks the named application as active.
func (e *Environment) Activate(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.apps[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNoApplication, name)
	}
	e.active = name
	return nil
}

// Active returns the active application, or nil when none is registered.
func (e *Environment) Active() *Application {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.active == "" {
		return nil
	}
	return e.apps[e.active]
}

// BaseURL returns the configured base URL.
func (e *Environment) BaseURL() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.baseURL
}

// DefaultInput builds the input used for requests constructed without one.
func (e *Environment) DefaultInput() input.Input {
	e.mu.RLock()
	f := e.defaultInput
	e.mu.RUnlock()
	return f()
}
