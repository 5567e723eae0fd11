// Package router resolves a method and URI into a registered controller and
// its path parameters. Patterns use {name} segments; route-level defaults
// are merged under matched path parameters.
package router

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRoute is returned when no registered route matches.
var ErrNoRoute = errors.New("no route matches")

// Router resolves a method and path into a Match.
type Router interface {
	Route(method, path string) (*Match, error)
}

// Match is the result of a successful resolution. Controller is opaque to
// the router; the request lifecycle decides whether it is invocable.
type Match struct {
	Name       string
	Controller any
	Params     map[string]string
}

// Mux is the default Router implementation with per-method route tables.
type Mux struct {
	routes   map[string][]*Route
	order    []*Route
	fallback *Route
}

// Route is a single registered pattern.
type Route struct {
	name       string
	method     string
	pattern    string
	segments   []segment
	controller any
	defaults   map[string]string
}

type segment struct {
	name    string
	isParam bool
}

// NewMux constructs an empty Mux.
func NewMux() *Mux {
	return &Mux{routes: make(map[string][]*Route)}
}

// GET registers a GET route.
func (m *Mux) GET(pattern string, controller any) *Route {
	return m.Handle("GET", pattern, controller)
}

// POST registers a POST route.
func (m *Mux) POST(pattern string, controller any) *Route {
	return m.Handle("POST", pattern, controller)
}

// PUT registers a PUT route.
func (m *Mux) PUT(pattern string, controller any) *Route {
	return m.Handle("PUT", pattern, controller)
}

// DELETE registers a DELETE route.
func (m *Mux) DELETE(pattern string, controller any) *Route {
	return m.Handle("DELETE", pattern, controller)
}

// Handle registers a route for an arbitrary method.
func (m *Mux) Handle(method, pattern string, controller any) *Route {
	rt := &Route{
		method:     method,
		pattern:    pattern,
		segments:   parse(pattern),
		controller: controller,
		defaults:   map[string]string{},
	}
	m.routes[method] = append(m.routes[method], rt)
	m.order = append(m.order, rt)
	return rt
}

// NotFound registers a fallback controller used when no route matches.
func (m *Mux) NotFound(controller any) {
	m.fallback = &Route{name: "_fallback", controller: controller, defaults: map[string]string{}}
}

// Named sets the route name used for reverse lookup and returns the route
// for chaining.
func (r *Route) Named(name string) *Route {
	r.name = name
	return r
}

// Default sets a parameter default merged under matched path params.
func (r *Route) Default(key, value string) *Route {
	r.defaults[key] = value
	return r
}

// Route resolves method+path, trying routes in registration order.
func (m *Mux) Route(method, path string) (*Match, error) {
	if list, ok := m.routes[method]; ok {
		for _, rt := range list {
			if values, ok := match(path, rt.segments); ok {
				params := make(map[string]string, len(rt.defaults)+len(values))
				for k, v := range rt.defaults {
					params[k] = v
				}
				for k, v := range values {
					params[k] = v
				}
				return &Match{Name: rt.name, Controller: rt.controller, Params: params}, nil
			}
		}
	}
	if m.fallback != nil {
		return &Match{Name: m.fallback.name, Controller: m.fallback.controller, Params: map[string]string{}}, nil
	}
	return nil, fmt.Errorf("%w: %s %s", ErrNoRoute, method, path)
}

// Path reverse-builds the URI for a named route, substituting params into
// {name} segments. Params not supplied fall back to the route's defaults.
// Routes are considered in registration order, so the first route registered
// under a name wins when names collide.
func (m *Mux) Path(name string, params map[string]string) (string, error) {
	for _, rt := range m.order {
		if rt.name != name {
			continue
		}
		parts := make([]string, 0, len(rt.segments))
		for _, seg := range rt.segments {
			if !seg.isParam {
				parts = append(parts, seg.name)
				continue
			}
			v, ok := params[seg.name]
			if !ok {
				v, ok = rt.defaults[seg.name]
			}
			if !ok {
				return "", fmt.Errorf("route %s: missing param %q", name, seg.name)
			}
			parts = append(parts, v)
		}
		return "/" + strings.Join(parts, "/"), nil
	}
	return "", fmt.Errorf("no route named %q", name)
}

func parse(pattern string) []segment {
	if pattern == "" {
		return nil
	}
	if pattern[0] == '/' {
		pattern = pattern[1:]
	}
	if pattern == "" {
		return []segment{{name: "", isParam: false}}
	}
	parts := strings.Split(pattern, "/")
	segs := make([]segment, len(parts))
	for i, part := range parts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") && len(part) > 2 {
			segs[i] = segment{name: part[1 : len(part)-1], isParam: true}
		} else {
			segs[i] = segment{name: part, isParam: false}
		}
	}
	return segs
}

func match(path string, segs []segment) (map[string]string, bool) {
	if len(segs) == 1 && !segs[0].isParam && segs[0].name == "" {
		if path == "/" || path == "" {
			return map[string]string{}, true
		}
		return nil, false
	}
	if path == "" {
		path = "/"
	}
	if path[0] == '/' {
		path = path[1:]
	}
	parts := []string{}
	if path != "" {
		parts = strings.Split(path, "/")
	}
	if len(parts) != len(segs) {
		return nil, false
	}
	values := make(map[string]string)
	for i, seg := range segs {
		if seg.isParam {
			values[seg.name] = parts[i]
			continue
		}
		if seg.name != parts[i] {
			return nil, false
		}
	}
	return values, true
}
