// Package view provides the Viewable contract and an html/template backed
// implementation. A response body that satisfies Viewable is rendered into
// its final string form by the request lifecycle before the response is
// returned.
package view

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"sync"
)

// Viewable is the capability for deferred rendering into a final body string.
type Viewable interface {
	Render() (string, error)
}

// View binds a parsed template to a data map.
type View struct {
	tmpl *template.Template
	name string

	mu   sync.Mutex
	data map[string]any
}

// Parse builds a View from an inline template source. Used by tests and by
// applications that keep templates in code.
func Parse(name, text string) (*View, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse view %s: %w", name, err)
	}
	return &View{tmpl: t, name: name, data: map[string]any{}}, nil
}

// Set stores a value under key for use during rendering and returns the view
// for chaining.
func (v *View) Set(key string, value any) *View {
	v.mu.Lock()
	v.data[key] = value
	v.mu.Unlock()
	return v
}

// Render executes the template with the accumulated data.
func (v *View) Render() (string, error) {
	v.mu.Lock()
	data := make(map[string]any, len(v.data))
	for k, val := range v.data {
		data[k] = val
	}
	v.mu.Unlock()
	var sb strings.Builder
	if err := v.tmpl.ExecuteTemplate(&sb, v.name, data); err != nil {
		return "", fmt.Errorf("render view %s: %w", v.name, err)
	}
	return sb.String(), nil
}

// Manager loads and caches templates from a root directory.
type Manager struct {
	root string

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewManager constructs a Manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{root: dir, cache: map[string]*template.Template{}}
}

// View returns a View for the named template file under the manager root,
// parsing and caching it on first use. Initial data may be nil.
func (m *Manager) View(name string, data map[string]any) (*View, error) {
	m.mu.Lock()
	t, ok := m.cache[name]
	m.mu.Unlock()
	if !ok {
		parsed, err := template.ParseFiles(filepath.Join(m.root, name))
		if err != nil {
			return nil, fmt.Errorf("load view %s: %w", name, err)
		}
		t = parsed
		m.mu.Lock()
		m.cache[name] = t
		m.mu.Unlock()
	}
	if data == nil {
		data = map[string]any{}
	}
	return &View{tmpl: t, name: filepath.Base(name), data: data}, nil
}
