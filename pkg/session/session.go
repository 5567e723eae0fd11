// Package session provides the framework session layer: cookie-identified
// sessions persisted through a pluggable Store, with a pebble-backed
// implementation for durable deployments and an in-memory one for tests.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ihildebrandt/fuelgo/pkg/input"
	"github.com/ihildebrandt/fuelgo/pkg/response"
)

// Store persists session records by id.
type Store interface {
	Get(id string) (map[string]string, time.Time, error)
	Put(id string, values map[string]string, expires time.Time) error
	Delete(id string) error
	// PurgeExpired removes sessions expiring before now and reports how
	// many were removed.
	PurgeExpired(now time.Time) (int, error)
}

// ErrNotFound is returned by stores for unknown session ids.
var ErrNotFound = fmt.Errorf("session not found")

// Session is one client session.
type Session struct {
	ID      string
	Values  map[string]string
	Expires time.Time

	fresh bool
}

// Fresh reports whether the session was created by this request and its
// cookie still needs to be issued.
func (s *Session) Fresh() bool { return s.fresh }

// Manager loads and saves sessions keyed by a cookie.
type Manager struct {
	store  Store
	cookie string
	ttl    time.Duration
}

// ManagerOption mutates a Manager under construction.
type ManagerOption func(*Manager)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) ManagerOption {
	return func(m *Manager) { m.cookie = name }
}

// WithTTL overrides the session lifetime.
func WithTTL(d time.Duration) ManagerOption {
	return func(m *Manager) { m.ttl = d }
}

// NewManager constructs a Manager over a store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{store: store, cookie: "fuelgo_session", ttl: 24 * time.Hour}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Load resolves the session identified by the input's cookie, creating a
// fresh one when the cookie is absent, unknown or expired.
func (m *Manager) Load(in input.Input) (*Session, error) {
	if id := m.cookieValue(in); id != "" {
		values, expires, err := m.store.Get(id)
		switch {
		case err == nil && expires.After(time.Now()):
			return &Session{ID: id, Values: values, Expires: expires}, nil
		case err != nil && err != ErrNotFound:
			return nil, err
		}
	}
	return &Session{
		ID:      uuid.NewString(),
		Values:  map[string]string{},
		Expires: time.Now().Add(m.ttl),
		fresh:   true,
	}, nil
}

// Save persists the session and, for fresh sessions, attaches the cookie to
// the response.
//
// Sessions have a fixed lifetime: Expires is stamped once at creation and
// Save never extends it, so activity does not slide the deadline. The cookie
// is only issued alongside a fresh session; existing sessions keep the
// cookie the client already holds until the session expires and Load mints
// a new one.
func (m *Manager) Save(s *Session, resp response.Response) error {
	if err := m.store.Put(s.ID, s.Values, s.Expires); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	if s.fresh {
		c := &http.Cookie{
			Name:     m.cookie,
			Value:    s.ID,
			Path:     "/",
			HttpOnly: true,
			MaxAge:   int(m.ttl.Seconds()),
		}
		resp.Header().Add("Set-Cookie", c.String())
	}
	return nil
}

// Destroy deletes the session from the store.
func (m *Manager) Destroy(s *Session) error {
	return m.store.Delete(s.ID)
}

// GC removes expired sessions, returning the purge count.
func (m *Manager) GC() (int, error) {
	return m.store.PurgeExpired(time.Now())
}

// cookieValue extracts the session cookie from the input headers.
func (m *Manager) cookieValue(in input.Input) string {
	r := http.Request{Header: in.Header()}
	c, err := r.Cookie(m.cookie)
	if err != nil {
		return ""
	}
	return c.Value
}
