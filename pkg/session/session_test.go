package session

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihildebrandt/fuelgo/pkg/input"
	"github.com/ihildebrandt/fuelgo/pkg/response"
)

func TestLoadCreatesFreshSession(t *testing.T) {
	m := NewManager(NewMemoryStore())
	s, err := m.Load(input.Empty())
	require.NoError(t, err)
	assert.True(t, s.Fresh())
	assert.NotEmpty(t, s.ID)
	assert.Empty(t, s.Values)
}

func TestSaveSetsCookieAndRoundTrips(t *testing.T) {
	m := NewManager(NewMemoryStore(), WithCookieName("sid"), WithTTL(time.Hour))

	s, err := m.Load(input.Empty())
	require.NoError(t, err)
	s.Values["user"] = "alice"

	resp := response.New("ok")
	require.NoError(t, m.Save(s, resp))
	cookie := resp.Header().Get("Set-Cookie")
	require.NotEmpty(t, cookie, "fresh session must issue a cookie")

	// replay the cookie on a second request
	hdr := make(http.Header)
	hdr.Set("Cookie", "sid="+s.ID)
	in := input.New("GET", "/", input.WithHeader(hdr))

	s2, err := m.Load(in)
	require.NoError(t, err)
	assert.False(t, s2.Fresh())
	assert.Equal(t, s.ID, s2.ID)
	assert.Equal(t, "alice", s2.Values["user"])
}

func TestSaveKeepsFixedLifetime(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, WithCookieName("sid"), WithTTL(time.Hour))

	s, err := m.Load(input.Empty())
	require.NoError(t, err)
	require.NoError(t, m.Save(s, response.New("")))

	hdr := make(http.Header)
	hdr.Set("Cookie", "sid="+s.ID)
	s2, err := m.Load(input.New("GET", "/", input.WithHeader(hdr)))
	require.NoError(t, err)
	resp := response.New("")
	require.NoError(t, m.Save(s2, resp))

	// re-saving must not slide the deadline or re-issue the cookie
	_, exp, err := store.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Expires.Unix(), exp.Unix())
	assert.Empty(t, resp.Header().Get("Set-Cookie"))
}

func TestExpiredSessionReplaced(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, WithCookieName("sid"))
	require.NoError(t, store.Put("old", map[string]string{"k": "v"}, time.Now().Add(-time.Minute)))

	hdr := make(http.Header)
	hdr.Set("Cookie", "sid=old")
	s, err := m.Load(input.New("GET", "/", input.WithHeader(hdr)))
	require.NoError(t, err)
	assert.True(t, s.Fresh())
	assert.NotEqual(t, "old", s.ID)
}

func TestDestroy(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store)
	s, err := m.Load(input.Empty())
	require.NoError(t, err)
	require.NoError(t, m.Save(s, response.New("")))
	require.NoError(t, m.Destroy(s))

	_, _, err = store.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePurgeExpired(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put("live", nil, time.Now().Add(time.Hour)))
	require.NoError(t, store.Put("dead", nil, time.Now().Add(-time.Hour)))

	n, err := store.PurgeExpired(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, _, err = store.Get("dead")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = store.Get("live")
	assert.NoError(t, err)
}

func TestPebbleStoreRoundTrip(t *testing.T) {
	ps, err := OpenPebble(t.TempDir() + "/sessions")
	require.NoError(t, err)
	defer func() { _ = ps.Close() }()

	exp := time.Now().Add(time.Hour).UTC()
	require.NoError(t, ps.Put("abc", map[string]string{"k": "v"}, exp))

	values, gotExp, err := ps.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, "v", values["k"])
	assert.WithinDuration(t, exp, gotExp, time.Second)

	_, _, err = ps.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, ps.Delete("abc"))
	_, _, err = ps.Get("abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPebbleStorePurgeExpired(t *testing.T) {
	ps, err := OpenPebble(t.TempDir() + "/sessions")
	require.NoError(t, err)
	defer func() { _ = ps.Close() }()

	require.NoError(t, ps.Put("live", map[string]string{}, time.Now().Add(time.Hour)))
	require.NoError(t, ps.Put("dead", map[string]string{}, time.Now().Add(-time.Hour)))

	n, err := ps.PurgeExpired(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, _, err = ps.Get("live")
	assert.NoError(t, err)
	_, _, err = ps.Get("dead")
	assert.ErrorIs(t, err, ErrNotFound)
}
