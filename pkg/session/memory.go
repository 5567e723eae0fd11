package session

import (
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and development.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]record
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string]record{}}
}

// Get implements Store.
func (s *MemoryStore) Get(id string) (map[string]string, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.m[id]
	if !ok {
		return nil, time.Time{}, ErrNotFound
	}
	out := make(map[string]string, len(rec.Values))
	for k, v := range rec.Values {
		out[k] = v
	}
	return out, rec.Expires, nil
}

// Put implements Store.
func (s *MemoryStore) Put(id string, values map[string]string, expires time.Time) error {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	s.mu.Lock()
	s.m[id] = record{Values: cp, Expires: expires}
	s.mu.Unlock()
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
	return nil
}

// PurgeExpired implements Store.
func (s *MemoryStore) PurgeExpired(now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, rec := range s.m {
		if rec.Expires.Before(now) {
			delete(s.m, id)
			n++
		}
	}
	return n, nil
}
