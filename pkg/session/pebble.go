package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/ihildebrandt/fuelgo/pkg/logger"
)

const keyPrefix = "session:"

type record struct {
	Values  map[string]string `json:"values"`
	Expires time.Time         `json:"expires"`
}

// PebbleStore persists sessions in a pebble database.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) the pebble database at path.
func OpenPebble(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("session_pebble_open_failed", "path", path, "error", err)
		return nil, fmt.Errorf("open session store at %s: %w", path, err)
	}
	logger.Info("session_pebble_opened", "path", path)
	return &PebbleStore{db: db}, nil
}

// Close closes the underlying database.
func (s *PebbleStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get implements Store.
func (s *PebbleStore) Get(id string) (map[string]string, time.Time, error) {
	v, closer, err := s.db.Get([]byte(keyPrefix + id))
	if err == pebble.ErrNotFound {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	defer closer.Close()
	var rec record
	if err := json.Unmarshal(v, &rec); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return rec.Values, rec.Expires, nil
}

// Put implements Store.
func (s *PebbleStore) Put(id string, values map[string]string, expires time.Time) error {
	data, err := json.Marshal(record{Values: values, Expires: expires})
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	return s.db.Set([]byte(keyPrefix+id), data, pebble.Sync)
}

// Delete implements Store.
func (s *PebbleStore) Delete(id string) error {
	return s.db.Delete([]byte(keyPrefix+id), pebble.Sync)
}

// PurgeExpired implements Store by scanning the session keyspace.
func (s *PebbleStore) PurgeExpired(now time.Time) (int, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyPrefix + "\xff"),
	})
	if err != nil {
		return 0, err
	}
	var stale [][]byte
	for iter.First(); iter.Valid(); iter.Next() {
		var rec record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			// unreadable record, treat as stale
			stale = append(stale, append([]byte(nil), iter.Key()...))
			continue
		}
		if rec.Expires.Before(now) {
			stale = append(stale, append([]byte(nil), iter.Key()...))
		}
	}
	if err := iter.Close(); err != nil {
		return 0, err
	}
	for _, k := range stale {
		if err := s.db.Delete(k, pebble.Sync); err != nil {
			return 0, err
		}
	}
	if len(stale) > 0 {
		logger.Info("sessions_purged", "count", len(stale))
	}
	return len(stale), nil
}
