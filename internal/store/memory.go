package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/trip-weather/internal/weather"
)

var (
	// ErrNotFound is returned when no fresh payload is cached for a destination.
	ErrNotFound = errors.New("no forecast cached for destination")
)

type cachedPayload struct {
	payload   *weather.Payload
	fetchedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory cache of forecast payloads.
type MemoryStore struct {
	mu sync.Mutex

	// key: destination key
	data map[string]cachedPayload

	maxAge time.Duration
	now    func() time.Time
}

// NewMemoryStore creates a MemoryStore keeping payloads for maxAge.
// A maxAge <= 0 means nothing is ever served from the cache.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string]cachedPayload),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// SavePayload stores the latest payload for a destination.
func (s *MemoryStore) SavePayload(dest weather.Destination, payload *weather.Payload) {
	if s.maxAge <= 0 || payload == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[dest.Key()] = cachedPayload{payload: payload, fetchedAt: s.now()}
}

// GetLatest returns the cached payload for a destination if it is still fresh.
// Expired entries are evicted.
func (s *MemoryStore) GetLatest(dest weather.Destination) (*weather.Payload, error) {
	key := dest.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().Sub(entry.fetchedAt) >= s.maxAge {
		delete(s.data, key)
		return nil, ErrNotFound
	}
	return entry.payload, nil
}
