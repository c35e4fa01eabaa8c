package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a stored value counts as fresh.
const DefaultTTL = 5 * time.Minute

// Entry is a stored value plus the time it was written.
type Entry[V any] struct {
	Value    V
	StoredAt time.Time
}

// IsStale reports whether the entry is at least ttl old at now.
func (e Entry[V]) IsStale(now time.Time, ttl time.Duration) bool {
	if e.StoredAt.IsZero() {
		return true
	}
	return now.Sub(e.StoredAt) >= ttl
}

// Stats counts store reads since creation.
type Stats struct {
	Hits   int `json:"hits" yaml:"hits"`
	Misses int `json:"misses" yaml:"misses"`
	Stale  int `json:"stale" yaml:"stale"` // subset of Misses where an old entry existed
}

// Store maps keys to timestamped values with TTL-checked reads.
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]Entry[V]
	ttl     time.Duration
	now     func() time.Time
	stats   Stats
}

// Option configures a Store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the store's clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New creates an empty store. A ttl <= 0 uses DefaultTTL.
func New[K comparable, V any](ttl time.Duration, opts ...Option) *Store[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[K, V]{
		entries: make(map[K]Entry[V]),
		ttl:     ttl,
		now:     o.now,
	}
}

// Get returns the value for key if it was stored less than TTL ago.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		s.stats.Misses++
		var zero V
		return zero, false
	}
	if entry.IsStale(s.now(), s.ttl) {
		s.stats.Misses++
		s.stats.Stale++
		var zero V
		return zero, false
	}
	s.stats.Hits++
	return entry.Value, true
}

// Put stores value under key with the current time, replacing any previous
// entry. StoredAt never moves backwards for a key, even if the clock does.
func (s *Store[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if prev, ok := s.entries[key]; ok && prev.StoredAt.After(now) {
		now = prev.StoredAt
	}
	s.entries[key] = Entry[V]{Value: value, StoredAt: now}
}

// Peek returns the raw entry for key regardless of freshness.
func (s *Store[K, V]) Peek(key K) (Entry[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// Len returns the number of entries, stale ones included.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// TTL returns the freshness window.
func (s *Store[K, V]) TTL() time.Duration {
	return s.ttl
}

// Stats returns a snapshot of the read counters.
func (s *Store[K, V]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}
