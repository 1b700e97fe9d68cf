package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/ratelimit"
)

// RateLimitMemoryStore keeps, per key, the ascending request times that fall
// inside the most recent window. Limits are local to the process.
type RateLimitMemoryStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

// NewRateLimitMemoryStore creates an in-memory rate limit store. A nil now
// uses the wall clock.
func NewRateLimitMemoryStore(now ...func() time.Time) *RateLimitMemoryStore {
	clock := time.Now
	if len(now) > 0 && now[0] != nil {
		clock = now[0]
	}

	return &RateLimitMemoryStore{
		hits: make(map[string][]time.Time),
		now:  clock,
	}
}

func (s *RateLimitMemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)
	hits := s.hits[key]

	// hits is sorted, so the first entry inside the window splits it.
	first := sort.Search(len(hits), func(i int) bool { return hits[i].After(cutoff) })
	hits = append(hits[first:], now)
	s.hits[key] = hits

	return int64(len(hits)), nil
}

// Keys returns the number of tracked keys.
func (s *RateLimitMemoryStore) Keys() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.hits)
}

// Compile-time check.
var _ ratelimit.Store = (*RateLimitMemoryStore)(nil)
