package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/go-home-io/guestkey/providers"
	"github.com/patrickmn/go-cache"
)

// In-process fixed-window limiter.
type memoryLimiter struct {
	sync.Mutex
	limit  int
	window time.Duration
	store  *cache.Cache
}

func newMemoryLimiter(set *providers.RateLimitSettings) *memoryLimiter {
	window := set.WindowDuration()
	return &memoryLimiter{
		limit:  set.Requests,
		window: window,
		store:  cache.New(window, 2*window),
	}
}

// Allow counts request and checks whether it fits into the window.
func (m *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.Lock()
	defer m.Unlock()

	k := keyPrefix + key
	if err := m.store.Add(k, 1, m.window); err == nil {
		return m.limit >= 1, nil
	}

	count, err := m.store.IncrementInt(k, 1)
	if err != nil {
		m.store.Set(k, 1, m.window)
		count = 1
	}

	return count <= m.limit, nil
}
