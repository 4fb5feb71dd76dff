// Package ratelimit implements fixed-window request limiters.
package ratelimit

import (
	"strings"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
)

const (
	// ProviderMemory describes in-process limiter.
	ProviderMemory = "memory"
	// ProviderRedis describes redis-backed limiter.
	ProviderRedis = "redis"

	keyPrefix = "guestkey:ratelimit:"
)

// ConstructRateLimiter has data required for a new rate limiter.
type ConstructRateLimiter struct {
	Logger   common.ILoggerProvider
	Provider string
	Settings *providers.RateLimitSettings
}

// NewRateLimitProvider constructs limiter of the requested provider.
func NewRateLimitProvider(ctor *ConstructRateLimiter) (providers.IRateLimitProvider, error) {
	set := ctor.Settings
	if nil == set {
		set = &providers.RateLimitSettings{Requests: 60, Window: "60s"}
	}

	switch strings.ToLower(ctor.Provider) {
	case "", ProviderMemory:
		return newMemoryLimiter(set), nil
	case ProviderRedis:
		return newRedisLimiter(ctor.Logger, set), nil
	}

	return nil, &ErrUnknownProvider{Name: ctor.Provider}
}
