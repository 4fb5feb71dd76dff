package ratelimit

import (
	"context"
	"time"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Redis-backed fixed-window limiter shared between instances.
type redisLimiter struct {
	logger common.ILoggerProvider
	limit  int
	window time.Duration
	client *redis.Client
}

func newRedisLimiter(logger common.ILoggerProvider, set *providers.RateLimitSettings) *redisLimiter {
	return &redisLimiter{
		logger: logger,
		limit:  set.Requests,
		window: set.WindowDuration(),
		client: redis.NewClient(&redis.Options{
			Addr:     set.Address,
			Password: set.Password,
			DB:       set.DB,
		}),
	}
}

// Allow counts request with INCR and starts the window on the first hit.
func (r *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key
	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		r.logger.Error("Failed to increment rate limit counter", err, common.LogIPToken, key)
		return true, errors.Wrap(err, "redis incr")
	}

	if 1 == count {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			r.logger.Error("Failed to set rate limit window", err, common.LogIPToken, key)
		}
	}

	return count <= int64(r.limit), nil
}
