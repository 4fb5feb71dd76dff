package providers

import "context"

// IRateLimitProvider defines request rate limiter logic.
type IRateLimitProvider interface {
	Allow(ctx context.Context, key string) (bool, error)
}
