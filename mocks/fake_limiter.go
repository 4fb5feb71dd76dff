//+build !release

package mocks

import "context"

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allow, f.err
}

// Keys returns all requested keys.
func (f *fakeLimiter) Keys() []string {
	return f.keys
}

// FakeNewLimiter creates a fake rate limiter.
func FakeNewLimiter(allow bool, err error) *fakeLimiter {
	return &fakeLimiter{
		allow: allow,
		err:   err,
	}
}
