package ratelimit

import "fmt"

// ErrUnknownProvider defines unknown limiter provider.
type ErrUnknownProvider struct {
	Name string
}

// Error formats output.
func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("rate limit provider %s is unknown", e.Name)
}
