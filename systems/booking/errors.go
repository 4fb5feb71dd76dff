package booking

import "fmt"

// ErrUnknownBookingKey defines booking key without configured calendar.
type ErrUnknownBookingKey struct {
	Key string
}

// Error formats output.
func (e *ErrUnknownBookingKey) Error() string {
	return fmt.Sprintf("booking key %s is unknown", e.Key)
}

// ErrInvalidCredential defines PIN which doesn't match any reservation.
type ErrInvalidCredential struct {
	Key string
}

// Error formats output.
func (e *ErrInvalidCredential) Error() string {
	return fmt.Sprintf("pin doesn't match any reservation of booking %s", e.Key)
}

// ErrUpstreamUnavailable defines calendar feed failure.
type ErrUpstreamUnavailable struct {
	Key string
	Err error
}

// Error formats output.
func (e *ErrUpstreamUnavailable) Error() string {
	return fmt.Sprintf("calendar of booking %s is unavailable: %s", e.Key, e.Err)
}

// Unwrap returns calendar error.
func (e *ErrUpstreamUnavailable) Unwrap() error {
	return e.Err
}
