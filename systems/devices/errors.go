package devices

import "fmt"

// ErrUpstream defines non-successful Home Assistant response.
type ErrUpstream struct {
	Status int
}

// Error formats output.
func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("home assistant responded with status %d", e.Status)
}
