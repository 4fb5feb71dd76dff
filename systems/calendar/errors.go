package calendar

import "fmt"

// ErrBadStatus defines non-successful feed response.
type ErrBadStatus struct {
	Status int
}

// Error formats output.
func (e *ErrBadStatus) Error() string {
	return fmt.Sprintf("calendar responded with status %d", e.Status)
}

// ErrInvalidEvent defines calendar event which can't become a reservation.
type ErrInvalidEvent struct {
	UID    string
	Reason string
}

// Error formats output.
func (e *ErrInvalidEvent) Error() string {
	return fmt.Sprintf("event %s %s", e.UID, e.Reason)
}
