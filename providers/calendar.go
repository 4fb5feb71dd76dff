package providers

import (
	"context"
	"time"
)

// ICalendarProvider defines booking calendar feed logic.
type ICalendarProvider interface {
	Reservations(ctx context.Context, feedURL string) ([]*Reservation, error)
}

// Reservation is a single booking record taken from the calendar feed.
// Start and End are located in the reference timezone.
type Reservation struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}
