package access

import (
	"time"

	"github.com/go-home-io/guestkey/providers"
	"github.com/go-home-io/guestkey/utils"
)

// Hours has boundary hours of the access window.
type Hours struct {
	CheckIn  int
	CheckOut int
	InfoEnd  int
}

// DefaultHours returns 11:00 / 11:00 / 23:00 boundaries.
func DefaultHours() Hours {
	return Hours{
		CheckIn:  providers.DefaultCheckInHour,
		CheckOut: providers.DefaultCheckOutHour,
		InfoEnd:  providers.DefaultInfoEndHour,
	}
}

// Window has boundaries computed for a single reservation.
type Window struct {
	ControlsStart time.Time
	ControlsEnd   time.Time
	InfoEnd       time.Time
}

// Calculator computes access levels in the reference timezone.
type Calculator struct {
	loc   *time.Location
	hours Hours
}

// NewCalculator constructs a new access window calculator.
func NewCalculator(loc *time.Location, hours Hours) *Calculator {
	if nil == loc {
		loc = time.UTC
	}

	return &Calculator{
		loc:   loc,
		hours: hours,
	}
}

// Location returns reference timezone.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Window computes boundaries of the reservation.
func (c *Calculator) Window(r *providers.Reservation) *Window {
	return &Window{
		ControlsStart: utils.AtHour(r.Start, c.loc, c.hours.CheckIn),
		ControlsEnd:   utils.AtHour(r.End, c.loc, c.hours.CheckOut),
		InfoEnd:       utils.AtHour(r.End, c.loc, c.hours.InfoEnd),
	}
}

// Level computes access level of the reservation at now.
func (c *Calculator) Level(r *providers.Reservation, now time.Time) Level {
	w := c.Window(r)

	switch {
	case !now.Before(w.InfoEnd):
		return LevelDenied
	case !now.Before(w.ControlsStart) && now.Before(w.ControlsEnd):
		return LevelFull
	default:
		return LevelPartial
	}
}
