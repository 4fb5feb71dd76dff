package utils

import (
	"strings"
	"time"

	// Reference timezone must resolve on hosts without tz database.
	_ "time/tzdata"

	"github.com/pkg/errors"
)

const (
	// Calendar date format.
	icalDateLayout = "20060102"
	// Calendar date-time format without zone.
	icalDateTimeLayout = "20060102T150405"
	// DisplayDateLayout is used for guest-facing check-in and check-out dates.
	DisplayDateLayout = "Monday, 2 January 2006"
)

// LoadLocation resolves IANA timezone name.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "timezone %s", name)
	}

	return loc, nil
}

// AtHour returns hour:00 wall-clock instant of the t's calendar date, both taken in loc.
// DST transitions are resolved by time.Date.
func AtHour(t time.Time, loc *time.Location, hour int) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, hour, 0, 0, 0, loc)
}

// ParseFloating parses calendar DATE or DATE-TIME value.
// Floating values, dates and unknown TZIDs are interpreted in loc.
// UTC values are converted into loc.
func ParseFloating(value string, tzid string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	switch {
	case len(value) == len(icalDateLayout):
		return time.ParseInLocation(icalDateLayout, value, loc)
	case strings.HasSuffix(value, "Z"):
		t, err := time.Parse(icalDateTimeLayout, strings.TrimSuffix(value, "Z"))
		if err != nil {
			return time.Time{}, err
		}

		return t.In(loc), nil
	}

	zone := loc
	if tzid != "" {
		if l, err := time.LoadLocation(tzid); err == nil {
			zone = l
		}
	}

	t, err := time.ParseInLocation(icalDateTimeLayout, value, zone)
	if err != nil {
		return time.Time{}, err
	}

	return t.In(loc), nil
}

// FormatDisplayDate formats date for guests.
func FormatDisplayDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DisplayDateLayout)
}
