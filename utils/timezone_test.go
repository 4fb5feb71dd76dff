package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func london(t *testing.T) *time.Location {
	loc, err := LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

// Tests unknown timezone.
func TestLoadLocationFail(t *testing.T) {
	_, err := LoadLocation("Mars/Olympus")
	assert.Error(t, err)
}

// Tests hour placement in summer and winter time.
func TestAtHour(t *testing.T) {
	loc := london(t)

	summer := time.Date(2026, time.July, 10, 0, 0, 0, 0, loc)
	at := AtHour(summer, loc, 11)
	assert.Equal(t, time.Date(2026, time.July, 10, 10, 0, 0, 0, time.UTC), at.UTC(), "bst")

	winter := time.Date(2026, time.January, 10, 0, 0, 0, 0, loc)
	at = AtHour(winter, loc, 23)
	assert.Equal(t, time.Date(2026, time.January, 10, 23, 0, 0, 0, time.UTC), at.UTC(), "gmt")
}

// Tests that calendar date is taken in reference timezone, not in the instant's zone.
func TestAtHourUsesReferenceDate(t *testing.T) {
	loc := london(t)
	// 23:30 UTC on 9 July is already 10 July in London.
	in := time.Date(2026, time.July, 9, 23, 30, 0, 0, time.UTC)
	at := AtHour(in, loc, 11)
	assert.Equal(t, 10, at.Day())
	assert.Equal(t, 11, at.Hour())
}

// Tests calendar values parsing.
func TestParseFloating(t *testing.T) {
	loc := london(t)
	data := []struct {
		value    string
		tzid     string
		expected time.Time
	}{
		{
			value:    "20260710",
			expected: time.Date(2026, time.July, 9, 23, 0, 0, 0, time.UTC),
		},
		{
			value:    "20260710T150000Z",
			expected: time.Date(2026, time.July, 10, 15, 0, 0, 0, time.UTC),
		},
		{
			value:    "20260710T150000",
			expected: time.Date(2026, time.July, 10, 14, 0, 0, 0, time.UTC),
		},
		{
			value:    "20260710T150000",
			tzid:     "America/New_York",
			expected: time.Date(2026, time.July, 10, 19, 0, 0, 0, time.UTC),
		},
		{
			value:    "20260710T150000",
			tzid:     "Unknown/Zone",
			expected: time.Date(2026, time.July, 10, 14, 0, 0, 0, time.UTC),
		},
	}

	for _, v := range data {
		got, err := ParseFloating(v.value, v.tzid, loc)
		require.NoError(t, err, v.value)
		assert.True(t, v.expected.Equal(got), "%s %s: %s", v.value, v.tzid, got)
		assert.Equal(t, loc, got.Location(), v.value)
	}
}

// Tests broken calendar values.
func TestParseFloatingFail(t *testing.T) {
	loc := london(t)
	for _, v := range []string{"", "2026-07-10", "20261310", "20260710T25", "20260710T250000Z"} {
		_, err := ParseFloating(v, "", loc)
		assert.Error(t, err, v)
	}
}

// Tests guest-facing date format.
func TestFormatDisplayDate(t *testing.T) {
	loc := london(t)
	assert.Equal(t, "Friday, 10 July 2026",
		FormatDisplayDate(time.Date(2026, time.July, 9, 23, 30, 0, 0, time.UTC), loc))
}
