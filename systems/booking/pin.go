// Package booking derives guest PINs from calendar reservations
// and matches guest credentials against them.
package booking

import (
	"crypto/subtle"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-home-io/guestkey/providers"
)

const (
	// DefaultPinLength is a number of trailing phone digits used as a PIN.
	DefaultPinLength = 4
	// Length of the name-based PIN.
	namePinLength = 6
)

var (
	// DefaultPlatforms lists booking platforms prefixing summaries with "<Platform> (<code>) - ".
	DefaultPlatforms = []string{"Airbnb", "Vrbo", "Booking.com"}
	// DefaultBlocked lists summaries used by platforms for blocked dates.
	DefaultBlocked = []string{"Blocked", "Not available", "Airbnb (Not available)"}

	phoneRegexp = regexp.MustCompile(`Phone:[ \t]*([+\d \t()-]+)`)
)

// Pins holds PINs derived from a single reservation.
// Empty value means PIN is absent.
type Pins struct {
	Primary  string
	Fallback string
}

// IsEmpty checks whether reservation could ever be matched.
func (p Pins) IsEmpty() bool {
	return p.Primary == "" && p.Fallback == ""
}

// Matches compares provided PIN with primary and then fallback one.
// Comparison is exact and case-sensitive.
func (p Pins) Matches(pin string) bool {
	return equal(p.Primary, pin) || equal(p.Fallback, pin)
}

// Deriver turns reservation free-text fields into guest PINs.
type Deriver struct {
	pinLength int
	prefix    *regexp.Regexp
	blocked   []string
}

// NewDeriver constructs a new PIN deriver.
func NewDeriver(set *providers.DerivationSettings) *Deriver {
	d := &Deriver{
		pinLength: DefaultPinLength,
		blocked:   DefaultBlocked,
	}

	platforms := DefaultPlatforms
	if set != nil {
		if set.PinLength > 0 {
			d.pinLength = set.PinLength
		}
		if len(set.Platforms) > 0 {
			platforms = set.Platforms
		}
		if len(set.Blocked) > 0 {
			d.blocked = set.Blocked
		}
	}

	quoted := make([]string, 0, len(platforms))
	for _, v := range platforms {
		quoted = append(quoted, regexp.QuoteMeta(strings.TrimSpace(v)))
	}

	d.prefix = regexp.MustCompile(`(?i)^\s*(?:` + strings.Join(quoted, "|") + `)\s*\(.*?\)\s*-\s*`)
	return d
}

// PinLength returns configured phone PIN length.
func (d *Deriver) PinLength() int {
	return d.pinLength
}

// Derive returns primary (phone) and fallback (name) PINs.
// Name PIN is derived only when phone one is absent.
func (d *Deriver) Derive(description string, summary string) Pins {
	p := Pins{Primary: d.PhonePin(description)}
	if p.Primary == "" {
		p.Fallback = d.NamePin(summary)
	}

	return p
}

// PhonePin returns trailing digits of the "Phone:" field.
func (d *Deriver) PhonePin(description string) string {
	m := phoneRegexp.FindStringSubmatch(description)
	if len(m) < 2 {
		return ""
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, m[1])

	if len(digits) < d.pinLength {
		return ""
	}

	return digits[len(digits)-d.pinLength:]
}

// NamePin returns first characters of the guest name.
// Blocked dates never produce a PIN.
func (d *Deriver) NamePin(summary string) string {
	name := d.GuestName(summary)
	if name == "" || d.isBlocked(name) {
		return ""
	}

	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)

	runes := []rune(compact)
	if len(runes) > namePinLength {
		runes = runes[:namePinLength]
	}

	return string(runes)
}

// GuestName strips booking platform prefix from the summary.
func (d *Deriver) GuestName(summary string) string {
	return strings.TrimSpace(d.prefix.ReplaceAllString(summary, ""))
}

func (d *Deriver) isBlocked(name string) bool {
	for _, v := range d.blocked {
		if strings.EqualFold(v, name) {
			return true
		}
	}

	return false
}

// Constant-time comparison. Absent PIN never matches.
func equal(expected string, provided string) bool {
	if expected == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
