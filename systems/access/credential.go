package access

import "strings"

const credentialSeparator = "-"

// Credential is a caller-presented booking key and PIN pair.
type Credential struct {
	BookingKey string
	Pin        string
}

// ParseCredential splits "<bookingKey>-<pin>" on the first separator.
func ParseCredential(raw string) (*Credential, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), credentialSeparator, 2)
	if len(parts) != 2 || "" == parts[0] || "" == parts[1] {
		return nil, &ErrMalformedCredential{}
	}

	return &Credential{
		BookingKey: parts[0],
		Pin:        parts[1],
	}, nil
}
