// Package access implements guest access windows and the guest guard.
package access

import "fmt"

// Level describes guest entitlement at a given instant.
type Level int

const (
	// LevelNone is a sentinel used before any reservation matched.
	LevelNone Level = iota
	// LevelDenied describes reservation which is over.
	LevelDenied
	// LevelPartial allows informational reads only.
	LevelPartial
	// LevelFull allows device control.
	LevelFull
)

var levelNames = map[Level]string{
	LevelNone:    "none",
	LevelDenied:  "denied",
	LevelPartial: "partial",
	LevelFull:    "full",
}

// String returns lowercase level name.
func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}

	return fmt.Sprintf("Level(%d)", int(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// CanRead checks whether informational reads are allowed.
func (l Level) CanRead() bool {
	return l == LevelPartial || l == LevelFull
}

// CanControl checks whether device commands are allowed.
func (l Level) CanControl() bool {
	return l == LevelFull
}
