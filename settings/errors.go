package settings

import "fmt"

// ErrUnknownProvider defines unknown provider of a known system.
type ErrUnknownProvider struct {
	Provider string
}

// Error formats output.
func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("provider %s is unknown", e.Provider)
}

// ErrInvalidRecord defines config record which failed validation.
type ErrInvalidRecord struct {
	Name string
}

// Error formats output.
func (e *ErrInvalidRecord) Error() string {
	return fmt.Sprintf("config record %s is invalid", e.Name)
}
