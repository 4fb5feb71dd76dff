package access

import "fmt"

// ErrMalformedCredential defines credential without booking key or PIN.
type ErrMalformedCredential struct {
}

// Error formats output.
func (e *ErrMalformedCredential) Error() string {
	return "credential is malformed"
}

// ErrExpiredBooking defines reservation which is over.
type ErrExpiredBooking struct {
	Key string
}

// Error formats output.
func (e *ErrExpiredBooking) Error() string {
	return fmt.Sprintf("booking %s has expired", e.Key)
}

// ErrInactiveBooking defines reservation outside of device control hours.
type ErrInactiveBooking struct {
	Key string
}

// Error formats output.
func (e *ErrInactiveBooking) Error() string {
	return fmt.Sprintf("booking %s can't control devices now", e.Key)
}

// ErrForbidden defines entity not permitted for the booking.
type ErrForbidden struct {
	Key    string
	Entity string
}

// Error formats output.
func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("booking %s is not allowed to control %s", e.Key, e.Entity)
}

// ErrUnknownHouse defines house without configured control plane.
type ErrUnknownHouse struct {
	Name string
}

// Error formats output.
func (e *ErrUnknownHouse) Error() string {
	return fmt.Sprintf("house %s is unknown", e.Name)
}

// ErrEntityNotReadable defines entity hidden from guests.
type ErrEntityNotReadable struct {
	Entity string
}

// Error formats output.
func (e *ErrEntityNotReadable) Error() string {
	return fmt.Sprintf("entity %s is not readable", e.Entity)
}

// ErrUnsupportedReadKind defines unknown read request type.
type ErrUnsupportedReadKind struct {
	Kind string
}

// Error formats output.
func (e *ErrUnsupportedReadKind) Error() string {
	return fmt.Sprintf("read type %s is not supported", e.Kind)
}

// ErrInvalidEntity defines malformed entity identifier.
type ErrInvalidEntity struct {
	Entity string
}

// Error formats output.
func (e *ErrInvalidEntity) Error() string {
	return fmt.Sprintf("entity %s is invalid", e.Entity)
}

// ErrDeviceUnavailable defines control plane failure.
type ErrDeviceUnavailable struct {
	House string
	Err   error
}

// Error formats output.
func (e *ErrDeviceUnavailable) Error() string {
	return fmt.Sprintf("house %s is unavailable: %s", e.House, e.Err)
}

// Unwrap returns control plane error.
func (e *ErrDeviceUnavailable) Unwrap() error {
	return e.Err
}
