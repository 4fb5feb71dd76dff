package permissions

import "fmt"

// ErrUnsupportedCommand defines unknown command type.
type ErrUnsupportedCommand struct {
	Type string
}

// Error formats output.
func (e *ErrUnsupportedCommand) Error() string {
	return fmt.Sprintf("command %s is not supported", e.Type)
}

// ErrInvalidPayload defines incorrect command payload.
type ErrInvalidPayload struct {
	Reason string
}

// Error formats output.
func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("invalid payload: %s", e.Reason)
}
