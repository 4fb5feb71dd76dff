package logger

import "fmt"

// ErrUnknownFormat defines unsupported log format.
type ErrUnknownFormat struct {
	Format string
}

// Error formats output.
func (e *ErrUnknownFormat) Error() string {
	return fmt.Sprintf("log format %s is unknown", e.Format)
}
