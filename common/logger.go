// Package common contains types shared by every guestkey system.
package common

// ILoggerProvider defines logger used across the systems.
// Fields are passed as key-value pairs.
type ILoggerProvider interface {
	Debug(msg string, fields ...string)
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, err error, fields ...string)
	Fatal(msg string, err error, fields ...string)
	Flush()
}
