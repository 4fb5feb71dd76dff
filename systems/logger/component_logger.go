package logger

import (
	"github.com/go-home-io/guestkey/common"
)

// Component logger implementation.
type componentLogger struct {
	systemLogger    common.ILoggerProvider
	componentFields []string
}

// ConstructComponentLogger has data required for a new component logger.
type ConstructComponentLogger struct {
	SystemLogger common.ILoggerProvider
	System       string
	Provider     string
}

// NewComponentLogger constructs a new component logger.
// This is another level of abstraction which adds system type
// and provider name to every message of the system logger.
func NewComponentLogger(ctor *ConstructComponentLogger) common.ILoggerProvider {
	return &componentLogger{
		systemLogger:    ctor.SystemLogger,
		componentFields: []string{common.LogSystemToken, ctor.System, common.LogProviderToken, ctor.Provider},
	}
}

// Debug sends debug level message.
func (l *componentLogger) Debug(msg string, fields ...string) {
	l.systemLogger.Debug(msg, append(fields, l.componentFields...)...)
}

// Info sends info level message.
func (l *componentLogger) Info(msg string, fields ...string) {
	l.systemLogger.Info(msg, append(fields, l.componentFields...)...)
}

// Warn sends warning level message.
func (l *componentLogger) Warn(msg string, fields ...string) {
	l.systemLogger.Warn(msg, append(fields, l.componentFields...)...)
}

// Error sends error level message.
func (l *componentLogger) Error(msg string, err error, fields ...string) {
	l.systemLogger.Error(msg, err, append(fields, l.componentFields...)...)
}

// Fatal sends fatal level message and exits.
func (l *componentLogger) Fatal(msg string, err error, fields ...string) {
	l.systemLogger.Fatal(msg, err, append(fields, l.componentFields...)...)
}

// Flush flushes logger buffer if any.
func (l *componentLogger) Flush() {
	l.systemLogger.Flush()
}
