//+build !release

package mocks

import (
	"sync"
)

// FakeLogEntry is a single recorded log message.
type FakeLogEntry struct {
	Level   string
	Message string
	Fields  map[string]string
}

// Fake logger
type fakeLogger struct {
	sync.Mutex
	callback func(string)
	entries  []*FakeLogEntry
}

// Debug records debug level message.
func (p *fakeLogger) Debug(msg string, fields ...string) {
	p.record("debug", msg, fields...)
}

// Info records info level message.
func (p *fakeLogger) Info(msg string, fields ...string) {
	p.record("info", msg, fields...)
}

// Warn records warning level message.
func (p *fakeLogger) Warn(msg string, fields ...string) {
	p.record("warn", msg, fields...)
}

// Error records error level message.
func (p *fakeLogger) Error(msg string, err error, fields ...string) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	}
	p.record("error", msg, fields...)
}

// Fatal records fatal level message. Doesn't exit.
func (p *fakeLogger) Fatal(msg string, err error, fields ...string) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	}
	p.record("fatal", msg, fields...)
}

// Flush does nothing.
func (p *fakeLogger) Flush() {
}

// Entries returns all recorded messages.
func (p *fakeLogger) Entries() []*FakeLogEntry {
	p.Lock()
	defer p.Unlock()
	return append([]*FakeLogEntry{}, p.entries...)
}

// Find returns first recorded message with the given text.
func (p *fakeLogger) Find(msg string) *FakeLogEntry {
	for _, v := range p.Entries() {
		if v.Message == msg {
			return v
		}
	}

	return nil
}

func (p *fakeLogger) record(level string, msg string, fields ...string) {
	p.Lock()
	f := make(map[string]string, len(fields)/2)
	for ii := 0; ii+1 < len(fields); ii += 2 {
		f[fields[ii]] = fields[ii+1]
	}
	p.entries = append(p.entries, &FakeLogEntry{Level: level, Message: msg, Fields: f})
	p.Unlock()

	if p.callback != nil {
		p.callback(msg)
	}
}

// FakeNewLogger creates a fake logger provider.
func FakeNewLogger(callback func(string)) *fakeLogger {
	return &fakeLogger{
		callback: callback,
		entries:  make([]*FakeLogEntry, 0),
	}
}
