package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests json output with fields.
func TestJSONLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewLoggerProvider(&ConstructLogger{
		RawConfig: []byte("level: debug\nformat: json"),
		NodeID:    "node-1",
		Output:    buf,
	})
	require.NoError(t, err)

	l.Warn("Rate limit exceeded", common.LogIPToken, "203.0.113.7", "dangling")

	entry := make(map[string]string)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Rate limit exceeded", entry["msg"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "203.0.113.7", entry[common.LogIPToken])
	assert.Equal(t, "node-1", entry["node"])
	_, ok := entry["dangling"]
	assert.False(t, ok)
}

// Tests level filtering.
func TestLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewLoggerProvider(&ConstructLogger{
		RawConfig: []byte("level: warn"),
		Output:    buf,
	})
	require.NoError(t, err)

	l.Debug("debug message")
	l.Info("info message")
	assert.Equal(t, 0, buf.Len())

	l.Error("error message", errors.New("boom"))
	out := buf.String()
	assert.True(t, strings.Contains(out, "error message"), out)
	assert.True(t, strings.Contains(out, "boom"), out)
}

// Tests fatal messages.
func TestFatal(t *testing.T) {
	code := 0
	l, err := NewLoggerProvider(&ConstructLogger{
		Output:   &bytes.Buffer{},
		ExitFunc: func(c int) { code = c },
	})
	require.NoError(t, err)

	l.Fatal("fatal message", errors.New("boom"))
	assert.Equal(t, 1, code)
}

// Tests broken configs.
func TestWrongConfig(t *testing.T) {
	data := []string{
		"format: xml",
		"level: loud",
		"level: [",
	}

	for _, v := range data {
		_, err := NewLoggerProvider(&ConstructLogger{RawConfig: []byte(v)})
		assert.Error(t, err, v)
	}

	_, err := NewLoggerProvider(&ConstructLogger{RawConfig: []byte("format: xml")})
	_, ok := err.(*ErrUnknownFormat)
	assert.True(t, ok)
}

// Tests that component fields are appended.
func TestComponentLogger(t *testing.T) {
	system := mocks.FakeNewLogger(nil)
	l := NewComponentLogger(&ConstructComponentLogger{
		SystemLogger: system,
		System:       "booking",
		Provider:     "ical",
	})

	l.Info("Found matching reservations", common.LogBookingToken, "31")
	l.Error("Failed to fetch booking calendar", errors.New("timeout"))

	entry := system.Find("Found matching reservations")
	require.NotNil(t, entry)
	assert.Equal(t, "31", entry.Fields[common.LogBookingToken])
	assert.Equal(t, "booking", entry.Fields[common.LogSystemToken])
	assert.Equal(t, "ical", entry.Fields[common.LogProviderToken])

	entry = system.Find("Failed to fetch booking calendar")
	require.NotNil(t, entry)
	assert.Equal(t, "error", entry.Level)
}
