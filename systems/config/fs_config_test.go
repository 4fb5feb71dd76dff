package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-home-io/guestkey/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir string, name string, data string) {
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0600))
}

// Tests correct loading.
func TestFSConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.yaml", "test")
	writeFile(t, dir, "_data.yaml", "test1")
	writeFile(t, dir, "data.txt", "test2")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "houses"), 0700))
	writeFile(t, dir, "houses/193.yml", "test3")

	c := NewConfigProvider(&ConstructConfig{
		Logger:  mocks.FakeNewLogger(nil),
		Options: map[string]string{OptionLocation: dir},
	})

	loaded := make([]string, 0)
	for d := range c.Load() {
		loaded = append(loaded, string(d))
	}

	assert.Equal(t, []string{"test", "test3"}, loaded)
}

// Tests missing folder.
func TestFSConfigMissingFolder(t *testing.T) {
	logger := mocks.FakeNewLogger(nil)
	c := NewConfigProvider(&ConstructConfig{
		Logger:  logger,
		Options: map[string]string{OptionLocation: filepath.Join(t.TempDir(), "missing")},
	})

	assert.Nil(t, c.Load())
	assert.NotNil(t, logger.Find("Failed to walk through files"))
}

// Tests unknown provider fallback.
func TestUnknownProvider(t *testing.T) {
	logger := mocks.FakeNewLogger(nil)
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "a")

	c := NewConfigProvider(&ConstructConfig{
		Logger:  logger,
		Options: map[string]string{"provider": "consul", OptionLocation: dir},
	})

	assert.NotNil(t, logger.Find("Unknown config provider, using file system"))

	loaded := 0
	for range c.Load() {
		loaded++
	}
	assert.Equal(t, 1, loaded)
}

// Tests file name filter.
func TestIsValidConfigFileName(t *testing.T) {
	data := map[string]bool{
		"a.yaml":          true,
		"/etc/x/b.YML":    true,
		"_disabled.yaml":  false,
		".hidden.yaml":    false,
		"notes.txt":       false,
		"configs/c.yaml~": false,
	}

	for k, v := range data {
		assert.Equal(t, v, IsValidConfigFileName(k), k)
	}
}
