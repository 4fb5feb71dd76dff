// Package config provides configuration sources.
package config

import (
	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/systems"
	"github.com/go-home-io/guestkey/systems/logger"
)

const (
	// ProviderFS describes local file system config source.
	ProviderFS = "fs"
	// OptionLocation describes config folder option.
	OptionLocation = "location"
)

// IConfigProvider provides capabilities for loading system configuration.
type IConfigProvider interface {
	Load() chan []byte
}

// ConstructConfig contains data required for a new config provider.
type ConstructConfig struct {
	Options map[string]string
	Logger  common.ILoggerProvider
}

// NewConfigProvider constructs a new config provider.
// File system is the only supported source, unknown providers fall back to it.
func NewConfigProvider(ctor *ConstructConfig) IConfigProvider {
	options := ctor.Options
	if nil == options {
		options = make(map[string]string)
	}

	requested, ok := options[common.LogProviderToken]
	if ok && requested != ProviderFS {
		ctor.Logger.Warn("Unknown config provider, using file system",
			common.LogProviderToken, requested, common.LogSystemToken, systems.SysConfig.String())
	}

	configLogger := logger.NewComponentLogger(&logger.ConstructComponentLogger{
		SystemLogger: ctor.Logger,
		Provider:     ProviderFS,
		System:       systems.SysConfig.String(),
	})

	return newFsConfig(options, configLogger)
}
