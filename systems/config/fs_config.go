package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/utils"
)

// Default file system config loader.
type fsConfig struct {
	location string
	logger   common.ILoggerProvider
}

// Constructs file system loader.
func newFsConfig(options map[string]string, logger common.ILoggerProvider) *fsConfig {
	loc, ok := options[OptionLocation]
	if !ok || "" == loc {
		loc = utils.GetDefaultConfigsDir()
		logger.Info("Using default location", common.LogFileToken, loc)
	}

	return &fsConfig{
		location: loc,
		logger:   logger,
	}
}

// IsValidConfigFileName checks whether file should be loaded.
// Yaml files starting with underscore are ignored.
func IsValidConfigFileName(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "_") || strings.HasPrefix(base, ".") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(base))
	return ext == ".yaml" || ext == ".yml"
}

// Load files from local file system.
// Returns nil if folder can't be read.
func (c *fsConfig) Load() chan []byte {
	fileList := make([]string, 0)
	fError := filepath.Walk(c.location, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			c.logger.Warn("Failed get folder files", common.LogFileToken, path)
			return err
		}
		if f.IsDir() {
			return nil
		}
		fileList = append(fileList, path)
		return nil
	})

	if fError != nil {
		c.logger.Error("Failed to walk through files", fError, common.LogFileToken, c.location)
		return nil
	}

	filesChan := make(chan []byte)

	go func() {
		for _, v := range fileList {
			if !IsValidConfigFileName(v) {
				continue
			}

			fileData, err := os.ReadFile(v)
			if err != nil {
				c.logger.Error("Failed to read config file", err, common.LogFileToken, v)
				continue
			}

			c.logger.Info("Processing config file", common.LogFileToken, v)
			filesChan <- fileData
		}

		close(filesChan)
	}()

	return filesChan
}
