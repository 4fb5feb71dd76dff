// Package utils contains helpers shared by guestkey systems.
package utils

import (
	"fmt"
	"os"
	"regexp"
)

// Smart-home entity id: <domain>.<object_id>.
var entityIDRegexp = regexp.MustCompile(`^[a-z_]+\.[a-z0-9_]+$`)

// IsEntityID checks whether value looks like a smart-home entity id.
func IsEntityID(value string) bool {
	return entityIDRegexp.MatchString(value)
}

// GetCurrentWorkingDir returns application working directory.
func GetCurrentWorkingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic("Failed to get current working dir")
	}

	return cwd
}

// GetDefaultConfigsDir returns default config directory which is cwd/configs.
func GetDefaultConfigsDir() string {
	if ConfigDir != "" {
		return ConfigDir
	}

	return fmt.Sprintf("%s/configs", GetCurrentWorkingDir())
}

// ConfigDir allows to re-write default config directory.
var ConfigDir = ""
