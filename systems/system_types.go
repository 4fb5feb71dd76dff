package systems

import (
	"fmt"
	"strings"
)

// SystemType is an enum describing known system types.
type SystemType int

const (
	// SysGoHome describes the server itself.
	SysGoHome SystemType = iota
	// SysLogger describes logger system.
	SysLogger
	// SysBooking describes booking calendars and PIN derivation.
	SysBooking
	// SysHouse describes smart-home control planes.
	SysHouse
	// SysPermissions describes guest permission matrix.
	SysPermissions
	// SysRateLimit describes request rate limiter.
	SysRateLimit
	// SysConfig describes config provider system.
	SysConfig
)

var systemTypeNames = map[SystemType]string{
	SysGoHome:      "go-home",
	SysLogger:      "logger",
	SysBooking:     "booking",
	SysHouse:       "house",
	SysPermissions: "permissions",
	SysRateLimit:   "ratelimit",
	SysConfig:      "config",
}

// String returns kebab-case name of the system.
func (i SystemType) String() string {
	if n, ok := systemTypeNames[i]; ok {
		return n
	}

	return fmt.Sprintf("SystemType(%d)", int(i))
}

// SystemTypeString parses system name from the config.
func SystemTypeString(s string) (SystemType, error) {
	s = strings.ToLower(s)
	for k, v := range systemTypeNames {
		if v == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%s does not belong to SystemType values", s)
}
