package settings

import (
	"time"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"github.com/go-home-io/guestkey/systems"
	"github.com/go-home-io/guestkey/systems/logger"
)

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// ComponentLogger returns logger specifically for system's provider.
func (s *settingsProvider) ComponentLogger(system systems.SystemType, provider string) common.ILoggerProvider {
	return logger.NewComponentLogger(&logger.ConstructComponentLogger{
		SystemLogger: s.logger,
		System:       system.String(),
		Provider:     provider,
	})
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// MasterSettings returns master settings.
func (s *settingsProvider) MasterSettings() *providers.MasterSettings {
	return s.mSettings
}

// Location returns reference timezone.
func (s *settingsProvider) Location() *time.Location {
	return s.location
}

// Derivation returns PIN derivation settings.
func (s *settingsProvider) Derivation() *providers.DerivationSettings {
	return s.derivation
}

// Feeds returns booking calendars keyed by booking key.
func (s *settingsProvider) Feeds() map[string]*providers.FeedSettings {
	return s.feeds
}

// Houses returns configured houses keyed by name.
func (s *settingsProvider) Houses() map[string]*providers.House {
	return s.houses
}

// Calendar returns booking calendar provider.
func (s *settingsProvider) Calendar() providers.ICalendarProvider {
	return s.calendar
}

// Permissions returns guest permission matrix.
func (s *settingsProvider) Permissions() providers.IPermissionProvider {
	return s.permissions
}

// RateLimiter returns request rate limiter.
func (s *settingsProvider) RateLimiter() providers.IRateLimitProvider {
	return s.rateLimiter
}
