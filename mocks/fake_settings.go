//+build !release

package mocks

import (
	"time"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"github.com/go-home-io/guestkey/systems"
)

// IFakeSettings adds additional capabilities to a fake settings provider.
type IFakeSettings interface {
	AddMasterSettings(*providers.MasterSettings)
	AddFeeds(map[string]*providers.FeedSettings)
	AddHouses(map[string]*providers.House)
	AddCalendar(providers.ICalendarProvider)
	AddPermissions(providers.IPermissionProvider)
	AddRateLimiter(providers.IRateLimitProvider)
}

type fakeSettings struct {
	logger         common.ILoggerProvider
	cron           providers.ICronProvider
	location       *time.Location
	masterSettings *providers.MasterSettings
	feeds          map[string]*providers.FeedSettings
	houses         map[string]*providers.House
	calendar       providers.ICalendarProvider
	permissions    providers.IPermissionProvider
	limiter        providers.IRateLimitProvider
}

func (f *fakeSettings) SystemLogger() common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) ComponentLogger(systems.SystemType, string) common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) Cron() providers.ICronProvider {
	return f.cron
}

func (f *fakeSettings) Validator() providers.IValidatorProvider {
	return FakeNewValidator(true)
}

func (f *fakeSettings) MasterSettings() *providers.MasterSettings {
	return f.masterSettings
}

func (f *fakeSettings) Location() *time.Location {
	return f.location
}

func (f *fakeSettings) Derivation() *providers.DerivationSettings {
	return &providers.DerivationSettings{PinLength: 4}
}

func (f *fakeSettings) Feeds() map[string]*providers.FeedSettings {
	return f.feeds
}

func (f *fakeSettings) Houses() map[string]*providers.House {
	return f.houses
}

func (f *fakeSettings) Calendar() providers.ICalendarProvider {
	return f.calendar
}

func (f *fakeSettings) Permissions() providers.IPermissionProvider {
	return f.permissions
}

func (f *fakeSettings) RateLimiter() providers.IRateLimitProvider {
	return f.limiter
}

func (f *fakeSettings) AddMasterSettings(s *providers.MasterSettings) {
	f.masterSettings = s
}

func (f *fakeSettings) AddFeeds(feeds map[string]*providers.FeedSettings) {
	f.feeds = feeds
}

func (f *fakeSettings) AddHouses(houses map[string]*providers.House) {
	f.houses = houses
}

func (f *fakeSettings) AddCalendar(c providers.ICalendarProvider) {
	f.calendar = c
}

func (f *fakeSettings) AddPermissions(p providers.IPermissionProvider) {
	f.permissions = p
}

func (f *fakeSettings) AddRateLimiter(l providers.IRateLimitProvider) {
	f.limiter = l
}

// FakeNewSettings creates a new fake settings provider.
// Reference timezone is UTC unless loc is set.
func FakeNewSettings(logCallback func(string), loc *time.Location) providers.ISettingsProvider {
	if nil == loc {
		loc = time.UTC
	}

	return &fakeSettings{
		logger:   FakeNewLogger(logCallback),
		cron:     FakeNewCron(),
		location: loc,
		masterSettings: &providers.MasterSettings{
			Port:            8080,
			Timezone:        loc.String(),
			CheckInHour:     11,
			CheckOutHour:    11,
			InfoEndHour:     23,
			FetchTimeout:    15,
			MonitorInterval: "@every 1m",
		},
		feeds:   make(map[string]*providers.FeedSettings),
		houses:  make(map[string]*providers.House),
		limiter: FakeNewLimiter(true, nil),
	}
}
