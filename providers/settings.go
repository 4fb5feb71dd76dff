package providers

import (
	"time"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/systems"
)

// ISettingsProvider defines settings loader provider logic.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	ComponentLogger(system systems.SystemType, provider string) common.ILoggerProvider
	Cron() ICronProvider
	Validator() IValidatorProvider
	MasterSettings() *MasterSettings
	Location() *time.Location
	Derivation() *DerivationSettings
	Feeds() map[string]*FeedSettings
	Houses() map[string]*House
	Calendar() ICalendarProvider
	Permissions() IPermissionProvider
	RateLimiter() IRateLimitProvider
}

const (
	// DefaultCheckInHour is the hour device controls become available.
	DefaultCheckInHour = 11
	// DefaultCheckOutHour is the hour device controls stop.
	DefaultCheckOutHour = 11
	// DefaultInfoEndHour is the hour informational access stops on check-out day.
	DefaultInfoEndHour = 23
)

// MasterSettings has configured data for the server.
// Hours have no default tags since midnight is a valid value,
// use NewMasterSettings before decoding.
type MasterSettings struct {
	Port            int      `yaml:"port" validate:"required,port" default:"8080"`
	Timezone        string   `yaml:"timezone" validate:"required,timezone" default:"Europe/London"`
	CheckInHour     int      `yaml:"checkInHour" validate:"gte=0,lte=23"`
	CheckOutHour    int      `yaml:"checkOutHour" validate:"gte=0,lte=23"`
	InfoEndHour     int      `yaml:"infoEndHour" validate:"gte=0,lte=23"`
	FetchTimeout    int      `yaml:"fetchTimeout" validate:"gte=1,lte=120" default:"15"`
	MonitorInterval string   `yaml:"monitorInterval" default:"@every 1m"`
	AllowedOrigins  []string `yaml:"allowedOrigins"`
}

// NewMasterSettings returns master settings with default window hours.
func NewMasterSettings() *MasterSettings {
	return &MasterSettings{
		CheckInHour:  DefaultCheckInHour,
		CheckOutHour: DefaultCheckOutHour,
		InfoEndHour:  DefaultInfoEndHour,
	}
}

// DerivationSettings has data describing how guest PINs are derived.
type DerivationSettings struct {
	PinLength int      `yaml:"pinLength" validate:"gte=4,lte=8" default:"4"`
	Platforms []string `yaml:"platforms"`
	Blocked   []string `yaml:"blocked"`
}

// FeedSettings has data describing single booking calendar.
type FeedSettings struct {
	Key   string `yaml:"key" validate:"required,excludes=-"`
	URL   string `yaml:"url" validate:"required,url"`
	House string `yaml:"house" validate:"required"`
}

// HouseSettings has data describing single house control plane.
type HouseSettings struct {
	Name     string   `yaml:"name" validate:"required"`
	URL      string   `yaml:"url" validate:"required,url"`
	Token    string   `yaml:"token" validate:"required"`
	Readable []string `yaml:"readable"`
}

// PermissionSettings has raw guest permission matrix.
// Booking identifier -> category -> entities.
type PermissionSettings struct {
	Bookings map[string]map[string][]string `yaml:"bookings" validate:"required,min=1,dive,dive,dive,entityid"`
}

// RateLimitSettings has configured data for the rate limiter.
type RateLimitSettings struct {
	Requests int    `yaml:"requests" validate:"gte=1" default:"60"`
	Window   string `yaml:"window" validate:"required" default:"60s"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
}

// WindowDuration parses configured window.
func (r *RateLimitSettings) WindowDuration() time.Duration {
	d, err := time.ParseDuration(r.Window)
	if err != nil || d <= 0 {
		return time.Minute
	}

	return d
}
