// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"github.com/go-home-io/guestkey/systems"
	"github.com/go-home-io/guestkey/systems/booking"
	"github.com/go-home-io/guestkey/systems/calendar"
	"github.com/go-home-io/guestkey/systems/config"
	"github.com/go-home-io/guestkey/systems/devices"
	"github.com/go-home-io/guestkey/systems/logger"
	"github.com/go-home-io/guestkey/systems/permissions"
	"github.com/go-home-io/guestkey/systems/ratelimit"
	"github.com/go-home-io/guestkey/utils"
	"github.com/gobwas/glob"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "settings"
)

const (
	// Describes config record for server.
	configGoHomeMaster = "master"
	// Describes config record for a booking calendar.
	configBookingFeed = "ical"
	// Describes config record for PIN derivation.
	configBookingDerivation = "derivation"
	// Describes config record for Home Assistant house.
	configHouseHass = "hass"
	// Describes config record for yaml permission matrix.
	configPermissionsStatic = "static"
	// Describes config record for logrus logger.
	configLoggerLogrus = "logrus"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	Config map[string]string `short:"c" long:"config" description:"Config files provider. Defaults to local FS."`
	Env    []string          `short:"e" long:"env" description:"Dotenv files to load before configs."`
	Port   int               `short:"p" long:"port" description:"Overrides configured port."`
}

// Defines loaded provider record.
type rawProvider struct {
	System   string
	Provider string
	Config   []byte
}

// System settings.
type settingsProvider struct {
	logger    common.ILoggerProvider
	cron      providers.ICronProvider
	validator providers.IValidatorProvider

	mSettings  *providers.MasterSettings
	location   *time.Location
	derivation *providers.DerivationSettings

	rawFeeds       []*providers.FeedSettings
	rawHouses      []*providers.HouseSettings
	rawPermissions *providers.PermissionSettings
	rawRateLimit   *rawProvider

	feeds       map[string]*providers.FeedSettings
	houses      map[string]*providers.House
	calendar    providers.ICalendarProvider
	permissions providers.IPermissionProvider
	rateLimiter providers.IRateLimitProvider
}

// Load system configuration.
func Load(options *StartUpOptions) (providers.ISettingsProvider, error) {
	settings := &settingsProvider{
		logger:    logger.NewConsoleLogger(),
		rawFeeds:  make([]*providers.FeedSettings, 0),
		rawHouses: make([]*providers.HouseSettings, 0),
		feeds:     make(map[string]*providers.FeedSettings),
		houses:    make(map[string]*providers.House),
	}

	settings.validator = utils.NewValidator(settings.logger)
	settings.loadEnv(options.Env)

	templateProvider := newTemplateProvider(settings.logger)
	configProvider := config.NewConfigProvider(&config.ConstructConfig{
		Logger:  settings.logger,
		Options: options.Config,
	})

	dataChan := configProvider.Load()
	if nil == dataChan {
		return nil, errors.New("config provider returned nothing")
	}

	allProviders := make([]*rawProvider, 0)
	for fileData := range dataChan {
		allProviders = append(allProviders, settings.loadFile(fileData, templateProvider)...)
	}

	allProviders, err := settings.loadGoHomeDefinition(allProviders, options.Port)
	if err != nil {
		return nil, err
	}

	allProviders = settings.loadLoggerProvider(allProviders)

	for _, v := range allProviders {
		settings.parseProvider(v)
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Loads dotenv files. Missing default file is not an error.
func (s *settingsProvider) loadEnv(files []string) {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil {
			s.logger.Debug("Default .env file is not loaded", common.LogSystemToken, logSystem)
		}

		return
	}

	for _, v := range files {
		if err := godotenv.Load(v); err != nil {
			s.logger.Error("Failed to load env file", err, common.LogFileToken, v,
				common.LogSystemToken, logSystem)
		}
	}
}

// Processes single yaml file.
func (s *settingsProvider) loadFile(fileData []byte, templateProvider ITemplateProvider) []*rawProvider {
	provs := make([]*rawProvider, 0)

	fileData, err := templateProvider.Process(fileData)
	if err != nil {
		s.logger.Error("Failed to process config template", err, common.LogSystemToken, logSystem)
		return provs
	}

	decoder := yaml.NewDecoder(bytes.NewReader(fileData))
	for {
		var value map[string]interface{}
		err := decoder.Decode(&value)
		if err == io.EOF {
			break
		}

		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, logSystem)
			break
		}

		componentType := ""
		componentProvider := ""

		if cs, ok := value["system"].(string); ok {
			componentType = strings.ToLower(cs)
		}

		if ct, ok := value["provider"].(string); ok {
			componentProvider = strings.ToLower(ct)
		}

		if componentType == "" || componentProvider == "" {
			s.logger.Warn("Failed to parse a record in the config file: system or provider is not defined",
				common.LogSystemToken, logSystem)
			continue
		}

		byteData, err := yaml.Marshal(value)
		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, componentType,
				common.LogProviderToken, componentProvider)
			continue
		}

		provs = append(provs, &rawProvider{
			Provider: componentProvider,
			System:   componentType,
			Config:   byteData,
		})
	}

	return provs
}

// Loads server configuration.
func (s *settingsProvider) loadGoHomeDefinition(provs []*rawProvider, port int) ([]*rawProvider, error) {
	providersLeft := make([]*rawProvider, 0)

	for _, v := range provs {
		if v.System != systems.SysGoHome.String() {
			providersLeft = append(providersLeft, v)
			continue
		}

		if v.Provider != configGoHomeMaster {
			s.logger.Warn("Unknown server record", common.LogProviderToken, v.Provider,
				common.LogSystemToken, v.System)
			continue
		}

		if s.mSettings != nil {
			s.logger.Warn("Duplicated master settings", common.LogSystemToken, v.System)
			continue
		}

		set := providers.NewMasterSettings()
		if err := yaml.Unmarshal(v.Config, set); err != nil {
			return nil, errors.Wrap(err, "unmarshal master settings")
		}

		if !s.validator.Validate(set) {
			return nil, errors.New("incorrect master settings")
		}

		s.mSettings = set
	}

	if nil == s.mSettings {
		s.logger.Warn("Master settings are not defined, using the default ones",
			common.LogSystemToken, logSystem)
		s.mSettings = providers.NewMasterSettings()
		if !s.validator.Validate(s.mSettings) {
			return nil, errors.New("incorrect default master settings")
		}
	}

	if port > 0 {
		s.mSettings.Port = port
	}

	loc, err := utils.LoadLocation(s.mSettings.Timezone)
	if err != nil {
		return nil, err
	}

	s.location = loc
	return providersLeft, nil
}

// Loads logger configuration.
func (s *settingsProvider) loadLoggerProvider(provs []*rawProvider) []*rawProvider {
	providersLeft := make([]*rawProvider, 0, len(provs))
	for _, v := range provs {
		if v.System != systems.SysLogger.String() {
			providersLeft = append(providersLeft, v)
			continue
		}

		if v.Provider != configLoggerLogrus {
			s.logger.Warn("Unknown logger provider", common.LogProviderToken, v.Provider)
			continue
		}

		log, err := logger.NewLoggerProvider(&logger.ConstructLogger{
			RawConfig: v.Config,
			NodeID:    "master",
		})
		if err != nil {
			s.logger.Error("Failed to load logger", err, common.LogProviderToken, v.Provider)
			continue
		}

		s.logger = log
		s.validator.SetLogger(s.ComponentLogger(systems.SysConfig, "validator"))
	}

	return providersLeft
}

// Processes single provider config.
func (s *settingsProvider) parseProvider(provider *rawProvider) {
	s.logger.Debug("Processing config", common.LogProviderToken, provider.Provider,
		common.LogSystemToken, provider.System)

	sys, err := systems.SystemTypeString(provider.System)
	if err != nil {
		s.logger.Warn("Unknown provider's system", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
		return
	}

	switch sys {
	case systems.SysBooking:
		err = s.processBooking(provider)
	case systems.SysHouse:
		err = s.processHouse(provider)
	case systems.SysPermissions:
		err = s.processPermissions(provider)
	case systems.SysRateLimit:
		if nil != s.rawRateLimit {
			s.logger.Warn("Duplicated rate limiter", common.LogProviderToken, provider.Provider,
				common.LogSystemToken, provider.System)
			return
		}

		s.rawRateLimit = provider
	default:
		s.logger.Warn("Unsupported config record", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
	}

	if err != nil {
		s.logger.Error("Failed to load config record", err, common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
	}
}

// Processes booking calendars and PIN derivation settings.
func (s *settingsProvider) processBooking(provider *rawProvider) error {
	switch provider.Provider {
	case configBookingFeed:
		feed := &providers.FeedSettings{}
		if err := yaml.Unmarshal(provider.Config, feed); err != nil {
			return err
		}

		if !s.validator.Validate(feed) {
			return &ErrInvalidRecord{Name: feed.Key}
		}

		s.rawFeeds = append(s.rawFeeds, feed)
	case configBookingDerivation:
		if nil != s.derivation {
			s.logger.Warn("Duplicated derivation settings", common.LogSystemToken, provider.System)
			return nil
		}

		set := &providers.DerivationSettings{}
		if err := yaml.Unmarshal(provider.Config, set); err != nil {
			return err
		}

		if !s.validator.Validate(set) {
			return &ErrInvalidRecord{Name: configBookingDerivation}
		}

		s.derivation = set
	default:
		return &ErrUnknownProvider{Provider: provider.Provider}
	}

	return nil
}

// Processes house control plane.
func (s *settingsProvider) processHouse(provider *rawProvider) error {
	if provider.Provider != configHouseHass {
		return &ErrUnknownProvider{Provider: provider.Provider}
	}

	set := &providers.HouseSettings{}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return err
	}

	if !s.validator.Validate(set) {
		return &ErrInvalidRecord{Name: set.Name}
	}

	s.rawHouses = append(s.rawHouses, set)
	return nil
}

// Processes permission matrix.
func (s *settingsProvider) processPermissions(provider *rawProvider) error {
	if provider.Provider != configPermissionsStatic {
		return &ErrUnknownProvider{Provider: provider.Provider}
	}

	if nil != s.rawPermissions {
		s.logger.Warn("Duplicated permissions", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
		return nil
	}

	set := &providers.PermissionSettings{}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return err
	}

	if !s.validator.Validate(set) {
		return &ErrInvalidRecord{Name: configPermissionsStatic}
	}

	s.rawPermissions = set
	return nil
}

// Builds systems out of loaded records.
func (s *settingsProvider) validate() error {
	s.cron = utils.NewCron()
	_, err := s.cron.AddFunc("@every 10s", func() {
		s.logger.Flush()
	})

	if err != nil {
		return errors.Wrap(err, "register logger flushing")
	}

	s.buildDerivation()
	s.buildHouses()
	s.buildFeeds()

	s.calendar = calendar.NewCalendarProvider(&calendar.ConstructCalendar{
		Logger:   s.ComponentLogger(systems.SysBooking, configBookingFeed),
		Location: s.location,
		Timeout:  time.Duration(s.mSettings.FetchTimeout) * time.Second,
	})

	if nil == s.rawPermissions {
		s.logger.Warn("Permissions are not defined, device control is disabled",
			common.LogSystemToken, logSystem)
	}

	matrix := permissions.NewMatrix(&permissions.ConstructMatrix{
		Logger:   s.ComponentLogger(systems.SysPermissions, configPermissionsStatic),
		Settings: s.rawPermissions,
	})

	s.logger.Info("Loaded guest permissions", "bookings", strconv.Itoa(matrix.Bookings()),
		common.LogSystemToken, logSystem)
	s.permissions = matrix

	return s.buildRateLimiter()
}

// Applies PIN derivation defaults.
func (s *settingsProvider) buildDerivation() {
	if nil == s.derivation {
		s.derivation = &providers.DerivationSettings{}
		s.validator.Validate(s.derivation)
	}

	if s.derivation.PinLength != booking.DefaultPinLength {
		s.logger.Warn("PIN length differs from default, guests' PINs change accordingly",
			"pin_length", strconv.Itoa(s.derivation.PinLength), common.LogSystemToken, logSystem)
	}
}

// Builds houses with their control planes.
func (s *settingsProvider) buildHouses() {
	for _, v := range s.rawHouses {
		if _, ok := s.houses[v.Name]; ok {
			s.logger.Warn("Ignoring house since name is duplicated", common.LogHouseToken, v.Name)
			continue
		}

		readable := v.Readable
		if len(readable) == 0 {
			readable = []string{"*"}
		}

		globs := make([]glob.Glob, 0, len(readable))
		for _, r := range readable {
			g, err := glob.Compile(r)
			if err != nil {
				s.logger.Error("Failed to compile readable entity mask", err, common.LogHouseToken, v.Name,
					common.LogEntityToken, r)
				continue
			}

			globs = append(globs, g)
		}

		s.houses[v.Name] = &providers.House{
			Name:     v.Name,
			Readable: globs,
			Devices: devices.NewHassProvider(&devices.ConstructHass{
				Logger:  s.ComponentLogger(systems.SysHouse, configHouseHass),
				Name:    v.Name,
				URL:     v.URL,
				Token:   v.Token,
				Timeout: time.Duration(s.mSettings.FetchTimeout) * time.Second,
			}),
		}
	}
}

// Builds booking key table. Feeds of unknown houses are skipped.
func (s *settingsProvider) buildFeeds() {
	for _, v := range s.rawFeeds {
		if _, ok := s.feeds[v.Key]; ok {
			s.logger.Warn("Ignoring booking since key is duplicated", common.LogBookingToken, v.Key)
			continue
		}

		if _, ok := s.houses[v.House]; !ok {
			s.logger.Error("Ignoring booking of unknown house", &ErrInvalidRecord{Name: v.Key},
				common.LogBookingToken, v.Key, common.LogHouseToken, v.House)
			continue
		}

		s.feeds[v.Key] = v
	}

	if 0 == len(s.feeds) {
		s.logger.Warn("No booking calendars are configured", common.LogSystemToken, logSystem)
	}
}

// Builds rate limiter, memory one is used by default.
func (s *settingsProvider) buildRateLimiter() error {
	ctor := &ratelimit.ConstructRateLimiter{
		Provider: ratelimit.ProviderMemory,
		Settings: &providers.RateLimitSettings{},
	}

	if nil != s.rawRateLimit {
		ctor.Provider = s.rawRateLimit.Provider
		if err := yaml.Unmarshal(s.rawRateLimit.Config, ctor.Settings); err != nil {
			return errors.Wrap(err, "unmarshal rate limit settings")
		}
	}

	if !s.validator.Validate(ctor.Settings) {
		return &ErrInvalidRecord{Name: systems.SysRateLimit.String()}
	}

	ctor.Logger = s.ComponentLogger(systems.SysRateLimit, ctor.Provider)

	limiter, err := ratelimit.NewRateLimitProvider(ctor)
	if err != nil {
		return err
	}

	s.rateLimiter = limiter
	return nil
}
