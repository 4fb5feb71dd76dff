package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-home-io/guestkey/mocks"
	"github.com/go-home-io/guestkey/providers"
	"github.com/go-home-io/guestkey/systems/booking"
	"github.com/go-home-io/guestkey/systems/permissions"
	"github.com/gobwas/glob"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	feed31 = "https://calendar.test/31.ics"
	feed32 = "https://calendar.test/32.ics"
)

type guardFixture struct {
	guard    *Guard
	calendar interface{ Calls() int }
	devices  interface {
		Calls() []*mocks.FakeDeviceCall
		Reads() []string
	}
	logger interface {
		Find(string) *mocks.FakeLogEntry
	}
}

func getGuard(t *testing.T, now time.Time, feeds map[string][]*providers.Reservation,
	calendarErr error, devicesErr error) *guardFixture {
	loc := london(t)
	logger := mocks.FakeNewLogger(nil)
	calendar := mocks.FakeNewCalendar(feeds, calendarErr)
	devices := mocks.FakeNewDevices(`{"state":"on"}`, `[{"temperature":12}]`, devicesErr)

	matcher := booking.NewMatcher(&booking.ConstructMatcher{
		Logger:   logger,
		Calendar: calendar,
		Feeds: map[string]*providers.FeedSettings{
			"31": {Key: "31", URL: feed31, House: "193"},
			"32": {Key: "32", URL: feed32, House: "193"},
		},
	})

	matrix := permissions.NewMatrix(&permissions.ConstructMatrix{
		Logger: logger,
		Settings: &providers.PermissionSettings{
			Bookings: map[string]map[string][]string{
				"31": {"climate": {"climate.3_1_trv"}, "lights": {"light.3_1_lights"}},
				"32": {"climate": {"climate.3_2_trv"}},
			},
		},
	})

	guard := NewGuard(&ConstructGuard{
		Logger:     logger,
		Matcher:    matcher,
		Calculator: NewCalculator(loc, DefaultHours()),
		Authorizer: permissions.NewAuthorizer(logger, matrix),
		Houses: map[string]*providers.House{
			"193": {
				Name:     "193",
				Readable: []glob.Glob{glob.MustCompile("weather.*"), glob.MustCompile("climate.*")},
				Devices:  devices,
			},
		},
		Now: func() time.Time { return now },
	})

	return &guardFixture{
		guard:    guard,
		calendar: calendar,
		devices:  devices,
		logger:   logger,
	}
}

func getFeeds(loc *time.Location) map[string][]*providers.Reservation {
	return map[string][]*providers.Reservation{
		feed31: {getReservation(loc)},
		feed32: {
			{
				UID:         "r-2",
				Summary:     "Vrbo (X1) - Jane Doe",
				Description: "Phone: (555) 000-9876",
				Start:       time.Date(2024, 3, 10, 0, 0, 0, 0, loc),
				End:         time.Date(2024, 3, 15, 0, 0, 0, 0, loc),
			},
		},
	}
}

func temperature(v float64) *permissions.Temperature {
	t := permissions.Temperature(v)
	return &t
}

// Tests full access between check-in and check-out.
func TestScenarioFullAccess(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 12, 15, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	d, err := f.guard.ValidateBooking(context.Background(), "31-3456")
	require.NoError(t, err)

	expected := &Decision{
		Access:       LevelFull,
		GuestName:    "John Smith",
		CheckInDate:  "Sunday, 10 March 2024",
		CheckOutDate: "Friday, 15 March 2024",
		BookingID:    "31",
		House:        "193",
	}

	if diff := cmp.Diff(expected, d, cmpopts.IgnoreFields(Decision{}, "Reservation")); diff != "" {
		t.Errorf("Unexpected decision (-want +got):\n%s", diff)
	}
}

// Tests partial access after check-out hour.
func TestScenarioPartialAccess(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 15, 13, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	d, err := f.guard.ValidateBooking(context.Background(), "31-3456")
	require.NoError(t, err)
	assert.Equal(t, LevelPartial, d.Access)
}

// Tests expired booking.
func TestScenarioExpired(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 15, 23, 30, 0, 0, loc), getFeeds(loc), nil, nil)

	_, err := f.guard.ValidateBooking(context.Background(), "31-3456")
	_, ok := err.(*ErrExpiredBooking)
	assert.True(t, ok)
}

// Tests that booking can't control entity of another booking.
func TestScenarioCrossBookingForbidden(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 12, 15, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	_, err := f.guard.IssueCommand(context.Background(), "32-9876", &permissions.Command{
		Type:        permissions.CmdSetTemperature,
		Entity:      "climate.3_1_trv",
		Temperature: temperature(20),
	})

	_, ok := err.(*ErrForbidden)
	assert.True(t, ok)
	assert.Empty(t, f.devices.Calls())
	assert.NotNil(t, f.logger.Find("[SECURITY] Forbidden attempt to control entity"))
}

// Tests that payload is rejected before any network call.
func TestScenarioInvalidTemperature(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 12, 15, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	_, err := f.guard.IssueCommand(context.Background(), "31-3456", &permissions.Command{
		Type:        permissions.CmdSetTemperature,
		Entity:      "climate.3_1_trv",
		Temperature: temperature(30),
	})

	_, ok := err.(*permissions.ErrInvalidPayload)
	assert.True(t, ok)
	assert.Equal(t, 0, f.calendar.Calls())
	assert.Empty(t, f.devices.Calls())
}

// Tests successful command.
func TestIssueCommand(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 12, 15, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	res, err := f.guard.IssueCommand(context.Background(), "31-3456", &permissions.Command{
		Type:        permissions.CmdSetTemperature,
		Entity:      "climate.3_1_trv",
		Temperature: temperature(21.5),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.JSONEq(t, `{"state":"on"}`, string(res.State))

	calls := f.devices.Calls()
	require.Equal(t, 1, len(calls))
	assert.Equal(t, "climate/set_temperature", calls[0].Service)
	assert.Equal(t, map[string]interface{}{"entity_id": "climate.3_1_trv", "temperature": 21.5},
		calls[0].Body)
}

// Tests that partial access can't control devices.
func TestIssueCommandPartial(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 15, 12, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	_, err := f.guard.IssueCommand(context.Background(), "31-3456", &permissions.Command{
		Type: permissions.CmdToggleLight, Entity: "light.3_1_lights",
	})
	_, ok := err.(*ErrInactiveBooking)
	assert.True(t, ok)
	assert.Empty(t, f.devices.Calls())
}

// Tests that expired bookings can't control devices.
func TestIssueCommandExpired(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 16, 12, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	_, err := f.guard.IssueCommand(context.Background(), "31-3456", &permissions.Command{
		Type: permissions.CmdToggleLight, Entity: "light.3_1_lights",
	})
	_, ok := err.(*ErrExpiredBooking)
	assert.True(t, ok)
}

// Tests credential errors on commands.
func TestIssueCommandCredentials(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 12, 15, 0, 0, 0, loc), getFeeds(loc), nil, nil)
	cmd := &permissions.Command{Type: permissions.CmdToggleLight, Entity: "light.3_1_lights"}

	_, err := f.guard.IssueCommand(context.Background(), "313456", cmd)
	_, ok := err.(*ErrMalformedCredential)
	assert.True(t, ok)

	_, err = f.guard.IssueCommand(context.Background(), "99-3456", cmd)
	_, ok = err.(*booking.ErrUnknownBookingKey)
	assert.True(t, ok)

	_, err = f.guard.IssueCommand(context.Background(), "31-0000", cmd)
	_, ok = err.(*booking.ErrInvalidCredential)
	assert.True(t, ok)

	_, err = f.guard.IssueCommand(context.Background(), "31-3456",
		&permissions.Command{Type: "unlock", Entity: "lock.door"})
	_, ok = err.(*permissions.ErrUnsupportedCommand)
	assert.True(t, ok)

	assert.Empty(t, f.devices.Calls())
}

// Tests device failure.
func TestIssueCommandDeviceFailure(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 12, 15, 0, 0, 0, loc), getFeeds(loc), nil, errors.New("boom"))

	_, err := f.guard.IssueCommand(context.Background(), "31-3456",
		&permissions.Command{Type: permissions.CmdToggleLight, Entity: "light.3_1_lights"})
	var target *ErrDeviceUnavailable
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "193", target.House)
}

// Tests calendar failure.
func TestValidateUpstreamFailure(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 12, 15, 0, 0, 0, loc), getFeeds(loc), errors.New("timeout"), nil)

	_, err := f.guard.ValidateBooking(context.Background(), "31-3456")
	_, ok := err.(*booking.ErrUpstreamUnavailable)
	assert.True(t, ok)
}

// Tests that overlapping reservations prefer the one active now.
func TestTieBreakPrefersActiveReservation(t *testing.T) {
	loc := london(t)
	feeds := getFeeds(loc)
	old := getReservation(loc)
	old.UID = "r-0"
	old.Summary = "Airbnb (HM000) - Old Guest"
	old.Start = time.Date(2024, 2, 1, 0, 0, 0, 0, loc)
	old.End = time.Date(2024, 2, 5, 0, 0, 0, 0, loc)
	feeds[feed31] = []*providers.Reservation{old, getReservation(loc)}

	f := getGuard(t, time.Date(2024, 3, 12, 15, 0, 0, 0, loc), feeds, nil, nil)
	d, err := f.guard.ValidateBooking(context.Background(), "31-3456")
	require.NoError(t, err)
	assert.Equal(t, LevelFull, d.Access)
	assert.Equal(t, "r-1", d.Reservation.UID)
	assert.NotNil(t, f.logger.Find("Several reservations share the same PIN"))
}

// Tests default guest name.
func TestDefaultGuestName(t *testing.T) {
	loc := london(t)
	feeds := getFeeds(loc)
	feeds[feed31][0].Summary = "Airbnb (HM123) - "

	f := getGuard(t, time.Date(2024, 3, 12, 15, 0, 0, 0, loc), feeds, nil, nil)
	d, err := f.guard.ValidateBooking(context.Background(), "31-3456")
	require.NoError(t, err)
	assert.Equal(t, DefaultGuestName, d.GuestName)
}

// Tests informational reads.
func TestReadEntityState(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 15, 13, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	data, err := f.guard.ReadEntityState(context.Background(), "31-3456", "", "weather.home", ReadState)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"on"}`, string(data))

	data, err = f.guard.ReadEntityState(context.Background(), "31-3456", "193", "weather.home",
		ReadDailyForecast)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"temperature":12}]`, string(data))

	assert.Equal(t, []string{"weather.home", "weather.home/daily"}, f.devices.Reads())
}

// Tests rejected reads.
func TestReadEntityStateFail(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 12, 15, 0, 0, 0, loc), getFeeds(loc), nil, nil)
	ctx := context.Background()

	_, err := f.guard.ReadEntityState(ctx, "31-3456", "", "weather.home", "minutely")
	_, ok := err.(*ErrUnsupportedReadKind)
	assert.True(t, ok)

	_, err = f.guard.ReadEntityState(ctx, "31-3456", "", "../secrets", ReadState)
	_, ok = err.(*ErrInvalidEntity)
	assert.True(t, ok)

	_, err = f.guard.ReadEntityState(ctx, "31-3456", "", "lock.front_door", ReadState)
	_, ok = err.(*ErrEntityNotReadable)
	assert.True(t, ok)

	_, err = f.guard.ReadEntityState(ctx, "31-3456", "999", "weather.home", ReadState)
	_, ok = err.(*ErrUnknownHouse)
	assert.True(t, ok)

	_, err = f.guard.ReadEntityState(ctx, "31-1111", "", "weather.home", ReadState)
	_, ok = err.(*booking.ErrInvalidCredential)
	assert.True(t, ok)

	assert.Empty(t, f.devices.Reads())
}

// Tests that expired bookings can't read.
func TestReadEntityStateExpired(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 16, 0, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	_, err := f.guard.ReadEntityState(context.Background(), "31-3456", "", "weather.home", ReadState)
	_, ok := err.(*ErrExpiredBooking)
	assert.True(t, ok)
	assert.Empty(t, f.devices.Reads())
}

// Tests controls listing.
func TestListControls(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 9, 15, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	c, err := f.guard.ListControls(context.Background(), "32-9876")
	require.NoError(t, err)
	assert.Equal(t, LevelPartial, c.Access)
	assert.Equal(t, map[permissions.Category][]string{
		permissions.CategoryClimate: {"climate.3_2_trv"},
		permissions.CategoryLights:  {},
	}, c.Entities)

	_, err = f.guard.ListControls(context.Background(), "32")
	_, ok := err.(*ErrMalformedCredential)
	assert.True(t, ok)

	_, err = f.guard.ListControls(context.Background(), "32-1111")
	_, ok = err.(*booking.ErrInvalidCredential)
	assert.True(t, ok)
	assert.Empty(t, f.devices.Reads())
	assert.Empty(t, f.devices.Calls())
}

// Tests that expired bookings can't list controls.
func TestListControlsExpired(t *testing.T) {
	loc := london(t)
	f := getGuard(t, time.Date(2024, 3, 15, 23, 0, 0, 0, loc), getFeeds(loc), nil, nil)

	_, err := f.guard.ListControls(context.Background(), "31-3456")
	_, ok := err.(*ErrExpiredBooking)
	assert.True(t, ok)
}
