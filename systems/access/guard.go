package access

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"github.com/go-home-io/guestkey/systems/booking"
	"github.com/go-home-io/guestkey/systems/permissions"
	"github.com/go-home-io/guestkey/utils"
)

// DefaultGuestName is displayed when reservation summary has no name.
const DefaultGuestName = "Valued Guest"

// ReadKind describes informational read request type.
type ReadKind string

const (
	// ReadState requests raw entity state.
	ReadState ReadKind = "state"
	// ReadHourlyForecast requests hourly weather forecast.
	ReadHourlyForecast ReadKind = "hourly_forecast"
	// ReadDailyForecast requests daily weather forecast.
	ReadDailyForecast ReadKind = "daily_forecast"
)

var forecastKinds = map[ReadKind]string{
	ReadHourlyForecast: "hourly",
	ReadDailyForecast:  "daily",
}

// Decision is a result of booking validation.
// Display fields carry no authorization weight.
type Decision struct {
	Access       Level  `json:"access"`
	GuestName    string `json:"guestName"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`

	BookingID   string                 `json:"-"`
	House       string                 `json:"-"`
	Reservation *providers.Reservation `json:"-"`
}

// CommandResult is a result of forwarded device command.
type CommandResult struct {
	Success bool            `json:"success"`
	State   json.RawMessage `json:"state"`
}

// Controls lists devices a booking may control.
type Controls struct {
	Access   Level                             `json:"access"`
	Entities map[permissions.Category][]string `json:"entities"`
}

// Guard validates guest credentials and gates device access.
type Guard struct {
	logger     common.ILoggerProvider
	matcher    *booking.Matcher
	calculator *Calculator
	authorizer *permissions.Authorizer
	houses     map[string]*providers.House
	now        func() time.Time
}

// ConstructGuard has data required for a new guard.
type ConstructGuard struct {
	Logger     common.ILoggerProvider
	Matcher    *booking.Matcher
	Calculator *Calculator
	Authorizer *permissions.Authorizer
	Houses     map[string]*providers.House
	Now        func() time.Time
}

// NewGuard constructs a new guest guard.
func NewGuard(ctor *ConstructGuard) *Guard {
	now := ctor.Now
	if nil == now {
		now = time.Now
	}

	houses := ctor.Houses
	if nil == houses {
		houses = make(map[string]*providers.House)
	}

	return &Guard{
		logger:     ctor.Logger,
		matcher:    ctor.Matcher,
		calculator: ctor.Calculator,
		authorizer: ctor.Authorizer,
		houses:     houses,
		now:        now,
	}
}

// ValidateBooking checks credential and returns current access level.
// Expired bookings are returned as ErrExpiredBooking.
func (g *Guard) ValidateBooking(ctx context.Context, rawCredential string) (*Decision, error) {
	cred, err := ParseCredential(rawCredential)
	if err != nil {
		g.logger.Warn("Received malformed credential")
		return nil, err
	}

	return g.validate(ctx, cred)
}

// ListControls returns devices the booking may control.
// Listing needs partial or full access, commands still need full.
func (g *Guard) ListControls(ctx context.Context, rawCredential string) (*Controls, error) {
	cred, err := ParseCredential(rawCredential)
	if err != nil {
		g.logger.Warn("Received malformed credential")
		return nil, err
	}

	decision, err := g.validate(ctx, cred)
	if err != nil {
		return nil, err
	}

	return &Controls{
		Access:   decision.Access,
		Entities: g.authorizer.Controls(decision.BookingID),
	}, nil
}

// IssueCommand validates, authorizes and forwards device command.
// Payload is checked before any network call.
func (g *Guard) IssueCommand(ctx context.Context, rawCredential string,
	cmd *permissions.Command) (*CommandResult, error) {
	call, err := g.authorizer.Prepare(cmd)
	if err != nil {
		return nil, err
	}

	cred, err := ParseCredential(rawCredential)
	if err != nil {
		g.logger.Warn("Received malformed credential", common.LogCommandToken, string(cmd.Type))
		return nil, err
	}

	decision, err := g.validate(ctx, cred)
	if err != nil {
		return nil, err
	}

	if !decision.Access.CanControl() {
		g.logger.Warn("Device control is not active for the booking",
			common.LogBookingToken, decision.BookingID, common.LogAccessToken, decision.Access.String(),
			common.LogEntityToken, call.Entity)
		return nil, &ErrInactiveBooking{Key: decision.BookingID}
	}

	if !g.authorizer.Authorize(decision.BookingID, call) {
		return nil, &ErrForbidden{Key: decision.BookingID, Entity: call.Entity}
	}

	house, err := g.house(decision.House)
	if err != nil {
		return nil, err
	}

	state, err := house.Devices.Call(ctx, call.Service, call.Body)
	if err != nil {
		g.logger.Error("Failed to invoke device service", err, common.LogBookingToken, decision.BookingID,
			common.LogHouseToken, house.Name, common.LogEntityToken, call.Entity)
		return nil, &ErrDeviceUnavailable{House: house.Name, Err: err}
	}

	g.logger.Info("Forwarded device command", common.LogBookingToken, decision.BookingID,
		common.LogHouseToken, house.Name, common.LogCommandToken, string(cmd.Type),
		common.LogEntityToken, call.Entity)

	if len(state) == 0 {
		state = json.RawMessage("null")
	}

	return &CommandResult{Success: true, State: state}, nil
}

// ReadEntityState returns entity state or forecast.
// Empty house name means booking's own house.
func (g *Guard) ReadEntityState(ctx context.Context, rawCredential string, houseName string,
	entity string, kind ReadKind) (json.RawMessage, error) {
	if "" == kind {
		kind = ReadState
	}

	if _, ok := forecastKinds[kind]; !ok && kind != ReadState {
		return nil, &ErrUnsupportedReadKind{Kind: string(kind)}
	}

	if !utils.IsEntityID(entity) {
		return nil, &ErrInvalidEntity{Entity: entity}
	}

	cred, err := ParseCredential(rawCredential)
	if err != nil {
		g.logger.Warn("Received malformed credential", common.LogEntityToken, entity)
		return nil, err
	}

	decision, err := g.validate(ctx, cred)
	if err != nil {
		return nil, err
	}

	if "" == houseName {
		houseName = decision.House
	}

	house, err := g.house(houseName)
	if err != nil {
		return nil, err
	}

	if !house.CanRead(entity) {
		g.logger.Warn("[SECURITY] Attempt to read hidden entity", common.LogBookingToken, decision.BookingID,
			common.LogHouseToken, house.Name, common.LogEntityToken, entity)
		return nil, &ErrEntityNotReadable{Entity: entity}
	}

	var data json.RawMessage
	if kind == ReadState {
		data, err = house.Devices.State(ctx, entity)
	} else {
		data, err = house.Devices.Forecast(ctx, entity, forecastKinds[kind])
	}

	if err != nil {
		g.logger.Error("Failed to read entity", err, common.LogHouseToken, house.Name,
			common.LogEntityToken, entity)
		return nil, &ErrDeviceUnavailable{House: house.Name, Err: err}
	}

	return data, nil
}

// Runs matching and picks reservation with the highest level at now.
func (g *Guard) validate(ctx context.Context, cred *Credential) (*Decision, error) {
	matches, err := g.matcher.MatchAll(ctx, cred.BookingKey, cred.Pin)
	if err != nil {
		return nil, err
	}

	now := g.now()
	best := LevelNone
	var chosen *providers.Reservation
	for _, v := range matches {
		level := g.calculator.Level(v, now)
		if level > best {
			best = level
			chosen = v
		}
	}

	if len(matches) > 1 {
		g.logger.Warn("Several reservations share the same PIN", common.LogBookingToken, cred.BookingKey,
			common.LogAccessToken, best.String())
	}

	if best == LevelDenied {
		g.logger.Info("Booking has expired", common.LogBookingToken, cred.BookingKey)
		return nil, &ErrExpiredBooking{Key: cred.BookingKey}
	}

	feed, err := g.matcher.Feed(cred.BookingKey)
	if err != nil {
		return nil, err
	}

	loc := g.calculator.Location()
	name := g.matcher.Deriver().GuestName(chosen.Summary)
	if "" == name {
		name = DefaultGuestName
	}

	g.logger.Debug("Booking validated", common.LogBookingToken, cred.BookingKey,
		common.LogAccessToken, best.String())

	return &Decision{
		Access:       best,
		GuestName:    name,
		CheckInDate:  utils.FormatDisplayDate(chosen.Start, loc),
		CheckOutDate: utils.FormatDisplayDate(chosen.End, loc),
		BookingID:    cred.BookingKey,
		House:        feed.House,
		Reservation:  chosen,
	}, nil
}

func (g *Guard) house(name string) (*providers.House, error) {
	house, ok := g.houses[name]
	if !ok {
		g.logger.Warn("Unknown house", common.LogHouseToken, name)
		return nil, &ErrUnknownHouse{Name: name}
	}

	return house, nil
}
