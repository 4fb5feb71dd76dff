package booking

import (
	"context"
	"strconv"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
)

// Matcher finds reservations matching guest credentials.
type Matcher struct {
	logger   common.ILoggerProvider
	calendar providers.ICalendarProvider
	feeds    map[string]*providers.FeedSettings
	deriver  *Deriver
}

// ConstructMatcher has data required for a new matcher.
type ConstructMatcher struct {
	Logger   common.ILoggerProvider
	Calendar providers.ICalendarProvider
	Feeds    map[string]*providers.FeedSettings
	Deriver  *Deriver
}

// NewMatcher constructs a new booking matcher.
func NewMatcher(ctor *ConstructMatcher) *Matcher {
	feeds := ctor.Feeds
	if feeds == nil {
		feeds = make(map[string]*providers.FeedSettings)
	}

	deriver := ctor.Deriver
	if deriver == nil {
		deriver = NewDeriver(nil)
	}

	return &Matcher{
		logger:   ctor.Logger,
		calendar: ctor.Calendar,
		feeds:    feeds,
		deriver:  deriver,
	}
}

// Deriver returns PIN deriver used by the matcher.
func (m *Matcher) Deriver() *Deriver {
	return m.deriver
}

// Feed resolves booking key into calendar settings.
func (m *Matcher) Feed(key string) (*providers.FeedSettings, error) {
	feed, ok := m.feeds[key]
	if !ok {
		return nil, &ErrUnknownBookingKey{Key: key}
	}

	return feed, nil
}

// Match returns first reservation in feed order matching the PIN.
func (m *Matcher) Match(ctx context.Context, key string, pin string) (*providers.Reservation, error) {
	all, err := m.match(ctx, key, pin, true)
	if err != nil {
		return nil, err
	}

	return all[0], nil
}

// MatchAll returns every reservation matching the PIN, preserving feed order.
func (m *Matcher) MatchAll(ctx context.Context, key string, pin string) ([]*providers.Reservation, error) {
	return m.match(ctx, key, pin, false)
}

// Fetches the feed and runs PIN derivation per reservation.
// Feed is fetched on every call.
func (m *Matcher) match(ctx context.Context, key string, pin string,
	firstOnly bool) ([]*providers.Reservation, error) {
	feed, err := m.Feed(key)
	if err != nil {
		m.logger.Warn("Unknown booking key", common.LogBookingToken, key)
		return nil, err
	}

	reservations, err := m.calendar.Reservations(ctx, feed.URL)
	if err != nil {
		m.logger.Error("Failed to fetch booking calendar", err, common.LogBookingToken, key)
		return nil, &ErrUpstreamUnavailable{Key: key, Err: err}
	}

	found := make([]*providers.Reservation, 0, 1)
	for _, v := range reservations {
		if nil == v {
			continue
		}

		if !m.deriver.Derive(v.Description, v.Summary).Matches(pin) {
			continue
		}

		found = append(found, v)
		if firstOnly {
			break
		}
	}

	if 0 == len(found) {
		m.logger.Warn("PIN doesn't match any reservation", common.LogBookingToken, key)
		return nil, &ErrInvalidCredential{Key: key}
	}

	m.logger.Debug("Found matching reservations", common.LogBookingToken, key,
		"count", strconv.Itoa(len(found)))
	return found, nil
}
