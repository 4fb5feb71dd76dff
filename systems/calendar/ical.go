// Package calendar implements iCal booking feed provider.
package calendar

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"github.com/go-home-io/guestkey/utils"
	"github.com/pkg/errors"
)

// DefaultFetchTimeout is used when timeout is not configured.
const DefaultFetchTimeout = 15 * time.Second

// ConstructCalendar has data required for a new calendar provider.
type ConstructCalendar struct {
	Logger   common.ILoggerProvider
	Location *time.Location
	Timeout  time.Duration
	Client   *http.Client
}

// Provider fetches and parses booking calendars.
type provider struct {
	logger common.ILoggerProvider
	loc    *time.Location
	client *http.Client
}

// NewCalendarProvider constructs a new iCal provider.
func NewCalendarProvider(ctor *ConstructCalendar) providers.ICalendarProvider {
	client := ctor.Client
	if nil == client {
		timeout := ctor.Timeout
		if timeout <= 0 {
			timeout = DefaultFetchTimeout
		}

		client = &http.Client{Timeout: timeout}
	}

	loc := ctor.Location
	if nil == loc {
		loc = time.UTC
	}

	return &provider{
		logger: ctor.Logger,
		loc:    loc,
		client: client,
	}
}

// Reservations fetches the feed and returns events in feed order.
func (p *provider) Reservations(ctx context.Context, feedURL string) ([]*providers.Reservation, error) {
	req, err := http.NewRequest(http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	resp, err := p.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "fetch calendar")
	}

	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body) // nolint: errcheck
		return nil, &ErrBadStatus{Status: resp.StatusCode}
	}

	return p.Parse(resp.Body)
}

// Parse reads calendar data.
func (p *provider) Parse(r io.Reader) ([]*providers.Reservation, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse calendar")
	}

	events := cal.Events()
	result := make([]*providers.Reservation, 0, len(events))
	for _, v := range events {
		res, err := p.reservation(v)
		if err != nil {
			p.logger.Warn("Skipping calendar event", common.LogNameToken, v.Id(),
				common.LogErrorToken, err.Error())
			continue
		}

		result = append(result, res)
	}

	return result, nil
}

func (p *provider) reservation(event *ics.VEvent) (*providers.Reservation, error) {
	start, err := p.date(event, ics.ComponentPropertyDtStart)
	if err != nil {
		return nil, err
	}

	end := start
	if nil == event.GetProperty(ics.ComponentPropertyDtEnd) {
		if isDate(event.GetProperty(ics.ComponentPropertyDtStart)) {
			end = start.AddDate(0, 0, 1)
		}
	} else if end, err = p.date(event, ics.ComponentPropertyDtEnd); err != nil {
		return nil, err
	}

	if start.After(end) {
		return nil, &ErrInvalidEvent{UID: event.Id(), Reason: "starts after it ends"}
	}

	return &providers.Reservation{
		UID:         event.Id(),
		Summary:     text(event, ics.ComponentPropertySummary),
		Description: text(event, ics.ComponentPropertyDescription),
		Start:       start,
		End:         end,
	}, nil
}

func (p *provider) date(event *ics.VEvent, name ics.ComponentProperty) (time.Time, error) {
	prop := event.GetProperty(name)
	if nil == prop || "" == strings.TrimSpace(prop.Value) {
		return time.Time{}, &ErrInvalidEvent{UID: event.Id(), Reason: string(name) + " is missing"}
	}

	tzid := ""
	if v, ok := prop.ICalParameters[string(ics.ParameterTzid)]; ok && len(v) > 0 {
		tzid = v[0]
	}

	value := prop.Value
	if isDate(prop) {
		value = strings.TrimSpace(value)
		if len(value) > 8 {
			value = value[:8]
		}
	}

	t, err := utils.ParseFloating(value, tzid, p.loc)
	if err != nil {
		return time.Time{}, &ErrInvalidEvent{UID: event.Id(), Reason: string(name) + " is malformed"}
	}

	return t, nil
}

// Checks whether property holds a date without time.
func isDate(prop *ics.IANAProperty) bool {
	if v, ok := prop.ICalParameters[string(ics.ParameterValue)]; ok && len(v) > 0 {
		return strings.EqualFold(v[0], "DATE")
	}

	return len(strings.TrimSpace(prop.Value)) == 8
}

// Text values are unescaped by the parser.
func text(event *ics.VEvent, name ics.ComponentProperty) string {
	prop := event.GetProperty(name)
	if nil == prop {
		return ""
	}

	return prop.Value
}
