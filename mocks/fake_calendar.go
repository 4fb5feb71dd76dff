//+build !release

package mocks

import (
	"context"
	"sync"

	"github.com/go-home-io/guestkey/providers"
)

type fakeCalendar struct {
	sync.Mutex
	feeds map[string][]*providers.Reservation
	err   error
	calls int
}

func (f *fakeCalendar) Reservations(_ context.Context, url string) ([]*providers.Reservation, error) {
	f.Lock()
	defer f.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.feeds[url], nil
}

// Calls returns number of feed fetches.
func (f *fakeCalendar) Calls() int {
	f.Lock()
	defer f.Unlock()
	return f.calls
}

// FakeNewCalendar creates a fake calendar provider.
// Feeds are keyed by URL.
func FakeNewCalendar(feeds map[string][]*providers.Reservation, err error) *fakeCalendar {
	return &fakeCalendar{
		feeds: feeds,
		err:   err,
	}
}
