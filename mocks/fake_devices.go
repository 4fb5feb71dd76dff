//+build !release

package mocks

import (
	"context"
	"encoding/json"
	"sync"
)

// FakeDeviceCall is a recorded service invocation.
type FakeDeviceCall struct {
	Service string
	Body    interface{}
}

type fakeDevices struct {
	sync.Mutex
	state    json.RawMessage
	forecast json.RawMessage
	err      error
	calls    []*FakeDeviceCall
	reads    []string
}

func (f *fakeDevices) State(_ context.Context, entity string) (json.RawMessage, error) {
	f.Lock()
	defer f.Unlock()
	f.reads = append(f.reads, entity)
	return f.state, f.err
}

func (f *fakeDevices) Forecast(_ context.Context, entity string, kind string) (json.RawMessage, error) {
	f.Lock()
	defer f.Unlock()
	f.reads = append(f.reads, entity+"/"+kind)
	return f.forecast, f.err
}

func (f *fakeDevices) Call(_ context.Context, service string, body interface{}) (json.RawMessage, error) {
	f.Lock()
	defer f.Unlock()
	f.calls = append(f.calls, &FakeDeviceCall{Service: service, Body: body})
	return f.state, f.err
}

func (f *fakeDevices) Ping(context.Context) error {
	return f.err
}

// Calls returns recorded service invocations.
func (f *fakeDevices) Calls() []*FakeDeviceCall {
	f.Lock()
	defer f.Unlock()
	return append([]*FakeDeviceCall{}, f.calls...)
}

// Reads returns recorded state reads.
func (f *fakeDevices) Reads() []string {
	f.Lock()
	defer f.Unlock()
	return append([]string{}, f.reads...)
}

// FakeNewDevices creates a fake smart-home control plane.
func FakeNewDevices(state string, forecast string, err error) *fakeDevices {
	return &fakeDevices{
		state:    json.RawMessage(state),
		forecast: json.RawMessage(forecast),
		err:      err,
		calls:    make([]*FakeDeviceCall, 0),
	}
}
