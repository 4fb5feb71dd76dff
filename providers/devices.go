package providers

import (
	"context"
	"encoding/json"

	"github.com/gobwas/glob"
)

// IDeviceProvider defines smart-home control plane logic.
type IDeviceProvider interface {
	State(ctx context.Context, entity string) (json.RawMessage, error)
	Forecast(ctx context.Context, entity string, kind string) (json.RawMessage, error)
	Call(ctx context.Context, service string, body interface{}) (json.RawMessage, error)
	Ping(ctx context.Context) error
}

// House describes a single property with its own control plane.
type House struct {
	Name     string
	Readable []glob.Glob
	Devices  IDeviceProvider
}

// CanRead checks whether entity state could be exposed to guests.
func (h *House) CanRead(entity string) bool {
	for _, v := range h.Readable {
		if v.Match(entity) {
			return true
		}
	}

	return false
}
