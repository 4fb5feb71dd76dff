package permissions

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Category describes permission category of a device.
type Category string

const (
	// CategoryClimate describes thermostats.
	CategoryClimate Category = "climate"
	// CategoryLights describes lights.
	CategoryLights Category = "lights"
)

// CommandType describes guest device command.
type CommandType string

const (
	// CmdSetTemperature describes setting target temperature.
	CmdSetTemperature CommandType = "set_temperature"
	// CmdToggleLight describes toggling a light.
	CmdToggleLight CommandType = "toggle_light"
)

const (
	// MinTemperature is the lowest target temperature guests may set.
	MinTemperature = 7.0
	// MaxTemperature is the highest target temperature guests may set.
	MaxTemperature = 25.0
)

// Entity domains per category. Matrix entries must belong to them.
var categoryDomains = map[Category]string{
	CategoryClimate: "climate.*",
	CategoryLights:  "light.*",
}

// Temperature accepts both JSON numbers and numeric strings.
type Temperature float64

// UnmarshalJSON parses number or string value.
func (t *Temperature) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if s, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return &ErrInvalidPayload{Reason: "temperature is not a number"}
	}

	*t = Temperature(f)
	return nil
}

// Command is a guest device command.
type Command struct {
	Type        CommandType  `json:"type"`
	Entity      string       `json:"entity"`
	Temperature *Temperature `json:"temperature,omitempty"`
}

// ServiceCall is a validated command ready to be sent to the control plane.
type ServiceCall struct {
	Category Category
	Entity   string
	Service  string
	Body     map[string]interface{}
}

// ParseCommand decodes command from JSON body.
func ParseCommand(data []byte) (*Command, error) {
	cmd := &Command{}
	if err := json.Unmarshal(data, cmd); err != nil {
		if e, ok := err.(*ErrInvalidPayload); ok {
			return nil, e
		}

		return nil, &ErrInvalidPayload{Reason: "malformed body"}
	}

	return cmd, nil
}

// Prepare checks command type and payload.
// Unknown command types are rejected before anything else.
func (c *Command) Prepare() (*ServiceCall, error) {
	var call *ServiceCall

	switch c.Type {
	case CmdSetTemperature:
		call = &ServiceCall{Category: CategoryClimate, Service: "climate/set_temperature"}
	case CmdToggleLight:
		call = &ServiceCall{Category: CategoryLights, Service: "light/toggle"}
	default:
		return nil, &ErrUnsupportedCommand{Type: string(c.Type)}
	}

	if "" == c.Entity {
		return nil, &ErrInvalidPayload{Reason: "entity is missing"}
	}

	call.Entity = c.Entity
	call.Body = map[string]interface{}{"entity_id": c.Entity}

	if CmdSetTemperature == c.Type {
		if nil == c.Temperature {
			return nil, &ErrInvalidPayload{Reason: "temperature is missing"}
		}

		temp := float64(*c.Temperature)
		if temp < MinTemperature || temp > MaxTemperature {
			return nil, &ErrInvalidPayload{Reason: "temperature is out of range"}
		}

		call.Body["temperature"] = temp
	}

	return call, nil
}
