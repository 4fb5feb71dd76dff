// Package devices implements Home Assistant control plane client.
package devices

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"github.com/pkg/errors"
)

const (
	// DefaultTimeout is used when timeout is not configured.
	DefaultTimeout = 15 * time.Second

	statesEndpoint   = "/api/states/"
	servicesEndpoint = "/api/services/"
	pingEndpoint     = "/api/"
	forecastService  = "weather/get_forecasts"
)

// ConstructHass has data required for a new Home Assistant client.
type ConstructHass struct {
	Logger  common.ILoggerProvider
	Name    string
	URL     string
	Token   string
	Timeout time.Duration
	Client  *http.Client
}

// Home Assistant REST client.
type hass struct {
	logger common.ILoggerProvider
	name   string
	url    string
	token  string
	client *http.Client
}

type forecastRequest struct {
	EntityID string `json:"entity_id"`
	Type     string `json:"type"`
}

type forecastResponse struct {
	ServiceResponse map[string]struct {
		Forecast json.RawMessage `json:"forecast"`
	} `json:"service_response"`
}

// NewHassProvider constructs a new Home Assistant client.
func NewHassProvider(ctor *ConstructHass) providers.IDeviceProvider {
	client := ctor.Client
	if nil == client {
		timeout := ctor.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}

		client = &http.Client{Timeout: timeout}
	}

	return &hass{
		logger: ctor.Logger,
		name:   ctor.Name,
		url:    strings.TrimRight(ctor.URL, "/"),
		token:  ctor.Token,
		client: client,
	}
}

// State returns raw entity state.
func (h *hass) State(ctx context.Context, entity string) (json.RawMessage, error) {
	return h.do(ctx, http.MethodGet, statesEndpoint+entity, nil)
}

// Forecast returns forecast list of the weather entity.
// Missing forecast is returned as an empty list.
func (h *hass) Forecast(ctx context.Context, entity string, kind string) (json.RawMessage, error) {
	data, err := h.do(ctx, http.MethodPost, servicesEndpoint+forecastService+"?return_response=true",
		&forecastRequest{EntityID: entity, Type: kind})
	if err != nil {
		return nil, err
	}

	resp := &forecastResponse{}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, errors.Wrap(err, "decode forecast")
	}

	v, ok := resp.ServiceResponse[entity]
	if !ok || len(v.Forecast) == 0 || string(v.Forecast) == "null" {
		return json.RawMessage("[]"), nil
	}

	return v.Forecast, nil
}

// Call invokes domain/service with the body.
func (h *hass) Call(ctx context.Context, service string, body interface{}) (json.RawMessage, error) {
	return h.do(ctx, http.MethodPost, servicesEndpoint+strings.Trim(service, "/"), body)
}

// Ping checks that API is reachable.
func (h *hass) Ping(ctx context.Context) error {
	_, err := h.do(ctx, http.MethodGet, pingEndpoint, nil)
	return err
}

func (h *hass) do(ctx context.Context, method string, path string, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode body")
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, h.url+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}

	defer resp.Body.Close() // nolint: errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		h.logger.Warn("Home Assistant returned error", common.LogHouseToken, h.name,
			common.LogURLToken, path, "status", resp.Status)
		return nil, errors.WithStack(&ErrUpstream{Status: resp.StatusCode})
	}

	return json.RawMessage(data), nil
}
