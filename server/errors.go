package server

import (
	"net/http"

	"github.com/go-home-io/guestkey/systems/access"
	"github.com/go-home-io/guestkey/systems/booking"
	"github.com/go-home-io/guestkey/systems/permissions"
	"github.com/pkg/errors"
)

const (
	msgInvalidLink     = "Invalid booking link."
	msgAccessDenied    = "Access Denied."
	msgExpired         = "This booking link has expired."
	msgUnavailable     = "Booking service is temporarily unavailable."
	msgInternal        = "Internal server error."
	msgUnauthorized    = "Unauthorized."
	msgInactive        = "Device controls are only available during your stay."
	msgForbidden       = "You are not allowed to control this device."
	msgBadRequest      = "Bad request."
	msgUnknownHouse    = "House not found."
	msgDeviceFailure   = "Device service is unavailable."
	msgTooManyRequests = "Too many requests."
)

// ErrBadRequest defines generic request error.
type ErrBadRequest struct {
}

// Error formats output.
func (e *ErrBadRequest) Error() string {
	return "bad request"
}

// ErrMissingParameter defines missing request parameter.
type ErrMissingParameter struct {
	Name string
}

// Error formats output.
func (e *ErrMissingParameter) Error() string {
	return "parameter " + e.Name + " is missing"
}

// ErrNotConfigured defines missing mandatory system.
type ErrNotConfigured struct {
	Name string
}

// Error formats output.
func (e *ErrNotConfigured) Error() string {
	return "system " + e.Name + " is not configured"
}

// apiError is a body of every failed API response.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Maps booking validation errors.
// Unknown booking key and invalid PIN differ only by status.
func validationStatus(err error) (int, *apiError) {
	switch errors.Cause(err).(type) {
	case *access.ErrMalformedCredential, *ErrMissingParameter, *ErrBadRequest:
		return http.StatusBadRequest, &apiError{Error: msgInvalidLink, Code: "bad_request"}
	case *booking.ErrUnknownBookingKey:
		return http.StatusNotFound, &apiError{Error: msgAccessDenied, Code: "access_denied"}
	case *booking.ErrInvalidCredential:
		return http.StatusForbidden, &apiError{Error: msgAccessDenied, Code: "access_denied"}
	case *access.ErrExpiredBooking:
		return http.StatusForbidden, &apiError{Error: msgExpired, Code: "expired"}
	case *booking.ErrUpstreamUnavailable:
		return http.StatusServiceUnavailable, &apiError{Error: msgUnavailable, Code: "upstream_unavailable"}
	}

	return http.StatusInternalServerError, &apiError{Error: msgInternal, Code: "internal"}
}

// Maps device proxy errors.
// Any credential problem is reported as unauthorized.
func proxyStatus(err error) (int, *apiError) {
	switch errors.Cause(err).(type) {
	case *permissions.ErrUnsupportedCommand, *permissions.ErrInvalidPayload, *access.ErrUnsupportedReadKind,
		*access.ErrInvalidEntity, *ErrMissingParameter, *ErrBadRequest:
		return http.StatusBadRequest, &apiError{Error: err.Error(), Code: "bad_request"}
	case *access.ErrMalformedCredential, *booking.ErrUnknownBookingKey, *booking.ErrInvalidCredential:
		return http.StatusUnauthorized, &apiError{Error: msgUnauthorized, Code: "unauthorized"}
	case *access.ErrExpiredBooking:
		return http.StatusForbidden, &apiError{Error: msgExpired, Code: "expired"}
	case *access.ErrInactiveBooking:
		return http.StatusForbidden, &apiError{Error: msgInactive, Code: "inactive"}
	case *access.ErrForbidden, *access.ErrEntityNotReadable:
		return http.StatusForbidden, &apiError{Error: msgForbidden, Code: "forbidden"}
	case *access.ErrUnknownHouse:
		return http.StatusNotFound, &apiError{Error: msgUnknownHouse, Code: "unknown_house"}
	case *booking.ErrUpstreamUnavailable:
		return http.StatusServiceUnavailable, &apiError{Error: msgUnavailable, Code: "upstream_unavailable"}
	case *access.ErrDeviceUnavailable:
		return http.StatusBadGateway, &apiError{Error: msgDeviceFailure, Code: "device_unavailable"}
	}

	return http.StatusInternalServerError, &apiError{Error: msgInternal, Code: "internal"}
}
