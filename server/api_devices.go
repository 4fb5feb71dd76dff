package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/systems/access"
	"github.com/go-home-io/guestkey/systems/permissions"
)

// Proxy command request body.
type commandRequest struct {
	OpaqueBookingKey string `json:"opaqueBookingKey"`
}

// Returns entity state or forecast for the booking.
func (s *GuestKeyServer) readEntity(writer http.ResponseWriter, request *http.Request) {
	q := request.URL.Query()
	for _, v := range []string{queryOpaqueKey, queryEntity} {
		if "" == q.Get(v) {
			s.respondProxyError(writer, request, &ErrMissingParameter{Name: v})
			return
		}
	}

	data, err := s.guard.ReadEntityState(request.Context(), q.Get(queryOpaqueKey), q.Get(queryHouse),
		q.Get(queryEntity), access.ReadKind(q.Get(queryType)))
	if err != nil {
		s.respondProxyError(writer, request, err)
		return
	}

	writer.Header().Set("Cache-Control", proxyCacheControl)
	respondRaw(writer, data)
}

// Forwards device command for the booking.
func (s *GuestKeyServer) issueCommand(writer http.ResponseWriter, request *http.Request) {
	body, err := io.ReadAll(io.LimitReader(request.Body, maxBodySize))
	if err != nil {
		s.respondProxyError(writer, request, &ErrBadRequest{})
		return
	}

	cmd, err := permissions.ParseCommand(body)
	if err != nil {
		s.respondProxyError(writer, request, err)
		return
	}

	req := &commandRequest{}
	if err := json.Unmarshal(body, req); err != nil {
		s.respondProxyError(writer, request, &ErrBadRequest{})
		return
	}

	result, err := s.guard.IssueCommand(request.Context(), req.OpaqueBookingKey, cmd)
	if err != nil {
		s.respondProxyError(writer, request, err)
		return
	}

	respond(writer, result)
}

// Lists devices the booking may control.
func (s *GuestKeyServer) listControls(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get(queryOpaqueKey)
	if "" == raw {
		s.respondProxyError(writer, request, &ErrMissingParameter{Name: queryOpaqueKey})
		return
	}

	controls, err := s.guard.ListControls(request.Context(), raw)
	if err != nil {
		s.respondProxyError(writer, request, err)
		return
	}

	respond(writer, controls)
}

// Logs unexpected failures and responds with mapped status.
func (s *GuestKeyServer) respondProxyError(writer http.ResponseWriter, request *http.Request, err error) {
	status, body := proxyStatus(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("Proxy request failed", err, common.LogRequestToken, getRequestID(request))
	}

	respondError(writer, status, body)
}
