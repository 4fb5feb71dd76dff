package server

import (
	"net/http"

	"github.com/go-home-io/guestkey/common"
)

// Validates booking link and responds with access level.
func (s *GuestKeyServer) validateBooking(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get(queryBooking)
	if "" == raw {
		status, body := validationStatus(&ErrMissingParameter{Name: queryBooking})
		respondError(writer, status, body)
		return
	}

	decision, err := s.guard.ValidateBooking(request.Context(), raw)
	if err != nil {
		status, body := validationStatus(err)
		if status == http.StatusInternalServerError {
			s.Logger.Error("Booking validation failed", err, common.LogRequestToken, getRequestID(request))
		}

		respondError(writer, status, body)
		return
	}

	respond(writer, decision)
}
