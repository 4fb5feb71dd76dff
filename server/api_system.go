package server

import "net/http"

// Performs quick check whether system is OK.
func (s *GuestKeyServer) ping(writer http.ResponseWriter, _ *http.Request) {
	respondOk(writer)
}

// Responds with houses availability.
func (s *GuestKeyServer) status(writer http.ResponseWriter, _ *http.Request) {
	respond(writer, s.monitor.Statuses())
}
