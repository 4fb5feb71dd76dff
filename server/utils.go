package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-home-io/guestkey/common"
	"github.com/google/uuid"
)

// Plain HTTP_200 API response.
func respondOk(writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	io.WriteString(writer, `{ "status": "OK" }`) // nolint: errcheck
}

// Generic API respond.
func respond(writer http.ResponseWriter, data interface{}) {
	d, err := json.Marshal(data)
	if err != nil {
		respondError(writer, http.StatusInternalServerError, &apiError{Error: msgInternal, Code: "internal"})
		return
	}

	respondRaw(writer, d)
}

// Responds with already encoded JSON.
func respondRaw(writer http.ResponseWriter, data []byte) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(data) // nolint: errcheck
}

// Failed API response.
func respondError(writer http.ResponseWriter, status int, body *apiError) {
	d, _ := json.Marshal(body) // nolint: gosec
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(d) // nolint: errcheck
}

// Logger middleware for the API.
// Assigns request ID unless caller already did.
func (s *GuestKeyServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if "" == id {
			id = uuid.New().String()
		}

		w.Header().Set(headerRequestID, id)
		s.Logger.Debug("REST invocation", common.LogURLToken, r.URL.Path, common.LogIPToken, clientIP(r),
			common.LogRequestToken, id)

		ctx := context.WithValue(r.Context(), ctxtRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Rate limiting middleware, keyed by caller IP.
// Limiter failures let the request through.
func (s *GuestKeyServer) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, err := s.Settings.RateLimiter().Allow(r.Context(), ip)
		if err != nil {
			s.Logger.Warn("Rate limiter is unavailable", common.LogIPToken, ip,
				common.LogErrorToken, err.Error())
		}

		if !ok && nil == err {
			s.Logger.Warn("Rate limit exceeded", common.LogIPToken, ip, common.LogURLToken, r.URL.Path)
			respondError(w, http.StatusTooManyRequests, &apiError{Error: msgTooManyRequests, Code: "rate_limited"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Gets request ID out of context.
func getRequestID(request *http.Request) string {
	id, _ := request.Context().Value(ctxtRequestID).(string)
	return id
}

// Returns caller IP, honouring reverse proxy headers.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
