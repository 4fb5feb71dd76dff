// Package server contains guestkey HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
	"github.com/go-home-io/guestkey/systems"
	"github.com/go-home-io/guestkey/systems/access"
	"github.com/go-home-io/guestkey/systems/booking"
	"github.com/go-home-io/guestkey/systems/permissions"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const (
	// Logger system representation.
	logSystem = "server"
	// Graceful shutdown limit.
	shutdownTimeout = 10 * time.Second
)

// GuestKeyServer describes guest access server.
type GuestKeyServer struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	guard   *access.Guard
	monitor *houseMonitor
}

// NewServer constructs a new server.
func NewServer(settings providers.ISettingsProvider) (*GuestKeyServer, error) {
	if nil == settings.Calendar() {
		return nil, &ErrNotConfigured{Name: systems.SysBooking.String()}
	}

	if nil == settings.Permissions() {
		return nil, &ErrNotConfigured{Name: systems.SysPermissions.String()}
	}

	master := settings.MasterSettings()
	matcher := booking.NewMatcher(&booking.ConstructMatcher{
		Logger:   settings.ComponentLogger(systems.SysBooking, "matcher"),
		Calendar: settings.Calendar(),
		Feeds:    settings.Feeds(),
		Deriver:  booking.NewDeriver(settings.Derivation()),
	})

	guard := access.NewGuard(&access.ConstructGuard{
		Logger:  settings.ComponentLogger(systems.SysGoHome, "guard"),
		Matcher: matcher,
		Calculator: access.NewCalculator(settings.Location(), access.Hours{
			CheckIn:  master.CheckInHour,
			CheckOut: master.CheckOutHour,
			InfoEnd:  master.InfoEndHour,
		}),
		Authorizer: permissions.NewAuthorizer(settings.ComponentLogger(systems.SysPermissions, "authorizer"),
			settings.Permissions()),
		Houses: settings.Houses(),
	})

	server := &GuestKeyServer{
		Logger:   settings.SystemLogger(),
		Settings: settings,
		guard:    guard,
		monitor:  newHouseMonitor(settings),
	}

	return server, nil
}

// Start launches the server and blocks until stop signal.
func (s *GuestKeyServer) Start() {
	if err := s.monitor.Start(); err != nil {
		s.Logger.Error("Failed to schedule house monitor", err, common.LogSystemToken, logSystem)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Settings.MasterSettings().Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("Failed to start server", err, common.LogSystemToken, logSystem)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", s.Settings.MasterSettings().Port),
		common.LogSystemToken, logSystem)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	s.Logger.Info("Received stop command, exiting", common.LogSystemToken, logSystem)
	s.Settings.Cron().Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Error("Failed to stop server gracefully", err, common.LogSystemToken, logSystem)
	}

	s.Logger.Flush()
}

// Handler returns HTTP handler with all routes and middlewares.
func (s *GuestKeyServer) Handler() http.Handler {
	router := mux.NewRouter()
	s.registerAPI(router)

	origins := s.Settings.MasterSettings().AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", headerRequestID}),
	)

	return handlers.RecoveryHandler(handlers.RecoveryLogger(&recoveryLogger{logger: s.Logger}),
		handlers.PrintRecoveryStack(false))(cors(router))
}

// All API registration.
func (s *GuestKeyServer) registerAPI(router *mux.Router) {
	publicRouter := router.PathPrefix(routePublic).Subrouter()
	publicRouter.HandleFunc("/ping", s.ping).Methods(http.MethodGet)
	publicRouter.HandleFunc("/status", s.status).Methods(http.MethodGet)

	apiRouter := router.PathPrefix(routeAPI).Subrouter()
	apiRouter.HandleFunc("/validate-booking", s.validateBooking).Methods(http.MethodGet)
	apiRouter.HandleFunc("/ha-proxy", s.readEntity).Methods(http.MethodGet)
	apiRouter.HandleFunc("/ha-proxy", s.issueCommand).Methods(http.MethodPost)
	apiRouter.HandleFunc("/controls", s.listControls).Methods(http.MethodGet)
	apiRouter.Use(s.logMiddleware)
	apiRouter.Use(s.rateLimitMiddleware)
}

// Adapts system logger for panic recovery.
type recoveryLogger struct {
	logger common.ILoggerProvider
}

// Println logs recovered panic.
func (l *recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("Recovered from panic", fmt.Errorf("%v", v), common.LogSystemToken, logSystem)
}
