package main

import (
	"fmt"
	"os"

	"github.com/go-home-io/guestkey/server"
	"github.com/go-home-io/guestkey/settings"
	"github.com/jessevdk/go-flags"
)

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		os.Exit(1)
	}

	s, err := settings.Load(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		os.Exit(1)
	}

	s.SystemLogger().Info("Starting guestkey server")

	srv, err := server.NewServer(s)
	if err != nil {
		s.SystemLogger().Fatal("Failed to start guestkey server", err)
	}

	srv.Start()
}
