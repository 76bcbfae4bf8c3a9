package main

import (
	"os"

	"github.com/odemir/studentbook/internal/pkg/logger"
	"github.com/odemir/studentbook/internal/server"
)

// @title Studentbook API
// @version 1.0
// @description Session-gated student record console with public graduate lookup

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// The default logger from the logger package's init is available here
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
