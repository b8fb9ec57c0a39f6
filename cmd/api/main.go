package main

import (
	"os"

	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/logger"
	"github.com/gspavan07/StudentCodingDashboard/internal/server"
)

// @title Student Coding Dashboard API
// @version 1.0
// @description API for tracking student competitive-programming statistics across platforms

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
