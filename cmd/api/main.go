package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/edutech/studify/internal/pkg/logger"
	"github.com/edutech/studify/internal/server"
)

func main() {
	// A missing .env is fine; configuration falls back to config.yaml and
	// real environment variables.
	_ = godotenv.Load()

	srv, err := server.New()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
