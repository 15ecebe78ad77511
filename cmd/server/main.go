// Package main implements the entry point for the studydeck server,
// which manages personal study courses and drives flashcard study
// sessions over HTTP.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/phrazzld/studydeck/internal/config"
	"github.com/phrazzld/studydeck/internal/platform/logger"
)

func main() {
	// A missing .env file is fine; configuration falls back to real
	// environment variables and defaults.
	_ = godotenv.Load()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, connects the
// configured storage backend, and wires the study engine.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_backend", cfg.Storage.Backend)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return app, nil
}
