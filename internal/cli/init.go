// Package cli provides common CLI initialization utilities.
// This package consolidates repeated initialization patterns across
// cmd/tally, cmd/tally-worker, and cmd/tally-site.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"tally/internal/config"
	"tally/internal/storage"
)

// SetupLogger initializes structured logging with default settings and sets
// the result as the default logger. Diagnostics go to stderr so stdout stays
// reserved for the JSON artifact.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitHistory initializes the run-history repository with the given path.
// Returns the repository or exits the process on failure.
func InitHistory(logger *slog.Logger, dbPath string) *storage.Repository {
	history, err := storage.NewRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize run history", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return history
}
