// Package cli provides common initialization for the rugstore command:
// env file loading, logging, configuration and store setup.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"rugstore/internal/config"
	"rugstore/internal/log"
	"rugstore/internal/storage"
)

// SetupLogger initializes structured logging at the given level and installs
// it as the default logger.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the SQLite store at dbPath, running migrations.
// Returns the store or exits the process on failure.
func InitStore(logger *log.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite store", log.FieldError, err, log.FieldDBPath, dbPath)
		os.Exit(1)
	}
	return repo
}
