package config

import (
	"os"
	"path/filepath"

	"fjacquet/cycle-spend/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the current directory, or its parent, into
// the process environment. Variables already set are not overridden. It
// returns the file loaded, empty when none was found.
func LoadEnv(logger logging.Logger) string {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}

		if err := godotenv.Load(envFile); err != nil {
			if logger != nil {
				logger.WithError(err).Warn("Error loading .env file",
					logging.Field{Key: logging.FieldFile, Value: envFile})
			}
			return ""
		}
		if logger != nil {
			logger.Debug("Loaded environment variables",
				logging.Field{Key: logging.FieldFile, Value: envFile})
		}
		return envFile
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
