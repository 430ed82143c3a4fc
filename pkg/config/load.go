package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the configuration from the environment. When file paths are
// given the first loadable one seeds the environment; otherwise ./.env is
// tried. A missing .env file is not an error.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using system environment variables")
		}
		return loadFromEnv()
	}

	for _, path := range envFilePath {
		if err := godotenv.Load(path); err != nil {
			logger.Debug("environment file not loadable", "path", path, "error", err)
			continue
		}
		logger.Info("environment loaded from file", "path", path)
		return loadFromEnv()
	}

	logger.Warn("no provided environment file loadable, using system environment variables")
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
