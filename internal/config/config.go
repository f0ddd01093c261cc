// Package config loads application configuration from the environment
// and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application's configuration values.
type Config struct {
	GitHubToken          string
	GitHubAppID          int64
	GitHubInstallationID int64
	GitHubPrivateKeyPath string
	LogLevel             slog.Level
	LogFormat            string
	BatchWorkers         int
}

// LoadConfig reads configuration from environment variables and a .env
// file, sets sensible defaults, and validates required fields. It uses
// the Viper library to handle configuration loading and precedence.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("BATCH_WORKERS", 4)
	viper.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/repro-warden-app.private-key.pem")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", "error", err)
		}
	}

	cfg := &Config{
		GitHubToken:          viper.GetString("GITHUB_TOKEN"),
		GitHubAppID:          viper.GetInt64("GITHUB_APP_ID"),
		GitHubInstallationID: viper.GetInt64("GITHUB_INSTALLATION_ID"),
		GitHubPrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
		LogLevel:             parseLogLevel(viper.GetString("LOG_LEVEL")),
		LogFormat:            viper.GetString("LOG_FORMAT"),
		BatchWorkers:         viper.GetInt("BATCH_WORKERS"),
	}

	if cfg.BatchWorkers <= 0 {
		return nil, fmt.Errorf("BATCH_WORKERS must be positive, got %d", cfg.BatchWorkers)
	}

	return cfg, nil
}

// ValidateForSync checks the fields the issue synchronizer needs.
// Review-only runs never touch GitHub and skip this.
func (c *Config) ValidateForSync() error {
	if c.GitHubToken != "" {
		return nil
	}
	if c.GitHubAppID == 0 {
		return fmt.Errorf("either GITHUB_TOKEN or GITHUB_APP_ID must be set")
	}
	if c.GitHubInstallationID == 0 {
		return fmt.Errorf("GITHUB_INSTALLATION_ID must be set when authenticating as a GitHub App")
	}
	return nil
}

// parseLogLevel parses the log level string into a slog.Level type.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		slog.Warn("unrecognized log level, defaulting to info", "provided", s)
		return slog.LevelInfo
	}
}
