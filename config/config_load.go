package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads the configuration from a TOML file, fills credential fields from
// the environment and validates the result. An empty path yields the default
// configuration with environment overrides applied.
func Load(path string, logger *slog.Logger) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to unmarshal TOML from %s: %w", path, err)
		}
		logger.Info("loaded configuration file", "path", path)
	} else {
		logger.Info("no configuration file given, using defaults")
	}

	fillEnvVars(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// fillEnvVars overrides secrets with environment variables when present, so
// credentials stay out of the config file.
func fillEnvVars(cfg *Config) {
	if google, ok := cfg.OAuth2Providers[OAuth2ProviderGoogle]; ok {
		google.FillEnvVars(EnvGoogleClientID, EnvGoogleClientSecret)
		cfg.OAuth2Providers[OAuth2ProviderGoogle] = google
	}
	if v := os.Getenv(EnvSmtpPassword); v != "" {
		cfg.Smtp.Password = v
	}
}
