package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config file.
// Environment variables (prefixed STUDYDECK_, with dots replaced by
// underscores, e.g. STUDYDECK_SERVER_PORT) take precedence over values from
// an optional config.yaml in the working directory, which in turn override
// the built-in defaults. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults. Every key gets one so that env-only configuration binds.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("storage.backend", "jsonfile")
	v.SetDefault("storage.file_path", "flashcards.json")
	v.SetDefault("storage.database_url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults suffice.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("STUDYDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
