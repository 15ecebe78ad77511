// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig selects and configures the course persistence backend.
// The jsonfile backend stores everything in a single JSON document; the
// postgres backend requires a database URL and runs migrations at startup.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"      validate:"required,oneof=jsonfile postgres"`
	FilePath    string `mapstructure:"file_path"    validate:"required_if=Backend jsonfile"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Backend postgres"`
}

// AuthConfig contains the single-user authentication settings. PasswordHash
// is a bcrypt hash of the study password; generate one with cmd/hash-generator.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	PasswordHash         string `mapstructure:"password_hash"          validate:"required"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}
