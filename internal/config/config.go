package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// FrontendURL is the browser origin allowed by CORS. Empty disables CORS headers.
	FrontendURL string `mapstructure:"frontend_url" validate:"omitempty,url"`
	BackendURL  string `mapstructure:"backend_url" validate:"omitempty,url"`
}

// DatabaseConfig contains the connection pool and SQL template settings.
type DatabaseConfig struct {
	// URL is the connection string. CONNECTION_URL populates it.
	URL            string        `mapstructure:"url" validate:"required"`
	TemplateDir    string        `mapstructure:"template_dir" validate:"required"`
	MaxConns       int32         `mapstructure:"max_conns" validate:"gt=0"`
	MinConns       int32         `mapstructure:"min_conns" validate:"gte=0,ltefield=MaxConns"`
	AcquireTimeout time.Duration `mapstructure:"acquire_timeout" validate:"gt=0"`
}

// AuthConfig contains optional bearer token verification settings.
// Authentication is disabled when JWTSecret is empty.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
}

// Enabled reports whether bearer tokens are verified.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// TelemetryConfig controls OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Exporter    string  `mapstructure:"exporter" validate:"omitempty,oneof=otlp-http stdout"`
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name" validate:"required"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}
