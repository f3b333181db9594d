package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the environment,
// e.g. CRUDDUR_SERVER_PORT for server.port.
const EnvPrefix = "CRUDDUR"

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from the config file. The database URL is also read from CONNECTION_URL.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 4567)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.frontend_url", "")
	v.SetDefault("server.backend_url", "")

	v.SetDefault("database.template_dir", "db/sql")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 0)
	v.SetDefault("database.acquire_timeout", "30s")

	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.exporter", "otlp-http")
	v.SetDefault("telemetry.endpoint", "localhost:4318")
	v.SetDefault("telemetry.service_name", "backend-flask")
	v.SetDefault("telemetry.sample_rate", 1.0)
}

// bindEnv registers keys that have no default or that accept the
// unprefixed variable names used by the docker-compose setup.
func bindEnv(v *viper.Viper) error {
	bindings := [][]string{
		{"database.url", EnvPrefix + "_DATABASE_URL", "CONNECTION_URL"},
		{"server.frontend_url", EnvPrefix + "_SERVER_FRONTEND_URL", "FRONTEND_URL"},
		{"server.backend_url", EnvPrefix + "_SERVER_BACKEND_URL", "BACKEND_URL"},
	}
	for _, b := range bindings {
		if err := v.BindEnv(b...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", b[0], err)
		}
	}
	return nil
}
