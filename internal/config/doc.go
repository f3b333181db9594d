// Package config loads the server configuration from defaults, an optional
// config.yaml and CRUDDUR_-prefixed environment variables, then validates
// it. CONNECTION_URL is accepted for the database connection string.
package config
