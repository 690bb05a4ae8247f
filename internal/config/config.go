// Package config handles application configuration from environment variables
// and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
// Fields come from the YAML file named by CONFIG_FILE, then environment variables.
type Config struct {
	// Server settings
	Port            int    `yaml:"port"`             // HTTP port to listen on
	Env             string `yaml:"env"`              // development, staging, production
	CORSOrigin      string `yaml:"cors_origin"`      // Access-Control-Allow-Origin value
	ShutdownTimeout int    `yaml:"shutdown_timeout"` // seconds to drain requests on shutdown

	// Database
	DatabasePath string `yaml:"database_path"` // Path to SQLite file

	// Authentication
	APIKey string `yaml:"api_key"` // API key for wardrobe mutations

	// Logging
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // json, text
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:            3031,
		Env:             EnvDevelopment,
		CORSOrigin:      "*",
		ShutdownTimeout: 10,
		DatabasePath:    "./data/wardrobe.db",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads configuration.
//
// Order of precedence, lowest first: defaults, the YAML file named by CONFIG_FILE,
// environment variables. A .env file is loaded into the environment first if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFile overlays the YAML file at path, expanding ${VAR} references.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnvInt("PORT", c.Port)
	c.Env = getEnv("ENV", c.Env)
	c.CORSOrigin = getEnv("CORS_ORIGIN", c.CORSOrigin)
	c.ShutdownTimeout = getEnvInt("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.DatabasePath = getEnv("DATABASE_PATH", c.DatabasePath)
	c.APIKey = getEnv("API_KEY", c.APIKey)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
}

// Validate checks that all required configuration is present and valid.
// All problems are reported together.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Env, validation.Required, validation.In(EnvDevelopment, EnvStaging, EnvProduction)),
		validation.Field(&c.CORSOrigin, validation.Required),
		validation.Field(&c.ShutdownTimeout, validation.Required, validation.Min(1), validation.Max(300)),
		validation.Field(&c.DatabasePath, validation.Required),
		validation.Field(&c.APIKey,
			validation.When(c.Env == EnvProduction, validation.Required.Error("is required in production")),
		),
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.Required, validation.In("json", "text")),
	)
}

// Address returns the HTTP listen address.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ShutdownDuration returns ShutdownTimeout as a duration.
func (c *Config) ShutdownDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
