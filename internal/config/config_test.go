package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear any existing env vars that might interfere
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Port != 3031 {
		t.Errorf("Port = %d, want 3031", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.DatabasePath != "./data/wardrobe.db" {
		t.Errorf("DatabasePath = %q, want ./data/wardrobe.db", cfg.DatabasePath)
	}
	if cfg.CORSOrigin != "*" {
		t.Errorf("CORSOrigin = %q, want *", cfg.CORSOrigin)
	}
	if cfg.ShutdownDuration() != 10*time.Second {
		t.Errorf("ShutdownDuration() = %v, want 10s", cfg.ShutdownDuration())
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()

	os.Setenv("PORT", "3000")
	os.Setenv("ENV", "production")
	os.Setenv("DATABASE_PATH", "/data/test.db")
	os.Setenv("API_KEY", "secret-key-123")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("CORS_ORIGIN", "https://calendar.example.com")
	os.Setenv("SHUTDOWN_TIMEOUT", "30")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DatabasePath != "/data/test.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/data/test.db")
	}
	if cfg.APIKey != "secret-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "secret-key-123")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if cfg.CORSOrigin != "https://calendar.example.com" {
		t.Errorf("CORSOrigin = %q", cfg.CORSOrigin)
	}
	if cfg.ShutdownTimeout != 30 {
		t.Errorf("ShutdownTimeout = %d, want 30", cfg.ShutdownTimeout)
	}
	if cfg.Address() != ":3000" {
		t.Errorf("Address() = %q, want :3000", cfg.Address())
	}
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv()
	defer clearEnv()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: 4000
env: staging
database_path: ${WARDROBE_DIR}/wardrobe.db
log_format: json
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	os.Setenv("CONFIG_FILE", path)
	os.Setenv("WARDROBE_DIR", "/srv")
	// Environment wins over the file
	os.Setenv("PORT", "5000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 5000 {
		t.Errorf("Port = %d, want 5000 (env override)", cfg.Port)
	}
	if cfg.Env != EnvStaging {
		t.Errorf("Env = %q, want staging", cfg.Env)
	}
	if cfg.DatabasePath != "/srv/wardrobe.db" {
		t.Errorf("DatabasePath = %q, want /srv/wardrobe.db", cfg.DatabasePath)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
	// Untouched by file and env
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv()
	defer clearEnv()

	os.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("Load() with missing CONFIG_FILE succeeded, want error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [not a number"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	os.Setenv("CONFIG_FILE", path)
	if _, err := Load(); err == nil {
		t.Error("Load() with malformed YAML succeeded, want error")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func(mod func(c *Config)) Config {
		c := Default()
		mod(c)
		return *c
	}

	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid development config",
			config:  valid(func(c *Config) {}),
			wantErr: false,
		},
		{
			name: "valid production config",
			config: valid(func(c *Config) {
				c.Env = EnvProduction
				c.APIKey = "required-in-prod"
				c.LogFormat = "json"
			}),
			wantErr: false,
		},
		{
			name:    "production requires API key",
			config:  valid(func(c *Config) { c.Env = EnvProduction }),
			wantErr: true,
		},
		{
			name:    "invalid port - too low",
			config:  valid(func(c *Config) { c.Port = 0 }),
			wantErr: true,
		},
		{
			name:    "invalid port - too high",
			config:  valid(func(c *Config) { c.Port = 70000 }),
			wantErr: true,
		},
		{
			name:    "invalid environment",
			config:  valid(func(c *Config) { c.Env = "invalid" }),
			wantErr: true,
		},
		{
			name:    "invalid log level",
			config:  valid(func(c *Config) { c.LogLevel = "verbose" }),
			wantErr: true,
		},
		{
			name:    "invalid log format",
			config:  valid(func(c *Config) { c.LogFormat = "xml" }),
			wantErr: true,
		},
		{
			name:    "empty database path",
			config:  valid(func(c *Config) { c.DatabasePath = "" }),
			wantErr: true,
		},
		{
			name:    "empty CORS origin",
			config:  valid(func(c *Config) { c.CORSOrigin = "" }),
			wantErr: true,
		},
		{
			name:    "zero shutdown timeout",
			config:  valid(func(c *Config) { c.ShutdownTimeout = 0 }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateReportsAllFields(t *testing.T) {
	cfg := Default()
	cfg.Port = 0
	cfg.Env = EnvProduction
	cfg.LogFormat = "xml"

	err := cfg.Validate()

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("Validate() error = %T, want validation.Errors", err)
	}
	for _, field := range []string{"Port", "APIKey", "LogFormat"} {
		if _, ok := verrs[field]; !ok {
			t.Errorf("Validate() errors missing %s: %v", field, verrs)
		}
	}
	if len(verrs) != 3 {
		t.Errorf("Validate() reported %d fields, want 3: %v", len(verrs), verrs)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}

	cfg.Env = EnvDevelopment
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
}

// clearEnv removes all config-related environment variables
func clearEnv() {
	vars := []string{
		"PORT", "ENV", "DATABASE_PATH", "API_KEY",
		"LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGIN", "SHUTDOWN_TIMEOUT",
		"CONFIG_FILE", "WARDROBE_DIR",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
