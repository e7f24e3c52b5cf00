package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"` // "postgres" or "sqlite3"
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Auth struct {
		Secret   string        `yaml:"secret"`
		TokenTTL time.Duration `yaml:"token_ttl"`
	} `yaml:"auth"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is supplied
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "merenda.db"
	cfg.Auth.Secret = "dev-secret-change-me"
	cfg.Auth.TokenTTL = 24 * time.Hour
	cfg.LogLevel = "info"
	return cfg
}

// Load reads a YAML configuration file, falling back to defaults for any
// field the file leaves unset
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment overrides for deployment secrets
	if secret := os.Getenv("MERENDA_JWT_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}
	if dsn := os.Getenv("MERENDA_DATABASE_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}

	return cfg, nil
}
