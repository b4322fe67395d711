package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crestline/origination-backend/internal/platform/envutil"
)

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // postgres or sqlite
	DSN    string `yaml:"dsn"`
}

type AuthConfig struct {
	JWTSecret          string `yaml:"jwt_secret"`
	AccessTokenTTLSecs int    `yaml:"access_token_ttl_secs"`
}

type RedisConfig struct {
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel"`
}

type OtelConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type Config struct {
	Mode     string         `yaml:"mode"`
	Port     string         `yaml:"port"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Redis    RedisConfig    `yaml:"redis"`
	Otel     OtelConfig     `yaml:"otel"`
}

// Load reads the YAML file at path (skipped when empty or missing) and then
// applies environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Mode: "development",
		Port: "8080",
		Database: DatabaseConfig{
			Driver: "postgres",
			DSN:    "postgres://postgres:@localhost:5432/origination?sslmode=disable",
		},
		Auth: AuthConfig{
			JWTSecret:          "defaultsecret",
			AccessTokenTTLSecs: 3600,
		},
		Redis: RedisConfig{
			Channel: "origination.events",
		},
		Otel: OtelConfig{
			ServiceName: "origination-backend",
			Environment: "development",
		},
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Mode = envutil.String("APP_MODE", cfg.Mode)
	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.Database.Driver = envutil.String("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = envutil.String("DB_DSN", cfg.Database.DSN)
	cfg.Auth.JWTSecret = envutil.String("JWT_SECRET_KEY", cfg.Auth.JWTSecret)
	cfg.Auth.AccessTokenTTLSecs = envutil.Int("ACCESS_TOKEN_TTL", cfg.Auth.AccessTokenTTLSecs)
	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Channel = envutil.String("REDIS_CHANNEL", cfg.Redis.Channel)
	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment)
	cfg.Otel.Version = envutil.String("OTEL_SERVICE_VERSION", cfg.Otel.Version)

	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	return cfg, nil
}
