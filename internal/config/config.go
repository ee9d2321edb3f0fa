package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config defines fraudwatch service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"FRAUDWATCH_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"FRAUDWATCH_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"FRAUDWATCH_REDIS_ADDR"`
		Password string `yaml:"password" env:"FRAUDWATCH_REDIS_PASSWORD"`
		TTL      int    `yaml:"ttlSeconds" env:"FRAUDWATCH_REDIS_TTL"`
	} `yaml:"redis"`
	CORS struct {
		AllowedOrigin string `yaml:"allowedOrigin" env:"FRAUDWATCH_CORS_ORIGIN"`
	} `yaml:"cors"`
	Billing struct {
		RatePerUnit float64 `yaml:"ratePerUnit" env:"FRAUDWATCH_RATE_PER_UNIT"`
	} `yaml:"billing"`
}

// Load reads configuration from optional YAML file plus environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Redis.TTL = 30
	cfg.CORS.AllowedOrigin = "http://localhost:3000"
	cfg.Billing.RatePerUnit = 6

	if err := loadInto(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if cfg.Billing.RatePerUnit <= 0 {
		return nil, errors.New("config: billing rate must be positive")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// MetricsCacheTTL returns the dashboard metrics cache TTL.
func (c *Config) MetricsCacheTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Redis.TTL) * time.Second
}

// CacheEnabled reports whether a redis address is configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}
