// Package appconf holds the application configuration and its loading
// rules: defaults, an optional YAML file, then environment overrides.
package appconf

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment names the runtime environment for logging and handler behavior.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Test        Environment = "test"
)

// Config is the root application configuration.
type Config struct {
	Env     Environment `yaml:"env"`
	Port    int         `yaml:"port" validate:"gt=0,lte=65535"`
	Verbose bool        `yaml:"verbose"`

	Upstream  UpstreamConfig  `yaml:"upstream"`
	Cache     CacheConfig     `yaml:"cache"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

// UpstreamConfig configures the BART API client.
type UpstreamConfig struct {
	BaseURL string `yaml:"baseURL" validate:"required,url"`
	APIKey  string `yaml:"apiKey" validate:"required"`
	// TimeoutSeconds bounds every upstream call; a hung upstream fails the
	// call with a timeout error instead of hanging the request.
	TimeoutSeconds int `yaml:"timeoutSeconds" validate:"gt=0"`
}

// CacheConfig configures the reference-data cache.
type CacheConfig struct {
	TTLHours int `yaml:"ttlHours" validate:"gt=0"`
	MaxSize  int `yaml:"maxSize" validate:"gt=0"`
}

// AnalyticsConfig configures the analytics sink and its admin query surface.
type AnalyticsConfig struct {
	DBPath string `yaml:"dbPath" validate:"required"`
	// AdminToken guards GET /admin/api/analytics. Empty disables the surface.
	AdminToken string `yaml:"adminToken"`
}

// Timeout returns the upstream call timeout as a duration.
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// TTL returns the reference-data expiry as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	return Config{
		Env:  Development,
		Port: 4000,
		Upstream: UpstreamConfig{
			BaseURL:        "https://api.bart.gov/api",
			APIKey:         "MW9S-E7SL-26DU-VV8V",
			TimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			TTLHours: 24,
			MaxSize:  16,
		},
		Analytics: AnalyticsConfig{
			DBPath: "analytics.db",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func Validate(cfg Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	switch cfg.Env {
	case Development, Production, Test:
	default:
		return fmt.Errorf("invalid configuration: unknown env %q", cfg.Env)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BART_PROXY_ENV"); v != "" {
		cfg.Env = Environment(v)
	}
	if v := os.Getenv("BART_PROXY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("BART_API_KEY"); v != "" {
		cfg.Upstream.APIKey = v
	}
	if v := os.Getenv("BART_API_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("ANALYTICS_DB_PATH"); v != "" {
		cfg.Analytics.DBPath = v
	}
	if v := os.Getenv("ANALYTICS_ADMIN_TOKEN"); v != "" {
		cfg.Analytics.AdminToken = v
	}
}
