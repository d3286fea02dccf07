// Package config provides configuration management for FleetPulse.
//
// Configuration is loaded from:
// 1. config.yaml file (optional)
// 2. Environment variables (standard names like REMOTE_BASE_URL, SERVER_PORT)
// 3. Default values
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Remote RemoteConfig `mapstructure:"remote"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Sync   SyncConfig   `mapstructure:"sync"`
	Log    LogConfig    `mapstructure:"log"`
	Worker WorkerConfig `mapstructure:"worker"`
}

// ServerConfig contains settings for the read-only HTTP surface.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// RemoteConfig contains settings for the upstream REST backend that
// owns the five domain collections.
type RemoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`

	// Client-side throttle applied across all domain resources.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`

	// Circuit breaker: consecutive failures before the breaker opens,
	// and how long it stays open before probing again.
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
}

// AuthConfig carries the bearer token for the upstream backend.
// Token acquisition and refresh live outside this process; FleetPulse
// only consumes whatever credential it is handed.
type AuthConfig struct {
	Token string `mapstructure:"token"`
}

// SyncConfig contains background synchronization settings.
type SyncConfig struct {
	// RefreshInterval is how often each domain store re-fetches its
	// collection from the remote.
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`

	// ReevalInterval is how often the notification feed re-evaluates
	// date-relative conditions with no data change (a scheduled record
	// crossing from due to overdue purely because time passed).
	ReevalInterval time.Duration `mapstructure:"reeval_interval"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// WorkerConfig contains worker pool sizes.
type WorkerConfig struct {
	GeneralPoolSize int `mapstructure:"general_pool_size"`
	RemotePoolSize  int `mapstructure:"remote_pool_size"`
}

// Load reads configuration from file and environment variables.
// Env names map nested keys with underscores: remote.base_url → REMOTE_BASE_URL.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/fleetpulse")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file is optional; defaults and env vars suffice.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks for critical configuration errors.
func (c *Config) Validate() error {
	if c.Remote.BaseURL == "" {
		return fmt.Errorf("remote.base_url must not be empty")
	}
	if !strings.HasPrefix(c.Remote.BaseURL, "http://") && !strings.HasPrefix(c.Remote.BaseURL, "https://") {
		return fmt.Errorf("remote.base_url must be an http(s) URL, got %q", c.Remote.BaseURL)
	}
	if c.Sync.RefreshInterval <= 0 {
		return fmt.Errorf("sync.refresh_interval must be positive")
	}
	if c.Sync.ReevalInterval <= 0 {
		return fmt.Errorf("sync.reeval_interval must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "20s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Remote backend
	v.SetDefault("remote.base_url", "")
	v.SetDefault("remote.timeout", "10s")
	v.SetDefault("remote.rate_limit", 20.0)
	v.SetDefault("remote.rate_burst", 10)
	v.SetDefault("remote.breaker_failures", 5)
	v.SetDefault("remote.breaker_cooldown", "30s")

	// Sync
	v.SetDefault("sync.refresh_interval", "5m")
	v.SetDefault("sync.reeval_interval", "1m")

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Worker pools
	v.SetDefault("worker.general_pool_size", 32)
	v.SetDefault("worker.remote_pool_size", 10)
}
