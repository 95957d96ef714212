// Package config loads the service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Store       StoreConfig    `mapstructure:"store"`
	Platform    PlatformConfig `mapstructure:"platform"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Logging     LoggingConfig  `mapstructure:"logging"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
	IdleTimeout  int `mapstructure:"idle_timeout"`
}

// StoreConfig selects and tunes the record store backend
type StoreConfig struct {
	// Mode is "memory" or "platform".
	Mode string `mapstructure:"mode"`
	// SimulateLatency makes the in-memory backend behave like a remote
	// one by delaying each operation.
	SimulateLatency bool `mapstructure:"simulate_latency"`
	// SnapshotTTL is the remote getAll cache lifetime in seconds.
	SnapshotTTL int `mapstructure:"snapshot_ttl"`
}

// PlatformConfig contains record platform API settings
type PlatformConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig contains metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Addr returns the host:port string for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("GRAMSHIELD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	overrideWithEnvVars()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Store.Mode {
	case "memory", "platform":
	default:
		return fmt.Errorf("invalid store mode %q, expected memory or platform", c.Store.Mode)
	}
	if c.Store.Mode == "platform" && c.Platform.BaseURL == "" {
		return fmt.Errorf("platform store mode requires platform.base_url")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.idle_timeout", 120)

	viper.SetDefault("store.mode", "memory")
	viper.SetDefault("store.simulate_latency", true)
	viper.SetDefault("store.snapshot_ttl", 30)

	viper.SetDefault("platform.timeout", 10)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.database", 0)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("metrics.enabled", true)
}

// overrideWithEnvVars overrides configuration with environment variables
func overrideWithEnvVars() {
	if url := os.Getenv("PLATFORM_BASE_URL"); url != "" {
		viper.Set("platform.base_url", url)
	}
	if key := os.Getenv("PLATFORM_API_KEY"); key != "" {
		viper.Set("platform.api_key", key)
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		viper.Set("redis.host", host)
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		viper.Set("redis.port", port)
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		viper.Set("redis.password", password)
	}
}
