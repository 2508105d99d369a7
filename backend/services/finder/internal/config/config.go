package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "echargefinder/backend/libs/config"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Port                 string `yaml:"port" env:"FINDER_HTTP_PORT"`
	WSWriteTimeoutMillis int    `yaml:"wsWriteTimeoutMillis" env:"FINDER_WS_WRITE_TIMEOUT_MS"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"FINDER_STORAGE_DRIVER"`
	Path   string `yaml:"path" env:"FINDER_SQLITE_PATH"`
	DSN    string `yaml:"dsn" env:"FINDER_POSTGRES_DSN"`
}

// RedisConfig is used by the redis driver.
type RedisConfig struct {
	Addr      string `yaml:"addr" env:"FINDER_REDIS_ADDR"`
	Password  string `yaml:"password" env:"FINDER_REDIS_PASSWORD"`
	DB        int    `yaml:"db" env:"FINDER_REDIS_DB"`
	KeyPrefix string `yaml:"keyPrefix" env:"FINDER_REDIS_KEY_PREFIX"`
}

// SimulatorConfig tunes the availability random walk.
type SimulatorConfig struct {
	IntervalMillis int  `yaml:"intervalMillis" env:"FINDER_SIM_INTERVAL_MS"`
	MaxDelta       int  `yaml:"maxDelta" env:"FINDER_SIM_MAX_DELTA"`
	Disabled       bool `yaml:"disabled" env:"FINDER_SIM_DISABLED"`
}

// CatalogConfig points at an optional YAML station list.
type CatalogConfig struct {
	File string `yaml:"file" env:"FINDER_CATALOG_FILE"`
}

// AuthConfig configures password hashing.
type AuthConfig struct {
	BcryptCost int `yaml:"bcryptCost" env:"FINDER_BCRYPT_COST"`
}

// Config defines finder service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   StorageConfig   `yaml:"storage"`
	Redis     RedisConfig     `yaml:"redis"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Auth      AuthConfig      `yaml:"auth"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:                 "8080",
			WSWriteTimeoutMillis: 10000,
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   "data/echargefinder.db",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Simulator: SimulatorConfig{
			IntervalMillis: 4000,
			MaxDelta:       2,
		},
	}
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := Default()
	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks driver specific requirements.
func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return errors.New("config: sqlite path is required")
		}
	case DriverRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return errors.New("config: redis addr is required")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return errors.New("config: postgres DSN is required")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Simulator.MaxDelta < 0 {
		return errors.New("config: simulator max delta must not be negative")
	}
	return nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.Contains(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// TickInterval converts the configured simulator period to a duration.
func (c *Config) TickInterval() time.Duration {
	if c.Simulator.IntervalMillis <= 0 {
		return 4 * time.Second
	}
	return time.Duration(c.Simulator.IntervalMillis) * time.Millisecond
}

// WSWriteTimeout returns websocket write timeout.
func (c *Config) WSWriteTimeout() time.Duration {
	if c.HTTP.WSWriteTimeoutMillis <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.HTTP.WSWriteTimeoutMillis) * time.Millisecond
}
