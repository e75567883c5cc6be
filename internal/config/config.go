package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName     string `mapstructure:"APP_NAME"`
	AppVersion  string `mapstructure:"APP_VERSION"`
	AppPort     string `mapstructure:"APP_PORT"`
	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseDSN string `mapstructure:"DATABASE_DSN"`
	RoutePrefix string `mapstructure:"ROUTE_PREFIX"`
	DocsEnabled bool   `mapstructure:"DOCS_ENABLED"`
	StaticDir   string `mapstructure:"STATIC_DIR"`
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`
	EventsQueue string `mapstructure:"EVENTS_QUEUE"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogPretty   bool   `mapstructure:"LOG_PRETTY"`
}

// Supported values of DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var defaults = map[string]interface{}{
	"APP_NAME":     "katalog",
	"APP_VERSION":  "1.0.0",
	"APP_PORT":     ":8080",
	"DB_DRIVER":    DriverSQLite,
	"DATABASE_DSN": "db.sqlite",
	"ROUTE_PREFIX": "",
	"DOCS_ENABLED": true,
	"STATIC_DIR":   "static",
	"RABBITMQ_URL": "",
	"EVENTS_QUEUE": "product_events",
	"LOG_LEVEL":    "info",
	"LOG_PRETTY":   false,
}

// Load reads configuration from v. Defaults are registered on v, environment
// variables override them, and CONFIG_FILE names an optional file that is
// read before the environment is consulted.
func Load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.RoutePrefix = strings.TrimSuffix(cfg.RoutePrefix, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted sensibly.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: want %s, %s or %s", c.DBDriver, DriverSQLite, DriverPostgres, DriverMemory)
	}
	if c.DBDriver != DriverMemory && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for driver %s", c.DBDriver)
	}
	if c.RoutePrefix != "" && !strings.HasPrefix(c.RoutePrefix, "/") {
		return fmt.Errorf("invalid ROUTE_PREFIX %q: must start with /", c.RoutePrefix)
	}
	if c.DocsEnabled && c.StaticDir == "" {
		return fmt.Errorf("STATIC_DIR is required when docs are enabled")
	}
	return nil
}
