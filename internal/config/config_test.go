package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"katalog/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "db.sqlite", cfg.DatabaseDSN)
	assert.Equal(t, "", cfg.RoutePrefix)
	assert.True(t, cfg.DocsEnabled)
	assert.Equal(t, "product_events", cfg.EventsQueue)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ROUTE_PREFIX", "/api/")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("DOCS_ENABLED", "false")

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/api", cfg.RoutePrefix)
	assert.Equal(t, config.DriverMemory, cfg.DBDriver)
	assert.False(t, cfg.DocsEnabled)
}

func TestLoad_ConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "katalog.yaml")
	require.NoError(t, os.WriteFile(file, []byte("APP_PORT: \":9090\"\nLOG_LEVEL: debug\n"), 0o600))
	t.Setenv("CONFIG_FILE", file)

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("Driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := config.Load(viper.New())
		assert.ErrorContains(t, err, "invalid DB_DRIVER")
	})
	t.Run("Prefix", func(t *testing.T) {
		t.Setenv("ROUTE_PREFIX", "api")
		_, err := config.Load(viper.New())
		assert.ErrorContains(t, err, "invalid ROUTE_PREFIX")
	})
	t.Run("MissingFile", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := config.Load(viper.New())
		assert.ErrorContains(t, err, "failed to read config file")
	})
}
