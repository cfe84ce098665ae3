package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/connshare/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "connshare.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	t.Setenv("ORDERS_DB_PASSWORD", "s3cret")

	path := writeConfig(t, `
connections:
  - name: orders
    provider: postgres
    dsn: postgres://app:${ORDERS_DB_PASSWORD}@db:5432/orders
  - name: events
    provider: kafka
    dsn: broker-1:9092,broker-2:9092
manager:
  max_retries: 3
  retry_delay: 500ms
  separate_by_goroutine: false
logging:
  level: debug
  encoding: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Connections, 2)
	assert.Equal(t, "postgres://app:s3cret@db:5432/orders", cfg.Connections[0].DSN)
	assert.Equal(t, 3, cfg.Manager.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Manager.RetryDelay.Std())
	assert.False(t, cfg.Manager.SeparateByGoroutine)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
connections:
  - name: orders
    provider: postgres
    dsn: postgres://db/orders
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Manager.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Manager.RetryDelay.Std())
	assert.True(t, cfg.Manager.SeparateByGoroutine)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsDuplicates(t *testing.T) {
	cfg := Default()
	cfg.Connections = []ConnectionConfig{
		{Name: "orders", Provider: "postgres"},
		{Name: "orders", Provider: "mysql"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cfg := Default()
	cfg.Connections = []ConnectionConfig{{Provider: "postgres"}}
	require.Error(t, cfg.Validate())

	cfg.Connections = []ConnectionConfig{{Name: "orders"}}
	require.Error(t, cfg.Validate())

	cfg.Connections = nil
	cfg.Manager.MaxRetries = -1
	require.Error(t, cfg.Validate())
}

func TestConnectionLookup(t *testing.T) {
	cfg := Default()
	cfg.Connections = []ConnectionConfig{
		{Name: "orders", Provider: "postgres", DSN: "postgres://db/orders"},
	}

	conn, err := cfg.Connection("orders")
	require.NoError(t, err)

	identity := conn.Identity()
	assert.Equal(t, "orders", identity.Name)
	assert.Equal(t, "postgres", identity.Provider)
	assert.Equal(t, "postgres://db/orders", identity.ConnectionText)

	_, err = cfg.Connection("billing")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}
