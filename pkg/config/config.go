// Package config provides the configuration surface for connshare.
// It defines named connection entries (the input contract of the connection
// manager) plus the process-wide manager and logging tunables.
//
// Example configuration file:
//
//	connections:
//	  - name: orders
//	    provider: postgres
//	    dsn: postgres://app:${ORDERS_DB_PASSWORD}@db:5432/orders
//	manager:
//	  max_retries: 5
//	  retry_delay: 2s
//	  separate_by_goroutine: true
//	logging:
//	  level: info
//	  encoding: json
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/connshare/pkg/errors"
	"github.com/ajitpratap0/connshare/pkg/provider"
)

// ConnectionConfig describes one named connection target.
type ConnectionConfig struct {
	// Name is the logical label and sharing-key component
	Name string `yaml:"name" json:"name"`
	// Provider names a registered connection provider
	Provider string `yaml:"provider" json:"provider"`
	// DSN is the provider-specific connection text
	DSN string `yaml:"dsn" json:"dsn"`
}

// Identity converts the entry into the manager's identity value.
func (c ConnectionConfig) Identity() provider.Identity {
	return provider.Identity{
		Name:           c.Name,
		Provider:       c.Provider,
		ConnectionText: c.DSN,
	}
}

// Duration is a time.Duration that unmarshals from YAML duration strings
// like "500ms" or "2s". yaml.v3 has no native duration support.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return fmt.Errorf("invalid duration %q: %w", s, perr)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	*d = Duration(n)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ManagerConfig contains the connection manager tunables.
type ManagerConfig struct {
	// MaxRetries is the number of additional open attempts after the first
	MaxRetries int `yaml:"max_retries" json:"max_retries"`
	// RetryDelay is the linear backoff unit between attempts
	RetryDelay Duration `yaml:"retry_delay" json:"retry_delay"`
	// SeparateByGoroutine keys sharing scopes by calling goroutine
	SeparateByGoroutine bool `yaml:"separate_by_goroutine" json:"separate_by_goroutine"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level"`
	Encoding    string `yaml:"encoding" json:"encoding"`
	Development bool   `yaml:"development" json:"development"`
}

// Config is the root configuration document.
type Config struct {
	Connections []ConnectionConfig `yaml:"connections" json:"connections"`
	Manager     ManagerConfig      `yaml:"manager" json:"manager"`
	Logging     LoggingConfig      `yaml:"logging" json:"logging"`
}

// Default returns a configuration with the stock manager tunables and no
// connections.
func Default() *Config {
	return &Config{
		Manager: ManagerConfig{
			MaxRetries:          5,
			RetryDelay:          Duration(2 * time.Second),
			SeparateByGoroutine: true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Validate checks the document for inconsistencies.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Connections))
	for i, conn := range c.Connections {
		if conn.Name == "" {
			return errors.New(errors.ErrorTypeValidation,
				fmt.Sprintf("connection %d has no name", i))
		}
		if conn.Provider == "" {
			return errors.New(errors.ErrorTypeValidation,
				fmt.Sprintf("connection %s has no provider", conn.Name))
		}
		if _, dup := seen[conn.Name]; dup {
			return errors.New(errors.ErrorTypeValidation,
				fmt.Sprintf("duplicate connection name %s", conn.Name))
		}
		seen[conn.Name] = struct{}{}
	}

	if c.Manager.MaxRetries < 0 {
		return errors.New(errors.ErrorTypeValidation, "max_retries must not be negative")
	}
	if c.Manager.RetryDelay < 0 {
		return errors.New(errors.ErrorTypeValidation, "retry_delay must not be negative")
	}
	return nil
}

// Connection returns the named connection entry.
func (c *Config) Connection(name string) (ConnectionConfig, error) {
	for _, conn := range c.Connections {
		if conn.Name == name {
			return conn, nil
		}
	}
	return ConnectionConfig{}, errors.New(errors.ErrorTypeNotFound,
		fmt.Sprintf("connection %s not configured", name))
}
