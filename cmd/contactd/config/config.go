// Package config provides configuration management for the contact daemon.
//
// Values come from three layers, highest precedence first:
//
//   - Command line flags (--api, --log-level, ...)
//   - CONTACTD_* environment variables, e.g. CONTACTD_API=0.0.0.0:8080
//   - Built-in defaults from internal/config
//
// Flags and environment are merged through viper. The rate limit window and
// request limit are deliberately absent: they are fixed constants of the
// limiter, not operator settings.
package config

import (
	"net"
	"strconv"
	"time"

	configDefaults "github.com/aeternum/contact/internal/config"
)

// ConfigField represents a configuration field that can be explicitly set
type ConfigField int

const (
	// Configuration field identifiers
	APIAddrField ConfigField = iota
	LogFileField
)

const (
	// EnvPrefix is prepended to flag names to form environment variable names.
	EnvPrefix = "CONTACTD"

	DefaultLogLevel        = configDefaults.DefaultLogLevel
	DefaultSweepInterval   = configDefaults.DefaultSweepInterval
	DefaultShutdownTimeout = configDefaults.DefaultShutdownTimeout
)

// DefaultAPI is the default HTTP API listen address.
var DefaultAPI = net.JoinHostPort(configDefaults.DefaultBindAddr, strconv.Itoa(configDefaults.DefaultAPIPort))

// Config holds all daemon configuration values
type Config struct {
	APIAddr         string        // HTTP API bind address ("host:port" before validation, host after)
	APIPort         int           // HTTP API port (derived from APIAddr)
	LogLevel        string        // Log level: DEBUG, INFO, WARN, ERROR
	LogFile         string        // Optional log file path; stdout when empty
	SweepInterval   time.Duration // How often idle rate limit clients are evicted
	ShutdownTimeout time.Duration // Grace period for in-flight requests on shutdown

	// Flags to track if values were explicitly set by user
	apiAddrExplicitlySet bool
	logFileExplicitlySet bool
}

// Global configuration instance
var Global Config

// SetExplicitlySet marks a configuration field as explicitly set by the user
// on the command line or through the environment.
func (c *Config) SetExplicitlySet(field ConfigField, value bool) {
	switch field {
	case APIAddrField:
		c.apiAddrExplicitlySet = value
	case LogFileField:
		c.logFileExplicitlySet = value
	}
}

// IsExplicitlySet returns whether a configuration field was explicitly set.
func (c *Config) IsExplicitlySet(field ConfigField) bool {
	switch field {
	case APIAddrField:
		return c.apiAddrExplicitlySet
	case LogFileField:
		return c.logFileExplicitlySet
	}
	return false
}
