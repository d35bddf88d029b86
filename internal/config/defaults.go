// Package config provides common default configuration values shared across
// the contact service components (HTTP API, rate limiter janitor, CLI). This
// centralizes configuration management and keeps the daemon and CLI in sync.
package config

import "time"

const (
	// DefaultBindAddr is the default bind address for the HTTP API.
	// Using 0.0.0.0 allows binding to all available network interfaces
	// TODO: Add support for IPv6 bind addresses (::)
	DefaultBindAddr = "0.0.0.0"

	// DefaultAPIPort is the default port for the HTTP API server
	DefaultAPIPort = 3000

	// DefaultLogLevel is the default log level for all components
	// INFO provides good balance of visibility without verbose debug output
	DefaultLogLevel = "INFO"

	// DefaultSweepInterval is how often idle rate limit entries are evicted
	DefaultSweepInterval = 2 * time.Minute

	// DefaultShutdownTimeout bounds graceful HTTP shutdown
	DefaultShutdownTimeout = 10 * time.Second
)
