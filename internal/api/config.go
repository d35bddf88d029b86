// Package api provides the HTTP API server for the contact service.
//
// This file defines the server configuration. The configuration carries the
// network binding parameters and the collaborators the handlers depend on:
// the rate limit store, its decision counters and the submission notifier.
// Passing them in rather than creating them here keeps the limiter owned by
// the daemon, which also runs its janitor.
package api

import (
	"fmt"

	"github.com/aeternum/contact/internal/config"
	"github.com/aeternum/contact/internal/contact"
	"github.com/aeternum/contact/internal/ratelimit"
	"github.com/aeternum/contact/internal/validate"
	"github.com/aeternum/contact/internal/version"
)

// Config holds all configuration parameters required for running the HTTP
// API server.
//
// TODO: Add support for configurable timeouts (read, write, idle)
type Config struct {
	BindAddr string // HTTP server bind address (e.g., "0.0.0.0")
	BindPort int    // HTTP server bind port
	Version  string // Reported by the health endpoint

	Limiter  ratelimit.Store  // Rate limit store shared by all requests
	Stats    *ratelimit.Stats // Decision counters for the health endpoint
	Notifier contact.Notifier // Told about accepted submissions
}

// DefaultConfig creates a Config with default binding and an in-memory
// sliding window limiter using the fixed window and limit.
func DefaultConfig() *Config {
	return &Config{
		BindAddr: config.DefaultBindAddr,
		BindPort: config.DefaultAPIPort,
		Version:  version.ContactdVersion,
		Limiter:  ratelimit.NewDefault(),
		Stats:    &ratelimit.Stats{},
		Notifier: contact.LogNotifier{},
	}
}

// Validate checks that the server can start with this configuration.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.BindAddr, "bind address"); err != nil {
		return err
	}
	if err := validate.ValidateField(c.BindAddr, "ip"); err != nil {
		return fmt.Errorf("bind address must be an IP address: %s", c.BindAddr)
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("bind port validation failed: %w", err)
	}
	if c.Limiter == nil {
		return fmt.Errorf("rate limiter cannot be nil")
	}
	if c.Notifier == nil {
		return fmt.Errorf("notifier cannot be nil")
	}

	return nil
}
