// Package config provides configuration management for the contactctl CLI.
package config

import (
	"net"
	"strconv"

	configDefaults "github.com/aeternum/contact/internal/config"
	"github.com/aeternum/contact/internal/version"
)

// DefaultAPIAddr is the default contactd address (routable loopback)
var DefaultAPIAddr = net.JoinHostPort("127.0.0.1", strconv.Itoa(configDefaults.DefaultAPIPort))

// Version returns the current contactctl CLI version from the centralized version package
var Version = version.ContactctlVersion

// Global holds the global CLI configuration
var Global struct {
	APIAddr  string // Address of contactd to connect to
	LogLevel string // Log level for CLI operations
	Timeout  int    // Connection timeout in seconds
	Verbose  bool   // Show verbose output
	Output   string // Output format: table, json
}

// Submit holds the submit command configuration
var Submit struct {
	Name        string
	Email       string
	Company     string
	ProjectType string
	Budget      string
	Message     string
	ForwardFor  string // Sent as X-Forwarded-For to act as a given client
	DryRun      bool   // Validate locally without sending
}
