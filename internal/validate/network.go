// Package validate provides configuration validation for the contact service
// binaries, built on the go-playground/validator library.
//
// VALIDATION FEATURES:
//   - IP Address: IPv4 and IPv6 format validation for bind and target addresses
//   - Port Range: Valid port numbers (1-65535)
//   - Format: Proper "host:port" address formatting
//
// Request payload validation lives with the contact domain; this package only
// guards operator supplied flags and environment values.
package validate

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New()
}

// NetworkAddress represents a validated "host:port" pair used for the API
// bind address and for the CLI's target address.
type NetworkAddress struct {
	Host string `validate:"required,ip"`
	Port int    `validate:"required,min=0,max=65535"`
}

// String returns the network address in standard "host:port" format.
func (na NetworkAddress) String() string {
	return net.JoinHostPort(na.Host, strconv.Itoa(na.Port))
}

// ParseBindAddress parses and validates a "host:port" address string.
// The host must be a literal IP address; hostnames are rejected so the daemon
// never depends on resolver state at startup.
func ParseBindAddress(addr string) (*NetworkAddress, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	netAddr := &NetworkAddress{
		Host: host,
		Port: port,
	}

	if err := validate.Struct(netAddr); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return netAddr, nil
}

// ValidateField validates a single value against validator tags.
//
// Example: ValidateField("192.168.1.1", "required,ip")
func ValidateField(value any, tag string) error {
	return validate.Var(value, tag)
}
