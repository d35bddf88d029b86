// Package logging provides centralized log level validation for the contact service.
//
// This file defines the canonical set of valid log levels used by the daemon
// flags, environment overrides, and the CLI. All log level strings are
// case-sensitive and must be uppercase.
package logging

import "fmt"

// ValidLogLevels defines the canonical set of supported log levels.
var ValidLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// IsValidLogLevel checks if the provided log level string is supported.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[level]
}

// ValidateLogLevel validates a log level string and returns an error if invalid.
func ValidateLogLevel(level string) error {
	if !IsValidLogLevel(level) {
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}
