// Package utils provides utility functions for the contactctl CLI.
// This file contains logging setup and Resty logger integration utilities.
package utils

import (
	"os"

	"github.com/aeternum/contact/cmd/contactctl/config"
	"github.com/aeternum/contact/internal/logging"
)

// RestyLogger implements resty.Logger and routes logs through structured logging
type RestyLogger struct{}

// Errorf routes error messages through structured logging.
func (RestyLogger) Errorf(format string, v ...any) {
	logging.Error(format, v...)
}

// Warnf routes warning messages through structured logging.
func (RestyLogger) Warnf(format string, v ...any) {
	logging.Warn(format, v...)
}

// Debugf routes debug messages through structured logging.
func (RestyLogger) Debugf(format string, v ...any) {
	logging.Debug(format, v...)
}

// SetupLogging configures CLI logging. DEBUG=true or --verbose keeps log
// output visible; otherwise only the command's own output is shown.
func SetupLogging() {
	switch {
	case os.Getenv("DEBUG") == "true":
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
	case config.Global.Verbose:
		logging.RestoreOutput()
		logging.SetLevel(config.Global.LogLevel)
	default:
		logging.SetLevel(config.Global.LogLevel)
		logging.SuppressOutput()
	}
}
