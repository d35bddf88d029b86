// Package commands contains Cobra CLI command definitions for contactd.
package commands

import (
	"github.com/aeternum/contact/cmd/contactd/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SetupFlags configures all command line flags for the daemon and binds them
// to v so CONTACTD_* environment variables can stand in for unset flags.
func SetupFlags(cmd *cobra.Command, v *viper.Viper) error {
	// API flags
	cmd.Flags().String(config.KeyAPI, config.DefaultAPI,
		"Address and port for HTTP API server (e.g., "+config.DefaultAPI+")\n"+
			"Env: CONTACTD_API")

	// Rate limiter flags
	cmd.Flags().Duration(config.KeySweepInterval, config.DefaultSweepInterval,
		"How often idle rate limit clients are evicted from memory\n"+
			"Env: CONTACTD_SWEEP_INTERVAL")

	// Operational flags
	cmd.Flags().Duration(config.KeyShutdownTimeout, config.DefaultShutdownTimeout,
		"Grace period for in-flight requests during shutdown\n"+
			"Env: CONTACTD_SHUTDOWN_TIMEOUT")
	cmd.Flags().String(config.KeyLogLevel, config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR\n"+
			"Env: CONTACTD_LOG_LEVEL (DEBUG=true forces DEBUG)")
	cmd.Flags().String(config.KeyLogFile, "",
		"Write logs to this file instead of stdout (parent directories are created)\n"+
			"Env: CONTACTD_LOG_FILE")

	return v.BindPFlags(cmd.Flags())
}

// CheckExplicitFlags checks if flags were explicitly set by the user
func CheckExplicitFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed(config.KeyAPI) {
		config.Global.SetExplicitlySet(config.APIAddrField, true)
	}
	if cmd.Flags().Changed(config.KeyLogFile) {
		config.Global.SetExplicitlySet(config.LogFileField, true)
	}
}
