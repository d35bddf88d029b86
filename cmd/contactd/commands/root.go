// Package commands provides the CLI command structure for the contact daemon.
//
// The daemon has a single root command. Flags are merged with CONTACTD_*
// environment variables through viper, validated, and then the daemon runs
// until SIGINT or SIGTERM.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aeternum/contact/cmd/contactd/config"
	"github.com/aeternum/contact/cmd/contactd/daemon"
	"github.com/aeternum/contact/cmd/contactd/utils"
	"github.com/aeternum/contact/internal/logging"
	"github.com/aeternum/contact/internal/version"
	"github.com/spf13/cobra"
)

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// settings merges flags and environment for the root command
var settings = config.NewViper()

// CleanupLogFile closes the log file handle if it exists
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// The log file is going away, so report on stderr directly
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// Root command for the contact daemon
var RootCmd = &cobra.Command{
	Use:   "contactd",
	Short: "Contact form submission service for the agency site",
	Long: `Contact daemon (contactd) accepts contact form submissions over HTTP.

Each client may submit at most 5 requests in any trailing 60 second window.
Submissions are validated and acknowledged with an id and timestamp.

Every flag can also be set through a CONTACTD_* environment variable.`,
	Version:      version.ContactdVersion,
	SilenceUsage: true, // Don't show usage on errors
	Example: `  # Start with defaults (listens on 0.0.0.0:3000)
  contactd

  # Listen on loopback only with debug logging
  contactd --api=127.0.0.1:8080 --log-level=DEBUG

  # Configure through the environment
  CONTACTD_API=0.0.0.0:8080 CONTACTD_LOG_FILE=/var/log/contactd.log contactd`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Display logo first, before any validation or logging
		utils.DisplayLogo(version.ContactdVersion)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		CheckExplicitFlags(cmd)

		// Merge flags, environment and defaults
		config.InitializeConfig(settings)

		if err := setupLogFile(); err != nil {
			return err
		}

		logging.SetLevel(config.Global.LogLevel)

		// Validate configuration and ensure log file cleanup on validation failure
		if err := config.ValidateConfig(); err != nil {
			CleanupLogFile()
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Ensure log file cleanup on exit
		defer CleanupLogFile()
		return daemon.Run()
	},
}

// setupLogFile redirects logging to --log-file when one was given
func setupLogFile() error {
	if !config.Global.IsExplicitlySet(config.LogFileField) || config.Global.LogFile == "" {
		return nil
	}

	logDir := filepath.Dir(config.Global.LogFile)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	var err error
	logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
	}

	logging.SetOutput(logFileHandle)
	return nil
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	if err := SetupFlags(RootCmd, settings); err != nil {
		// Binding only fails on a nil flag set
		panic(fmt.Sprintf("failed to bind flags: %v", err))
	}
}

