// Package commands provides the command tree for contactctl.
//
// COMMAND STRUCTURE:
//   - submit: send a contact submission (or validate it locally with --dry-run)
//   - health: show daemon health and rate limiter counters
package commands

import (
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "contactctl",
	Short: "CLI tool for the contact form submission service",
	Long: `Contact CLI (contactctl) talks to a running contactd.

Use it to send test submissions through the same path the site uses and to
check the daemon's health and rate limiter activity.`,
	SilenceUsage: true,
	Example: `  # Check daemon health
  contactctl health

  # Send a submission
  contactctl submit --name="Ada Lovelace" --email=ada@example.com \
    --project-type=web --message="We need a new marketing site."

  # Validate locally without sending
  contactctl submit --dry-run --name=J --email=bad --project-type=web --message=hi

  # Connect to a remote daemon with JSON output
  contactctl --api=192.168.1.100:3000 -o json health`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(submitCmd)
	RootCmd.AddCommand(healthCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, apiAddrPtr *string, logLevelPtr *string,
	timeoutPtr *int, verbosePtr *bool, outputPtr *string, defaultAPIAddr string) {
	rootCmd.PersistentFlags().StringVar(apiAddrPtr, "api", defaultAPIAddr,
		"contactd API address")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", 8,
		"Connection timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
}
