// Package main implements the contact service daemon (contactd).
// contactd accepts contact form submissions from the agency site, throttles
// them per client and validates them before they are handed on.
package main

import (
	"os"

	"github.com/aeternum/contact/cmd/contactd/commands"
)

// Main entry point
func main() {
	commands.SetupCommands()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
