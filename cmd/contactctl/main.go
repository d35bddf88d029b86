// Package main provides the entry point for the contact CLI tool (contactctl).
package main

import (
	"os"

	"github.com/aeternum/contact/cmd/contactctl/commands"
	"github.com/aeternum/contact/cmd/contactctl/config"
	"github.com/aeternum/contact/cmd/contactctl/handlers"
)

func init() {
	rootCmd := commands.RootCmd

	// Set version and validation
	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	commands.SetupCommands()

	commands.SetupGlobalFlags(rootCmd, &config.Global.APIAddr, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.Verbose, &config.Global.Output, config.DefaultAPIAddr)

	commands.SetupSubmitFlags(commands.GetSubmitCommand(),
		&config.Submit.Name, &config.Submit.Email, &config.Submit.Company,
		&config.Submit.ProjectType, &config.Submit.Budget, &config.Submit.Message,
		&config.Submit.ForwardFor, &config.Submit.DryRun)

	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	commands.GetSubmitCommand().RunE = handlers.HandleSubmit
	commands.GetHealthCommand().RunE = handlers.HandleHealth
}

// main is the main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
