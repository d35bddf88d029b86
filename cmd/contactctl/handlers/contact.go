// Package handlers provides command handler functions for contactctl.
//
// Handlers set up logging, build an API client from the global flags, call
// contactd and hand the result to the display package.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aeternum/contact/cmd/contactctl/client"
	"github.com/aeternum/contact/cmd/contactctl/config"
	"github.com/aeternum/contact/cmd/contactctl/display"
	"github.com/aeternum/contact/cmd/contactctl/utils"
	"github.com/aeternum/contact/internal/contact"
	"github.com/aeternum/contact/internal/logging"
	"github.com/aeternum/contact/internal/netutil"
	"github.com/spf13/cobra"
)

// buildSubmission assembles the submission from the submit flags
func buildSubmission() contact.Submission {
	return contact.Submission{
		Name:        config.Submit.Name,
		Email:       config.Submit.Email,
		Company:     config.Submit.Company,
		ProjectType: contact.ProjectType(config.Submit.ProjectType),
		Budget:      contact.Budget(config.Submit.Budget),
		Message:     config.Submit.Message,
	}
}

// HandleSubmit handles the submit command. With --dry-run the submission is
// only checked locally with the same rules contactd applies.
func HandleSubmit(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	sub := buildSubmission()

	if config.Submit.DryRun {
		return dryRun(sub)
	}

	logging.Info("Submitting contact request to API server: %s", config.Global.APIAddr)

	apiClient := client.CreateAPIClient()
	result, err := apiClient.SubmitContact(sub, config.Submit.ForwardFor)
	if err != nil {
		hintUnreachable(err)
		var verr *client.ValidationError
		if errors.As(err, &verr) {
			display.DisplayFieldErrors(verr.Message, verr.Details)
		}
		return err
	}

	display.DisplaySubmission(result)
	logging.Success("Submission %s accepted", result.Data.ID)
	return nil
}

// dryRun validates the submission locally. The flags are encoded the same
// way the API client would send them.
func dryRun(sub contact.Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	if _, err := contact.Validate(body); err != nil {
		var fieldErrs contact.FieldErrors
		if errors.As(err, &fieldErrs) {
			display.DisplayFieldErrors("Validation failed", fieldErrs)
		}
		return fmt.Errorf("submission is invalid: %w", err)
	}

	fmt.Fprintln(display.Output, "Submission is valid (dry run, nothing sent)")
	return nil
}

// HandleHealth handles the health command.
func HandleHealth(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	logging.Info("Fetching health from API server: %s", config.Global.APIAddr)

	apiClient := client.CreateAPIClient()
	health, err := apiClient.GetHealth()
	if err != nil {
		hintUnreachable(err)
		return err
	}

	display.DisplayHealth(health)
	return nil
}

// hintUnreachable points at a stopped daemon when the connection was refused
func hintUnreachable(err error) {
	if netutil.IsConnectionRefusedError(err) {
		logging.Error("TIP: Check that contactd is running at %s", config.Global.APIAddr)
	}
}
