package commands

import (
	"strings"

	"github.com/aeternum/contact/internal/contact"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send a contact form submission",
	Long: `Send a contact form submission to contactd.

The daemon validates the submission and answers with field errors, a rate
limit rejection, or the accepted submission with its id.`,
	Args: cobra.NoArgs,
}

// GetSubmitCommand returns the submit command for handler assignment
func GetSubmitCommand() *cobra.Command {
	return submitCmd
}

// SetupSubmitFlags configures the submit command flags
func SetupSubmitFlags(cmd *cobra.Command, name, email, company, projectType, budget, message, forwardFor *string, dryRun *bool) {
	projectTypes := make([]string, len(contact.ProjectTypes))
	for i, p := range contact.ProjectTypes {
		projectTypes[i] = string(p)
	}
	budgets := make([]string, len(contact.Budgets))
	for i, b := range contact.Budgets {
		budgets[i] = string(b)
	}

	cmd.Flags().StringVar(name, "name", "", "Contact name (at least 2 characters)")
	cmd.Flags().StringVar(email, "email", "", "Contact email address")
	cmd.Flags().StringVar(company, "company", "", "Company name (optional)")
	cmd.Flags().StringVar(projectType, "project-type", "",
		"Project type: "+strings.Join(projectTypes, ", "))
	cmd.Flags().StringVar(budget, "budget", "",
		"Budget range (optional): "+strings.Join(budgets, ", "))
	cmd.Flags().StringVar(message, "message", "", "Message (at least 10 characters)")
	cmd.Flags().StringVar(forwardFor, "as-client", "",
		"Send as this client address (X-Forwarded-For) to exercise rate limiting")
	cmd.Flags().BoolVar(dryRun, "dry-run", false, "Validate locally without sending")
}
