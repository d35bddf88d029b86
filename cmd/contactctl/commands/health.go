package commands

import "github.com/spf13/cobra"

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show daemon health and rate limiter counters",
	Args:  cobra.NoArgs,
}

// GetHealthCommand returns the health command for handler assignment
func GetHealthCommand() *cobra.Command {
	return healthCmd
}
