// Package display provides output formatting for contactctl.
//
// Every function honors the global --output flag: "table" writes aligned
// text through text/tabwriter, "json" writes indented JSON.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/aeternum/contact/cmd/contactctl/client"
	"github.com/aeternum/contact/cmd/contactctl/config"
	"github.com/aeternum/contact/internal/contact"
	"github.com/aeternum/contact/internal/logging"
	"github.com/dustin/go-humanize"
)

// Output is where display functions write. Tests replace it.
var Output io.Writer = os.Stdout

func writeJSON(v any) {
	encoder := json.NewEncoder(Output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Fprintln(Output, "Error encoding JSON output")
	}
}

// DisplaySubmission shows an accepted submission.
func DisplaySubmission(result *client.SubmissionResult) {
	if config.Global.Output == "json" {
		writeJSON(result)
		return
	}

	d := result.Data
	w := tabwriter.NewWriter(Output, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, result.Message)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "ID:\t%s\n", d.ID)
	fmt.Fprintf(w, "Submitted:\t%s\n", d.SubmittedAt)
	fmt.Fprintf(w, "Name:\t%s\n", d.Name)
	fmt.Fprintf(w, "Email:\t%s\n", d.Email)
	if d.Company != "" {
		fmt.Fprintf(w, "Company:\t%s\n", d.Company)
	}
	fmt.Fprintf(w, "Project:\t%s\n", d.ProjectType.Label())
	fmt.Fprintf(w, "Budget:\t%s\n", d.Budget.Label())
	if config.Global.Verbose {
		fmt.Fprintf(w, "Message:\t%s\n", d.Message)
	}
}

// DisplayFieldErrors shows the per-field validation failures.
func DisplayFieldErrors(message string, details []contact.FieldError) {
	if config.Global.Output == "json" {
		writeJSON(map[string]any{
			"success": false,
			"error":   message,
			"details": details,
		})
		return
	}

	fmt.Fprintln(Output, message)
	if len(details) == 0 {
		return
	}

	w := tabwriter.NewWriter(Output, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "FIELD\tMESSAGE")
	for _, fe := range details {
		fmt.Fprintf(w, "%s\t%s\n", fe.Field, fe.Message)
	}
}

// DisplayHealth shows the daemon health report.
func DisplayHealth(health *client.Health) {
	if config.Global.Output == "json" {
		writeJSON(health)
		return
	}

	w := tabwriter.NewWriter(Output, 0, 0, 2, ' ', 0)
	defer w.Flush()

	rl := health.RateLimit
	fmt.Fprintf(w, "Status:\t%s\n", health.Status)
	fmt.Fprintf(w, "Version:\t%s\n", health.Version)
	fmt.Fprintf(w, "Uptime:\t%s\n", health.Uptime)
	fmt.Fprintf(w, "Started:\t%s\n", humanizeStart(health))
	fmt.Fprintf(w, "Admitted:\t%s\n", humanize.Comma(int64(rl.Allowed)))
	fmt.Fprintf(w, "Throttled:\t%s\n", humanize.Comma(int64(rl.Denied)))
	fmt.Fprintf(w, "Tracked clients:\t%s\n", humanize.Comma(int64(rl.TrackedClients)))
	if config.Global.Verbose {
		fmt.Fprintf(w, "Reported at:\t%s\n", health.Timestamp.Format("2006-01-02 15:04:05 MST"))
	}
}

// humanizeStart renders the daemon start as relative time, e.g. "3 hours ago"
func humanizeStart(health *client.Health) string {
	uptime, err := time.ParseDuration(health.Uptime)
	if err != nil {
		return "unknown"
	}
	return humanize.Time(health.Timestamp.Add(-uptime))
}
