package export

import (
	"fmt"
	"strings"
	"time"
)

// Report renders a run summary as a human-readable report, one line per
// configured database. The rendering is deterministic for a given summary.
func Report(summary *RunSummary) string {
	var sb strings.Builder

	sb.WriteString("Backup Summary\n")
	sb.WriteString(fmt.Sprintf("Run ID: %s\n", summary.RunID))
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	for _, r := range summary.Results {
		if r.Succeeded() {
			line := fmt.Sprintf("  ✓ %s: %d records in %s", r.Database, r.RecordCount, formatElapsed(r.Elapsed))
			if r.OutputPath != "" {
				line += fmt.Sprintf(" -> %s", r.OutputPath)
			}
			sb.WriteString(line + "\n")
		} else {
			sb.WriteString(fmt.Sprintf("  ✗ %s: failed after %s: %v\n",
				r.Database, formatElapsed(r.Elapsed), r.Err))
		}
	}

	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Databases: %d succeeded, %d failed\n",
		len(summary.Results)-summary.FailureCount(), summary.FailureCount()))
	sb.WriteString(fmt.Sprintf("Records exported: %d\n", summary.TotalRecords()))

	return sb.String()
}

// formatElapsed renders a duration at millisecond precision, keeping
// report lines stable and readable.
func formatElapsed(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
