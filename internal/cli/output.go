package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

// printReport writes what the presenter does not: the whole report for json,
// and the check list for pretty strict runs.
func printReport(w io.Writer, report domain.Report, format string, strict bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "pretty", "":
		if strict {
			printChecks(w, report)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printChecks(w io.Writer, report domain.Report) {
	fmt.Fprintf(w, "\nVerdict: %s\n", report.Verdict)
	for _, c := range report.Checks {
		mark := "✓"
		if !c.Passed {
			mark = "✗"
		}
		fmt.Fprintf(w, "  %s %s: %s\n", mark, c.Name, c.Message)
	}
}
