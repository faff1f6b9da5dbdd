package doctor

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes diagnostic reports.
type Reporter struct {
	out     io.Writer
	format  Format
	verbose bool
}

// NewReporter creates a new Reporter. With verbose set, pass and info
// findings are printed too.
func NewReporter(out io.Writer, format Format, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		format:  format,
		verbose: verbose,
	}
}

// Report writes the report to the output.
func (r *Reporter) Report(report *Report) error {
	if report == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		encoder := json.NewEncoder(r.out)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(report), "encoding JSON report")
	default:
		r.reportText(report)
		return nil
	}
}

func (r *Reporter) reportText(report *Report) {
	if r.verbose {
		for _, f := range report.Findings {
			if f.Severity < SeverityWarning {
				r.printFinding(f)
			}
		}
	}

	if !report.HasErrors() && !report.HasWarnings() {
		fmt.Fprintln(r.out, color.GreenString("✓ No problems found"))
		return
	}

	var summary []string
	if n := report.Summary.Errors; n > 0 {
		summary = append(summary, color.RedString("%d error(s)", n))
	}
	if n := report.Summary.Warnings; n > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", n))
	}
	fmt.Fprintf(r.out, "Problems found: %s\n\n", strings.Join(summary, ", "))

	for _, f := range report.Problems() {
		r.printFinding(f)
	}
}

// printFinding writes one line:
//
//	✗ [app] check subject: message
//	    hint
func (r *Reporter) printFinding(f Finding) {
	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(severitySymbol(f.Severity))
	sb.WriteString(" ")
	if f.App != "" {
		sb.WriteString(color.New(color.FgCyan).Sprintf("[%s] ", f.App))
	}
	sb.WriteString(f.Check)
	if f.Subject != "" {
		sb.WriteString(" ")
		sb.WriteString(f.Subject)
	}
	sb.WriteString(": ")
	sb.WriteString(f.Message)
	fmt.Fprintln(r.out, sb.String())

	if f.FixHint != "" {
		fmt.Fprintf(r.out, "      %s\n", color.New(color.FgHiBlack).Sprint(f.FixHint))
	}
}

func severitySymbol(s Severity) string {
	switch s {
	case SeverityError:
		return color.RedString("✗")
	case SeverityWarning:
		return color.YellowString("!")
	case SeverityInfo:
		return color.BlueString("i")
	default:
		return color.GreenString("✓")
	}
}
