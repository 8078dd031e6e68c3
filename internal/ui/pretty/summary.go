package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/phpsniff/pkg/analysis"
	"github.com/yaklabco/phpsniff/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line, e.g.
// "12 issues (8 errors, 4 warnings) in 3 files (10 checked, 7 cached)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := fmt.Sprintf("%d %s checked", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))
	if stats.FilesCached > 0 {
		checked += fmt.Sprintf(", %d cached", stats.FilesCached)
	}

	var tail string
	if stats.FilesErrored > 0 {
		tail = ", " + s.Failure.Render(fmt.Sprintf("%d %s could not be linted",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files")))
	}

	if stats.DiagnosticsTotal == 0 {
		return s.Success.Render("No issues found") + s.Dim.Render(" ("+checked+")") + tail + "\n"
	}

	var severityParts []string
	if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}
	if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	line := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}
	line += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files"))

	return line + s.Dim.Render(" ("+checked+")") + tail + "\n"
}

// FormatSummary formats report totals as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals) string {
	var builder strings.Builder

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label, value)
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked:", s.SummaryValue.Render(strconv.Itoa(totals.Files-totals.FilesErrored)))
	if totals.FilesCached > 0 {
		row("Files from cache:", s.SummaryValue.Render(strconv.Itoa(totals.FilesCached)))
	}
	if totals.FilesWithIssues > 0 {
		row("Files with issues:", s.Failure.Render(strconv.Itoa(totals.FilesWithIssues)))
	}
	if totals.FilesErrored > 0 {
		row("Files not linted:", s.Failure.Render(strconv.Itoa(totals.FilesErrored)))
	}
	if totals.Suppressed > 0 {
		row("Suppressed:", s.Dim.Render(strconv.Itoa(totals.Suppressed)))
	}

	builder.WriteString("\n")
	row("Total issues:", s.SummaryValue.Render(strconv.Itoa(totals.Issues)))
	if totals.Errors > 0 {
		row("  Errors:", s.Error.Render(strconv.Itoa(totals.Errors)))
	}
	if totals.Warnings > 0 {
		row("  Warnings:", s.Warning.Render(strconv.Itoa(totals.Warnings)))
	}
	if totals.Infos > 0 {
		row("  Info:", s.Info.Render(strconv.Itoa(totals.Infos)))
	}
	builder.WriteString("\n")

	switch {
	case totals.Errors > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case totals.Warnings > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
