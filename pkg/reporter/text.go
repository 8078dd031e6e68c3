package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/phpsniff/internal/ui/pretty"
	"github.com/yaklabco/phpsniff/pkg/analysis"
	"github.com/yaklabco/phpsniff/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer flush(r.bw, &err)

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		if r.opts.Compact && total > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := analysis.RelativePath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if file.Result == nil || file.Result.FileResult == nil {
		return 0
	}
	diagnostics := file.Result.Diagnostics
	if len(diagnostics) == 0 {
		return 0
	}

	if r.opts.Compact {
		for _, diag := range diagnostics {
			diag.FilePath = path
			fmt.Fprint(r.bw, r.styles.FormatCompact(&diag, r.opts.RuleFormat))
		}
		return len(diagnostics)
	}

	var lines [][]byte
	if r.opts.ShowContext {
		lines = bytes.Split(file.Result.Content, []byte("\n"))
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diagnostics)))
	for _, diag := range diagnostics {
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, r.opts.RuleFormat, lineAt(lines, diag.Line)))
	}
	fmt.Fprintln(r.bw)

	return len(diagnostics)
}

// lineAt returns the 1-based line from lines, or "" when out of range.
func lineAt(lines [][]byte, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return string(lines[line-1])
}
