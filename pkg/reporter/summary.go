package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/phpsniff/internal/ui/pretty"
	"github.com/yaklabco/phpsniff/pkg/analysis"
)

// SummaryRenderer prints per-code and per-file tables followed by totals,
// without individual diagnostics.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer flush(bw, &err)

	for _, fileErr := range report.Errors {
		fmt.Fprintf(bw, "%s: %s\n",
			r.styles.FilePath.Render(fileErr.FilePath),
			r.styles.Error.Render("error: "+fileErr.Message),
		)
	}

	if report.Totals.Issues > 0 {
		counts := make(map[string]int, len(report.ByCode))
		for _, code := range report.ByCode {
			counts[code.Source] = code.Issues
		}
		fmt.Fprintln(bw, r.styles.Bold.Render("Codes"))
		fmt.Fprint(bw, r.styles.FormatCodeTable(counts))
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, r.styles.Bold.Render("Files"))
		fmt.Fprint(bw, r.styles.FormatFileTable(report.ByFile))
	}

	fmt.Fprint(bw, r.styles.FormatSummary(report.Totals))
	return nil
}
