package reporter

import (
	"bufio"
	"context"
	"encoding/xml"
	"fmt"

	"github.com/yaklabco/phpsniff/pkg/analysis"
)

// CheckstyleOutput is the root <checkstyle> element, in the layout CI
// servers read from PHP_CodeSniffer's checkstyle report.
type CheckstyleOutput struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []CheckstyleFile `xml:"file"`
}

// CheckstyleFile groups the errors of one file.
type CheckstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []CheckstyleError `xml:"error"`
}

// CheckstyleError is one diagnostic.
type CheckstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

// CheckstyleRenderer writes an analysis.Report as checkstyle XML.
type CheckstyleRenderer struct {
	opts Options
}

// NewCheckstyleRenderer creates a new checkstyle renderer.
func NewCheckstyleRenderer(opts Options) *CheckstyleRenderer {
	return &CheckstyleRenderer{opts: opts}
}

// Render implements Renderer.
func (r *CheckstyleRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer flush(bw, &err)

	if _, err := bw.WriteString(xml.Header); err != nil {
		return fmt.Errorf("write checkstyle: %w", err)
	}

	encoder := xml.NewEncoder(bw)
	encoder.Indent("", " ")
	if err := encoder.Encode(r.buildOutput(report)); err != nil {
		return fmt.Errorf("encode checkstyle: %w", err)
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return fmt.Errorf("write checkstyle: %w", err)
	}
	return nil
}

func (r *CheckstyleRenderer) buildOutput(report *analysis.Report) *CheckstyleOutput {
	output := &CheckstyleOutput{Version: r.opts.ToolVersion}

	for _, diag := range report.Diagnostics {
		last := len(output.Files) - 1
		if last < 0 || output.Files[last].Name != diag.FilePath {
			output.Files = append(output.Files, CheckstyleFile{Name: diag.FilePath})
			last++
		}
		output.Files[last].Errors = append(output.Files[last].Errors, CheckstyleError{
			Line:     diag.Line,
			Column:   diag.Column,
			Severity: diag.Severity,
			Message:  diag.Message,
			Source:   diag.Source,
		})
	}

	for _, fileErr := range report.Errors {
		output.Files = append(output.Files, CheckstyleFile{
			Name: fileErr.FilePath,
			Errors: []CheckstyleError{{
				Severity: "error",
				Message:  fileErr.Message,
				Source:   "phpsniff.FileError",
			}},
		})
	}

	return output
}
