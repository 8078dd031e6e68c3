package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/phpsniff/pkg/analysis"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version     string                  `json:"version"`
	ToolVersion string                  `json:"toolVersion"`
	Files       []JSONFileResult        `json:"files"`
	ByCode      []analysis.CodeAnalysis `json:"byCode"`
	Summary     analysis.Totals         `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	RuleID    string `json:"ruleId"`
	RuleName  string `json:"ruleName"`
	Code      string `json:"code"`
	Source    string `json:"source"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
}

// JSONRenderer writes an analysis.Report as a JSON document.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer flush(bw, &err)

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r.buildOutput(report)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONRenderer) buildOutput(report *analysis.Report) *JSONOutput {
	output := &JSONOutput{
		Version:     report.Version,
		ToolVersion: r.opts.ToolVersion,
		Files:       make([]JSONFileResult, 0, len(report.ByFile)+len(report.Errors)),
		ByCode:      report.ByCode,
		Summary:     report.Totals,
	}
	if output.ByCode == nil {
		output.ByCode = []analysis.CodeAnalysis{}
	}

	for _, fileErr := range report.Errors {
		output.Files = append(output.Files, JSONFileResult{
			Path:        fileErr.FilePath,
			Diagnostics: []JSONDiagnostic{},
			Error:       fileErr.Message,
		})
	}

	// Diagnostics arrive grouped by file in path order.
	for _, diag := range report.Diagnostics {
		last := len(output.Files) - 1
		if last < 0 || output.Files[last].Path != diag.FilePath || output.Files[last].Error != "" {
			output.Files = append(output.Files, JSONFileResult{Path: diag.FilePath})
			last++
		}
		output.Files[last].Diagnostics = append(output.Files[last].Diagnostics, JSONDiagnostic{
			RuleID:    diag.RuleID,
			RuleName:  diag.RuleName,
			Code:      diag.Code,
			Source:    diag.Source,
			Severity:  diag.Severity,
			Message:   diag.Message,
			Line:      diag.Line,
			Column:    diag.Column,
			EndLine:   diag.EndLine,
			EndColumn: diag.EndColumn,
		})
	}

	return output
}
