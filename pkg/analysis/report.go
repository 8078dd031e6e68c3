package analysis

import (
	"time"

	"github.com/yaklabco/phpsniff/pkg/config"
)

// Report contains pre-computed views of lint results.
// Computed once by Analyze, shared by all renderers.
type Report struct {
	// Diagnostics is the flat list in file, line, column order.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// Errors lists files that could not be linted.
	Errors []FileError `json:"errors,omitempty"`

	// ByFile groups diagnostics by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByCode groups diagnostics by qualified code, e.g. "BH001.NoSpaceAfterComma".
	ByCode []CodeAnalysis `json:"byCode,omitempty"`

	Totals Totals `json:"summary"`

	Version string `json:"version"`

	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry is a diagnostic with its display path and qualified code.
type DiagnosticEntry struct {
	FilePath  string `json:"filePath"`
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

// FileError records a file that could not be read or tokenized.
type FileError struct {
	FilePath string `json:"filePath"`
	Message  string `json:"message"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	FilesCached     int `json:"filesCached"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Suppressed      int `json:"suppressed"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any error-severity issues.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// Counts tallies issues by severity.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (c *Counts) add(severity config.Severity) {
	c.Issues++
	switch severity {
	case config.SeverityWarning:
		c.Warnings++
	case config.SeverityInfo:
		c.Infos++
	default:
		c.Errors++
	}
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path string `json:"path"`
	Counts
	Codes []string `json:"codes,omitempty"`
}

// CodeAnalysis contains aggregated data for a single diagnostic code.
type CodeAnalysis struct {
	Source   string `json:"source"`
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Code     string `json:"code"`
	Counts
	Files []string `json:"files,omitempty"`
}
