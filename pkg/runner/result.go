package runner

import (
	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

// FileOutcome is the result of linting one discovered file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil when Error is set.
	Result *lint.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesCached     int
	FilesWithIssues int

	// FilesRuleErrors counts files where at least one rule panicked.
	FilesRuleErrors int

	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity names to counts.
	DiagnosticsBySeverity map[string]int

	// DiagnosticsByCode maps "<rule id>.<code>" to counts.
	DiagnosticsByCode map[string]int

	// Suppressed counts diagnostics silenced by phpcs: comments.
	Suppressed int
}

// Result is the overall runner result.
type Result struct {
	// Files is ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any error-severity diagnostics occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasWarnings reports whether any warning-severity diagnostics occurred.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityWarning)] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Diagnostics returns every diagnostic of the run in file order.
func (r *Result) Diagnostics() []lint.Diagnostic {
	if r == nil {
		return nil
	}
	var all []lint.Diagnostic
	for _, outcome := range r.Files {
		if outcome.Result != nil && outcome.Result.FileResult != nil {
			all = append(all, outcome.Result.Diagnostics...)
		}
	}
	return all
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
		DiagnosticsByCode:     make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil || outcome.Result.FileResult == nil {
		return
	}

	res := outcome.Result
	r.Stats.FilesProcessed++
	if res.Cached {
		r.Stats.FilesCached++
	}
	if len(res.RuleErrors) > 0 {
		r.Stats.FilesRuleErrors++
	}
	r.Stats.Suppressed += res.Suppressed

	if len(res.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += len(res.Diagnostics)

	for _, diag := range res.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = string(config.SeverityError)
		}
		r.Stats.DiagnosticsBySeverity[severity]++
		r.Stats.DiagnosticsByCode[diag.QualifiedCode(config.RuleFormatID)]++
	}
}
