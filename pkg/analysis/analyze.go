// Package analysis aggregates runner results into per-file and per-code
// views for reporters.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
	"github.com/yaklabco/phpsniff/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// RelativePath converts path to be relative to workDir when possible.
func RelativePath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

type analysisContext struct {
	files     map[string]*FileAnalysis
	codes     map[string]*CodeAnalysis
	fileCodes map[string]map[string]bool
	codeFiles map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		files:     make(map[string]*FileAnalysis),
		codes:     make(map[string]*CodeAnalysis),
		fileCodes: make(map[string]map[string]bool),
		codeFiles: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	fa, ok := ctx.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		ctx.files[path] = fa
		ctx.fileCodes[path] = make(map[string]bool)
	}
	return fa
}

func (ctx *analysisContext) code(source string, diag *lint.Diagnostic) *CodeAnalysis {
	ca, ok := ctx.codes[source]
	if !ok {
		ca = &CodeAnalysis{Source: source, RuleID: diag.RuleID, RuleName: diag.RuleName, Code: diag.Code}
		ctx.codes[source] = ca
		ctx.codeFiles[source] = make(map[string]bool)
	}
	return ca
}

// Analyze transforms a runner.Result into a Report in one pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := RelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Errors = append(report.Errors, FileError{FilePath: displayPath, Message: file.Error.Error()})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		if file.Result.Cached {
			report.Totals.FilesCached++
		}
		report.Totals.Suppressed += file.Result.Suppressed
		if len(file.Result.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
		}

		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			severity := diag.Severity
			if severity == "" {
				severity = config.SeverityError
			}
			source := diag.QualifiedCode(opts.RuleFormat)

			report.Totals.Issues++
			switch severity {
			case config.SeverityWarning:
				report.Totals.Warnings++
			case config.SeverityInfo:
				report.Totals.Infos++
			default:
				report.Totals.Errors++
			}

			ctx.file(displayPath).add(severity)
			ctx.fileCodes[displayPath][source] = true
			ctx.code(source, diag).add(severity)
			ctx.codeFiles[source][displayPath] = true

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
					FilePath:  displayPath,
					RuleID:    diag.RuleID,
					RuleName:  diag.RuleName,
					Code:      diag.Code,
					Source:    source,
					Severity:  string(severity),
					Message:   diag.Message,
					Line:      diag.Line,
					Column:    diag.Column,
					EndLine:   diag.EndLine,
					EndColumn: diag.EndColumn,
				})
			}
		}
	}

	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}
	if opts.IncludeByCode {
		report.ByCode = ctx.buildByCode(opts)
	}

	return report
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	result := make([]FileAnalysis, 0, len(ctx.files))
	for path, fa := range ctx.files {
		fa.Codes = sortedKeys(ctx.fileCodes[path])
		result = append(result, *fa)
	}
	slices.SortFunc(result, func(a, b FileAnalysis) int {
		return compareBy(opts, a.Path, b.Path, a.Issues, b.Issues, a.Errors, b.Errors, a.Warnings, b.Warnings)
	})
	return result
}

func (ctx *analysisContext) buildByCode(opts Options) []CodeAnalysis {
	result := make([]CodeAnalysis, 0, len(ctx.codes))
	for source, ca := range ctx.codes {
		ca.Files = sortedKeys(ctx.codeFiles[source])
		result = append(result, *ca)
	}
	slices.SortFunc(result, func(a, b CodeAnalysis) int {
		return compareBy(opts, a.Source, b.Source, a.Issues, b.Issues, a.Errors, b.Errors, a.Warnings, b.Warnings)
	})
	return result
}

// compareBy orders two aggregates; names break every tie so output is stable.
func compareBy(opts Options, nameA, nameB string, issuesA, issuesB, errorsA, errorsB, warnA, warnB int) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(errorsB, errorsA),
			cmp.Compare(warnB, warnA),
			cmp.Compare(issuesB, issuesA),
		)
	default:
		result = cmp.Compare(issuesA, issuesB)
		if opts.SortDesc {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(nameA, nameB))
}
