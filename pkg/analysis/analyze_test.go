package analysis

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
	"github.com/yaklabco/phpsniff/pkg/runner"
)

const ruleName = "function-call-argument-spacing"

func diag(code string, severity config.Severity, line, col int) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:   "BH001",
		RuleName: ruleName,
		Code:     code,
		Message:  code,
		Severity: severity,
		Line:     line,
		Column:   col,
	}
}

func outcome(path string, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			Path:       path,
			FileResult: &lint.FileResult{Diagnostics: diags},
		},
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			outcome("a.php",
				diag("NoSpaceAfterComma", config.SeverityError, 2, 7),
				diag("NoSpaceAfterComma", config.SeverityError, 3, 7),
				diag("SpaceBeforeComma", config.SeverityWarning, 4, 8),
			),
			outcome("b.php",
				diag("NoSpaceAfterComma", config.SeverityError, 2, 7),
			),
			outcome("clean.php"),
		},
	}
}

func TestAnalyze_NilAndEmpty(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())
	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)

	report = Analyze(&runner.Result{}, DefaultOptions())
	assert.Equal(t, 0, report.Totals.Issues)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByCode)
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	assert.Equal(t, Totals{
		Files:           3,
		FilesWithIssues: 2,
		Issues:          4,
		Errors:          3,
		Warnings:        1,
	}, report.Totals)
	require.Len(t, report.Diagnostics, 4)
	assert.Equal(t, ruleName+".NoSpaceAfterComma", report.Diagnostics[0].Source)
	assert.Equal(t, "error", report.Diagnostics[0].Severity)
}

func TestAnalyze_GroupsByCode(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.RuleFormat = config.RuleFormatID
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.ByCode, 2)
	first := report.ByCode[0]
	assert.Equal(t, "BH001.NoSpaceAfterComma", first.Source)
	assert.Equal(t, "NoSpaceAfterComma", first.Code)
	assert.Equal(t, Counts{Issues: 3, Errors: 3}, first.Counts)
	assert.Equal(t, []string{"a.php", "b.php"}, first.Files)

	second := report.ByCode[1]
	assert.Equal(t, "BH001.SpaceBeforeComma", second.Source)
	assert.Equal(t, Counts{Issues: 1, Warnings: 1}, second.Counts)
}

func TestAnalyze_GroupsByFile(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	require.Len(t, report.ByFile, 2)
	assert.Equal(t, "a.php", report.ByFile[0].Path)
	assert.Equal(t, Counts{Issues: 3, Errors: 2, Warnings: 1}, report.ByFile[0].Counts)
	assert.Equal(t, []string{
		ruleName + ".NoSpaceAfterComma",
		ruleName + ".SpaceBeforeComma",
	}, report.ByFile[0].Codes)
	assert.Equal(t, "b.php", report.ByFile[1].Path)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"count descending", Options{IncludeByCode: true, SortBy: SortByCount, SortDesc: true},
			[]string{"NoSpaceAfterComma", "SpaceBeforeComma"}},
		{"count ascending", Options{IncludeByCode: true, SortBy: SortByCount},
			[]string{"SpaceBeforeComma", "NoSpaceAfterComma"}},
		{"alpha", Options{IncludeByCode: true, SortBy: SortByAlpha},
			[]string{"NoSpaceAfterComma", "SpaceBeforeComma"}},
		{"severity", Options{IncludeByCode: true, SortBy: SortBySeverity},
			[]string{"NoSpaceAfterComma", "SpaceBeforeComma"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := Analyze(sampleResult(), tt.opts)
			got := make([]string, len(report.ByCode))
			for i, ca := range report.ByCode {
				got[i] = ca.Code
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyze_ExcludeViews(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), Options{SortBy: SortByCount})

	assert.Equal(t, 4, report.Totals.Issues)
	assert.Nil(t, report.Diagnostics)
	assert.Nil(t, report.ByFile)
	assert.Nil(t, report.ByCode)
}

func TestAnalyze_FileErrorsAndCache(t *testing.T) {
	t.Parallel()

	cached := outcome("c.php")
	cached.Result.Cached = true
	cached.Result.Suppressed = 2

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "broken.php", Error: errors.New("permission denied")},
			cached,
		},
	}

	report := Analyze(result, DefaultOptions())
	assert.Equal(t, 2, report.Totals.Files)
	assert.Equal(t, 1, report.Totals.FilesErrored)
	assert.Equal(t, 1, report.Totals.FilesCached)
	assert.Equal(t, 2, report.Totals.Suppressed)
	assert.Equal(t, []FileError{{FilePath: "broken.php", Message: "permission denied"}}, report.Errors)
}

func TestAnalyze_RelativePaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	result := &runner.Result{Files: []runner.FileOutcome{
		outcome(filepath.Join(root, "src", "a.php"), diag("NoSpaceAfterComma", config.SeverityError, 1, 1)),
	}}

	opts := DefaultOptions()
	opts.WorkingDir = root
	report := Analyze(result, opts)

	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, filepath.Join("src", "a.php"), report.Diagnostics[0].FilePath)
	assert.Equal(t, "relative.php", RelativePath("relative.php", root))
}
