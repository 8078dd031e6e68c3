package runner_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
	"github.com/yaklabco/phpsniff/pkg/lint/rules"
	"github.com/yaklabco/phpsniff/pkg/runner"
)

func newRunner() *runner.Runner {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	rules.RegisterSniffAliases(registry)
	return runner.New(lint.NewPipeline(lint.NewEngine(lint.PHPTokenizer, registry)))
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"clean.php":   "<?php\nfoo( $a, $b );\n",
		"bad.php":     "<?php\nfoo($a,$b);\n",
		"warn.php":    "<?php\nbar( $a , $b );\n",
		"skipped.txt": "foo( $a );\n",
	})

	cfg := config.NewConfig()
	opts := runner.OptionsFromConfig(cfg, nil)
	opts.WorkingDir = dir

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, abs(dir, "bad.php", "clean.php", "warn.php"), []string{
		result.Files[0].Path, result.Files[1].Path, result.Files[2].Path,
	})

	stats := result.Stats
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 3, stats.FilesProcessed)
	assert.Equal(t, 0, stats.FilesErrored)
	assert.Equal(t, 2, stats.FilesWithIssues)
	assert.Equal(t, 4, stats.DiagnosticsTotal)
	assert.Equal(t, 4, stats.DiagnosticsBySeverity["error"])
	assert.Equal(t, map[string]int{
		"BH001." + rules.CodeSpaceAfterOpenParens:   1,
		"BH001." + rules.CodeNoSpaceAfterComma:      1,
		"BH001." + rules.CodeSpaceBeforeCloseParens: 1,
		"BH001." + rules.CodeSpaceBeforeComma:       1,
	}, stats.DiagnosticsByCode)

	assert.True(t, result.HasFailures())
	assert.True(t, result.HasIssues())
	assert.False(t, result.HasWarnings())
	assert.Len(t, result.Diagnostics(), 4)
}

func TestRunner_Run_SeverityOverride(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"a.php": "<?php\nfoo( $a,$b );\n"})

	cfg := config.NewConfig()
	severity := string(config.SeverityWarning)
	cfg.Rules["function-call-argument-spacing"] = config.RuleConfig{Severity: &severity}

	opts := runner.OptionsFromConfig(cfg, nil)
	opts.WorkingDir = dir

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)

	assert.False(t, result.HasFailures())
	assert.True(t, result.HasWarnings())
	assert.Equal(t, 1, result.Stats.DiagnosticsBySeverity["warning"])
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
	assert.Nil(t, result.Diagnostics())
}

func TestRunner_RunFiles_RecordsFileErrors(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"a.php": "<?php\nfoo($a);\n"})
	files := []string{filepath.Join(dir, "a.php"), filepath.Join(dir, "gone.php")}

	result, err := newRunner().RunFiles(context.Background(), files, runner.Options{Config: config.NewConfig()})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.NoError(t, result.Files[0].Error)
	require.Error(t, result.Files[1].Error)
	assert.ErrorIs(t, result.Files[1].Error, lint.ErrFileNotFound)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesErrored)
}

func TestRunner_Run_SerialMatchesParallel(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for i := range 40 {
		files[fmt.Sprintf("f%02d.php", i)] = fmt.Sprintf("<?php\nfoo($a%d,$b);\nbar( $c );\n", i)
	}
	dir := makeTree(t, files)

	run := func(jobs int) *runner.Result {
		opts := runner.OptionsFromConfig(config.NewConfig(), nil)
		opts.WorkingDir = dir
		opts.Jobs = jobs
		result, err := newRunner().Run(context.Background(), opts)
		require.NoError(t, err)
		return result
	}

	serial := run(1)
	parallel := run(8)

	assert.Equal(t, serial.Stats, parallel.Stats)
	assert.Equal(t, serial.Diagnostics(), parallel.Diagnostics())
	assert.Equal(t, 120, serial.Stats.DiagnosticsTotal)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"a.php": "<?php\n"})
	files := []string{filepath.Join(dir, "a.php")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newRunner().RunFiles(ctx, files, runner.Options{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Files)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasFailures())
	assert.False(t, result.HasWarnings())
	assert.False(t, result.HasIssues())
	assert.Nil(t, result.Diagnostics())
}
