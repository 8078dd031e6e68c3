package rules

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

// update rewrites the expected diagnostics instead of comparing.
// Usage: go test ./pkg/lint/rules/... -run TestGolden -update.
var update = flag.Bool("update", false, "update golden files")

// testdataDir returns the absolute path to the testdata directory.
func testdataDir(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get test file path")
	}

	return filepath.Join(filepath.Dir(filename), "testdata")
}

// TestGoldenPerRule lints every testdata/<RULE_ID>/*.php file with only that
// rule and compares against the sibling .diags.txt file.
func TestGoldenPerRule(t *testing.T) {
	baseDir := testdataDir(t)

	inputs, err := filepath.Glob(filepath.Join(baseDir, "*", "*.php"))
	require.NoError(t, err)
	if len(inputs) == 0 {
		t.Skip("No golden test cases found. Create testdata/<RULE_ID>/*.php files to add tests.")
	}

	for _, input := range inputs {
		ruleID := filepath.Base(filepath.Dir(input))
		name := ruleID + "/" + strings.TrimSuffix(filepath.Base(input), ".php")

		t.Run(name, func(t *testing.T) {
			got := goldenDiagnostics(t, ruleID, input)
			expectedPath := strings.TrimSuffix(input, ".php") + ".diags.txt"

			if *update {
				require.NoError(t, os.WriteFile(expectedPath, []byte(got), 0o600))
				return
			}

			want, err := os.ReadFile(expectedPath)
			require.NoError(t, err, "missing %s; run with -update", expectedPath)
			assert.Equal(t, string(want), got)
		})
	}
}

// goldenDiagnostics renders one "line:column Code message" line per diagnostic.
func goldenDiagnostics(t *testing.T, ruleID, path string) string {
	t.Helper()

	full := lint.NewRegistry()
	RegisterAll(full)
	RegisterSniffAliases(full)

	rule, ok := full.GetByID(ruleID)
	require.True(t, ok, "unknown rule directory %s", ruleID)

	registry := lint.NewRegistry()
	registry.Register(rule)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	engine := lint.NewEngine(lint.PHPTokenizer, registry)
	result, err := engine.LintFile(context.Background(), path, content, config.NewConfig())
	require.NoError(t, err)

	var sb strings.Builder
	for _, d := range result.Diagnostics {
		fmt.Fprintf(&sb, "%d:%d %s %s\n", d.Line, d.Column, d.Code, d.Message)
	}
	return sb.String()
}
