package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpsniff/internal/cli"
)

func TestRulesCommand_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ruleFormat string
		want       string
	}{
		{"name", "function-call-argument-spacing"},
		{"id", "BH001"},
		{"combined", "BH001/function-call-argument-spacing"},
	}

	for _, tt := range tests {
		t.Run(tt.ruleFormat, func(t *testing.T) {
			t.Parallel()

			stdout, _, code := execute(t, "rules", "--rule-format", tt.ruleFormat)
			assert.Equal(t, cli.ExitSuccess, code)
			assert.Contains(t, stdout, tt.want)
			assert.Contains(t, stdout, "Behance.Functions.FunctionCallArgumentSpacing")
			assert.Contains(t, stdout, "must be padded inside the parentheses")
		})
	}
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "rules", "--format", "json")
	require.Equal(t, cli.ExitSuccess, code)

	var rules []struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Severity string   `json:"severity"`
		Enabled  bool     `json:"enabled"`
		Tags     []string `json:"tags"`
		Aliases  []string `json:"aliases"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	require.Len(t, rules, 1)
	assert.Equal(t, "BH001", rules[0].ID)
	assert.Equal(t, "function-call-argument-spacing", rules[0].Name)
	assert.Equal(t, "error", rules[0].Severity)
	assert.True(t, rules[0].Enabled)
	assert.Equal(t, []string{"spacing", "functions"}, rules[0].Tags)
	assert.Equal(t, []string{"Behance.Functions.FunctionCallArgumentSpacing"}, rules[0].Aliases)
}

func TestRulesCommand_InvalidFlags(t *testing.T) {
	t.Parallel()

	_, _, code := execute(t, "rules", "--format", "yaml")
	assert.Equal(t, cli.ExitInvalidUsage, code)

	_, _, code = execute(t, "rules", "--rule-format", "short")
	assert.Equal(t, cli.ExitInvalidUsage, code)
}
