package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/phpsniff/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "BH001", "function-call-argument-spacing", "function-call-argument-spacing"},
		{"id format", config.RuleFormatID, "BH001", "function-call-argument-spacing", "BH001"},
		{"combined format", config.RuleFormatCombined, "BH001", "function-call-argument-spacing", "BH001/function-call-argument-spacing"},
		{"name format empty name", config.RuleFormatName, "BH001", "", "BH001"},
		{"default to name", config.RuleFormat(""), "BH001", "function-call-argument-spacing", "function-call-argument-spacing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "BH001.SpaceBeforeComma",
		config.FormatCode(config.RuleFormatID, "BH001", "function-call-argument-spacing", "SpaceBeforeComma"))
	assert.Equal(t, "function-call-argument-spacing",
		config.FormatCode(config.RuleFormatName, "BH001", "function-call-argument-spacing", ""))
}

func TestFormatValidity(t *testing.T) {
	assert.True(t, config.FormatCheckstyle.IsValid())
	assert.False(t, config.OutputFormat("table").IsValid())
	assert.True(t, config.RuleFormatCombined.IsValid())
	assert.False(t, config.RuleFormat("short").IsValid())
	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()
	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.DefaultExtensions, cfg.Extensions)
	assert.True(t, cfg.CacheEnabled())

	cfg.NoCache = true
	assert.False(t, cfg.CacheEnabled())

	disabled := false
	cfg = config.NewConfig()
	cfg.Cache.Enabled = &disabled
	assert.False(t, cfg.CacheEnabled())
}
