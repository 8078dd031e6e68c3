package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

const (
	testRuleID1 = "BH001"
	testRuleID2 = "BH002"
)

// testRule is a simple rule implementation for testing.
type testRule struct {
	lint.BaseRule
}

func newTestRule(id string) *testRule {
	return &testRule{
		BaseRule: lint.NewBaseRule(id, id+"-name", "", nil),
	}
}

func ptr[T any](v T) *T { return &v }

func TestResolveRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		configure func(cfg *config.Config)
		wantIDs   []string
	}{
		{
			name:    "defaults enable everything",
			wantIDs: []string{testRuleID1, testRuleID2},
		},
		{
			name: "disabled in config by ID",
			configure: func(cfg *config.Config) {
				cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: ptr(false)}
			},
			wantIDs: []string{testRuleID2},
		},
		{
			name: "disabled in config by name",
			configure: func(cfg *config.Config) {
				cfg.Rules[testRuleID2+"-name"] = config.RuleConfig{Enabled: ptr(false)}
			},
			wantIDs: []string{testRuleID1},
		},
		{
			name: "disable flag wins",
			configure: func(cfg *config.Config) {
				cfg.DisableRules = []string{"bh002"}
			},
			wantIDs: []string{testRuleID1},
		},
		{
			name: "enable flag overrides config",
			configure: func(cfg *config.Config) {
				cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: ptr(false)}
				cfg.EnableRules = []string{testRuleID1 + "-name"}
			},
			wantIDs: []string{testRuleID1, testRuleID2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := lint.NewRegistry()
			registry.Register(newTestRule(testRuleID1))
			registry.Register(newTestRule(testRuleID2))

			cfg := config.NewConfig()
			if tt.configure != nil {
				tt.configure(cfg)
			}

			var ids []string
			for _, rr := range lint.ResolveRules(registry, cfg) {
				ids = append(ids, rr.Rule.ID())
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestResolveRules_Severity(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))
	registry.Register(newTestRule(testRuleID2))

	cfg := config.NewConfig()
	cfg.SeverityDefault = string(config.SeverityWarning)
	cfg.Rules[testRuleID2] = config.RuleConfig{Severity: ptr("info")}

	resolved := lint.ResolveRules(registry, cfg)
	require.Len(t, resolved, 2)
	assert.Equal(t, config.SeverityWarning, resolved[0].Severity)
	assert.Equal(t, config.SeverityInfo, resolved[1].Severity)
	require.NotNil(t, resolved[1].Config)
	assert.Nil(t, resolved[0].Config)
}

func TestResolveRules_InvalidSeverityIgnored(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))

	cfg := config.NewConfig()
	cfg.SeverityDefault = "loud"
	cfg.Rules[testRuleID1] = config.RuleConfig{Severity: ptr("louder")}

	resolved := lint.ResolveRules(registry, cfg)
	require.Len(t, resolved, 1)
	assert.Equal(t, config.SeverityError, resolved[0].Severity)
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newTestRule(testRuleID1))

	resolved := lint.ResolveRules(registry, nil)
	require.Len(t, resolved, 1)
	assert.True(t, resolved[0].Enabled)
	assert.Equal(t, config.SeverityError, resolved[0].Severity)
}
