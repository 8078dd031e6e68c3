package lint

import (
	"slices"
	"strings"

	"github.com/yaklabco/phpsniff/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule applies, in increasing precedence: rule defaults,
// severity_default, the rule's config entry, then --enable/--disable.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
	}

	if cfg == nil {
		return rr
	}

	if sev := config.Severity(cfg.SeverityDefault); sev.IsValid() {
		rr.Severity = sev
	}

	if ruleCfg, ok := lookupRuleConfig(rule, cfg.Rules); ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			if sev := config.Severity(*ruleCfg.Severity); sev.IsValid() {
				rr.Severity = sev
			}
		}
	}

	if slices.ContainsFunc(cfg.EnableRules, func(key string) bool { return matchesRule(rule, key) }) {
		rr.Enabled = true
	}
	if slices.ContainsFunc(cfg.DisableRules, func(key string) bool { return matchesRule(rule, key) }) {
		rr.Enabled = false
	}

	return rr
}

func lookupRuleConfig(rule Rule, rules map[string]config.RuleConfig) (config.RuleConfig, bool) {
	if rc, ok := rules[rule.ID()]; ok {
		return rc, true
	}
	rc, ok := rules[rule.Name()]
	return rc, ok
}

func matchesRule(rule Rule, key string) bool {
	return strings.EqualFold(key, rule.ID()) || key == rule.Name()
}
