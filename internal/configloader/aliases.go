package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

// ExpandRuleKey resolves a rule reference to rule IDs. A key may be a rule
// ID, a rule name, a registered alias such as a PHP_CodeSniffer sniff
// reference, or a tag shared by several rules. Unknown keys expand to nil.
func ExpandRuleKey(registry *lint.Registry, key string) []string {
	if id, _, found := registry.Resolve(key); found {
		return []string{id}
	}

	var ids []string
	for _, rule := range registry.Rules() {
		if slices.ContainsFunc(rule.Tags(), func(tag string) bool {
			return strings.EqualFold(tag, key)
		}) {
			ids = append(ids, rule.ID())
		}
	}
	return ids
}

// expandRuleList replaces rule references and tags with rule IDs.
// Unknown keys are kept so that validation can report them.
func expandRuleList(registry *lint.Registry, keys []string) []string {
	if keys == nil {
		return nil
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		ids := ExpandRuleKey(registry, key)
		if len(ids) == 0 {
			ids = []string{key}
		}
		for _, id := range ids {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}

// normalizeRuleKeys rewrites rule config keys given as names or aliases to
// rule IDs. When two keys name the same rule, the later key in sorted order
// wins and a warning is recorded.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string)

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]
		id, _, found := registry.Resolve(key)
		if !found {
			normalized[key] = ruleCfg
			continue
		}

		if original, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
					original, key, id, key))
		}
		seen[id] = key
		normalized[id] = ruleCfg
	}

	cfg.Rules = normalized
}
