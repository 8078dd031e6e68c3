package lint

import (
	"context"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/phptoken"
)

// RuleContext provides everything a rule sees while processing one file.
//
// It stores context.Context as a field because it is a short-lived parameter
// object created per rule and file, not a long-lived struct.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the token stream being linted.
	File *phptoken.File

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Rule is the rule being run; its identity is stamped on reported diagnostics.
	Rule Rule

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	diags []Diagnostic
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	file *phptoken.File,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// AddError records a violation anchored at token pos. When data is not
// empty, message is a format string for it.
func (rc *RuleContext) AddError(message string, pos int, code string, data ...any) {
	rc.Report(NewDiagnostic(rc.ruleID(), rc.File, pos, message).
		WithCode(code).
		WithData(data...).
		Build())
}

// Report records a prebuilt diagnostic.
func (rc *RuleContext) Report(d Diagnostic) {
	if d.RuleID == "" {
		d.RuleID = rc.ruleID()
	}
	if d.RuleName == "" && rc.Rule != nil {
		d.RuleName = rc.Rule.Name()
	}
	rc.diags = append(rc.diags, d)
}

// Diagnostics returns what has been reported so far.
func (rc *RuleContext) Diagnostics() []Diagnostic {
	return rc.diags
}

func (rc *RuleContext) ruleID() string {
	if rc.Rule == nil {
		return ""
	}
	return rc.Rule.ID()
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	if rc.Ctx == nil {
		return false
	}
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
// TOML decodes integers as int64 and YAML as int.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Decoders hand back []any.
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
