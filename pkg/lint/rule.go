// Package lint provides the token-driven rule engine, diagnostics, and registry for phpsniff.
package lint

import (
	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/phptoken"
)

// Diagnostic represents a single lint issue found in a file.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string `msgpack:"rule_id"`

	// RuleName is the human-readable name of the rule (e.g., "function-call-argument-spacing").
	RuleName string `msgpack:"rule_name"`

	// Code distinguishes the kinds of issue a rule reports (e.g., "NoSpaceAfterComma").
	Code string `msgpack:"code"`

	// Message is the human-readable description of the issue, already
	// formatted with Data.
	Message string `msgpack:"message"`

	// Data holds the values substituted into Message.
	Data []any `msgpack:"data,omitempty"`

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity `msgpack:"severity"`

	// FilePath is the path to the file containing the issue.
	FilePath string `msgpack:"file_path"`

	// Line is the 1-based line of the anchor token.
	Line int `msgpack:"line"`

	// Column is the 1-based byte column of the anchor token.
	Column int `msgpack:"column"`

	// EndLine is the 1-based line where the anchor token ends.
	EndLine int `msgpack:"end_line"`

	// EndColumn is the 1-based column just past the anchor token.
	EndColumn int `msgpack:"end_column"`

	// TokenIndex is the index of the anchor token within its token stream.
	TokenIndex int `msgpack:"token_index"`
}

// QualifiedCode returns the rule-qualified code, e.g. "BH001.NoSpaceAfterComma".
func (d *Diagnostic) QualifiedCode(format config.RuleFormat) string {
	return config.FormatCode(format, d.RuleID, d.RuleName, d.Code)
}

// Rule describes a lint rule.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "BH001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["spacing", "calls"]).
	Tags() []string
}

// TokenRule is a rule driven by the token stream. The engine calls Process
// once for every token whose kind is listed by Register.
//
// Rules must:
//   - Report violations through RuleContext.AddError.
//   - Keep no state between Process calls.
//   - Treat the file as read-only.
type TokenRule interface {
	Rule

	// Register returns the token kinds the rule listens for.
	Register() []phptoken.Kind

	// Process inspects the token at pos.
	Process(ctx *RuleContext, pos int)
}
