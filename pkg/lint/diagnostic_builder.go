package lint

import (
	"fmt"
	"strings"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/phptoken"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic anchored at token pos of file.
// An out-of-range pos leaves the position unset.
func NewDiagnostic(ruleID string, file *phptoken.File, pos int, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:     ruleID,
			Message:    message,
			TokenIndex: pos,
		},
	}

	if file == nil {
		return b
	}
	b.diag.FilePath = file.Path

	if pos < 0 || pos >= file.Len() {
		return b
	}

	tok := file.Token(pos)
	b.diag.Line = tok.Line
	b.diag.Column = tok.Column
	b.diag.EndLine, b.diag.EndColumn = tokenEnd(tok)

	return b
}

// NewDiagnosticAt starts building a diagnostic at an explicit position.
func NewDiagnosticAt(ruleID, filePath string, line, column int, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:     ruleID,
			Message:    message,
			FilePath:   filePath,
			Line:       line,
			Column:     column,
			EndLine:    line,
			EndColumn:  column,
			TokenIndex: -1,
		},
	}
}

// tokenEnd returns the line and column just past tok.
func tokenEnd(tok phptoken.Token) (int, int) {
	last := strings.LastIndexByte(tok.Text, '\n')
	if last < 0 {
		return tok.Line, tok.Column + len(tok.Text)
	}
	return tok.Line + strings.Count(tok.Text, "\n"), len(tok.Text) - last
}

// WithRuleName sets the rule name.
func (b *DiagnosticBuilder) WithRuleName(name string) *DiagnosticBuilder {
	b.diag.RuleName = name
	return b
}

// WithCode sets the diagnostic code.
func (b *DiagnosticBuilder) WithCode(code string) *DiagnosticBuilder {
	b.diag.Code = code
	return b
}

// WithData sets the message arguments.
func (b *DiagnosticBuilder) WithData(data ...any) *DiagnosticBuilder {
	if len(data) > 0 {
		b.diag.Data = data
	}
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// Build returns the constructed Diagnostic, with Data substituted into the message.
func (b *DiagnosticBuilder) Build() Diagnostic {
	d := b.diag
	if len(d.Data) > 0 {
		d.Message = fmt.Sprintf(d.Message, d.Data...)
	}
	return d
}
