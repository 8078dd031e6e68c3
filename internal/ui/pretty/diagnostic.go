package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

// FormatDiagnostic renders one diagnostic as
//
//	12:9  error  Expected ...  (function-call-argument-spacing.NoSpaceAfterComma)
//
// followed, when sourceLine is not empty, by the line and a caret under
// the reported column.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, ruleFormat config.RuleFormat, sourceLine string) string {
	var builder strings.Builder

	location := s.Location.Render(fmt.Sprintf("%d:%d", diag.Line, diag.Column))
	code := s.RuleID.Render("(" + diag.QualifiedCode(ruleFormat) + ")")

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		code,
	)

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column))
	}

	return builder.String()
}

// FormatCompact renders a diagnostic on one line with its path, in the
// "path:line:col: severity: message (code)" shape editors understand.
func (s *Styles) FormatCompact(diag *lint.Diagnostic, ruleFormat config.RuleFormat) string {
	return fmt.Sprintf("%s:%d:%d: %s: %s %s\n",
		s.FilePath.Render(diag.FilePath),
		diag.Line,
		diag.Column,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+diag.QualifiedCode(ruleFormat)+")"),
	)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

const contextIndent = "      "

// FormatSourceContext renders line with a caret under the byte column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	line = strings.TrimRight(line, "\r\n")

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		builder.WriteString(contextIndent + CaretPadding(line, column) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// CaretPadding returns the whitespace that moves a caret under the given
// 1-based byte column of line. Tabs are kept so the caret lines up however
// the terminal expands them; wide runes count as two cells.
func CaretPadding(line string, column int) string {
	end := min(column-1, len(line))
	if end <= 0 {
		return ""
	}

	var builder strings.Builder
	for _, r := range line[:end] {
		if r == '\t' {
			builder.WriteByte('\t')
			continue
		}
		builder.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch issueCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 issue)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
