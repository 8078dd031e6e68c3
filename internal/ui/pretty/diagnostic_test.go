package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/phpsniff/internal/ui/pretty"
	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

func sampleDiagnostic() *lint.Diagnostic {
	return &lint.Diagnostic{
		RuleID:   "BH001",
		RuleName: "function-call-argument-spacing",
		Code:     "NoSpaceAfterComma",
		Message:  "Expected 1 space after comma in function call; 0 found",
		Severity: config.SeverityError,
		FilePath: "src/a.php",
		Line:     3,
		Column:   8,
	}
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diag := sampleDiagnostic()

	got := styles.FormatDiagnostic(diag, config.RuleFormatName, "")
	assert.Equal(t,
		"  3:8  error  Expected 1 space after comma in function call; 0 found"+
			"  (function-call-argument-spacing.NoSpaceAfterComma)\n",
		got)

	got = styles.FormatDiagnostic(diag, config.RuleFormatID, "foo( $a,$b );\n")
	assert.Contains(t, got, "(BH001.NoSpaceAfterComma)")
	assert.Contains(t, got, "\n      foo( $a,$b );\n")
	assert.Contains(t, got, "\n             ^\n")
}

func TestFormatCompact(t *testing.T) {
	t.Parallel()

	got := pretty.NewStyles(false).FormatCompact(sampleDiagnostic(), config.RuleFormatCombined)
	assert.Equal(t,
		"src/a.php:3:8: error: Expected 1 space after comma in function call; 0 found"+
			" (BH001/function-call-argument-spacing.NoSpaceAfterComma)\n",
		got)
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "fatal", styles.FormatSeverity("fatal"))
}

func TestCaretPadding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{"first column", "foo();", 1, ""},
		{"zero column", "foo();", 0, ""},
		{"ascii", "foo($a,$b);", 7, "      "},
		{"tabs are kept", "\t\tfoo($a,$b);", 9, "\t\t      "},
		{"wide runes take two cells", "$x = '日本',$y;", 15, "      " + "    " + "  "},
		{"column past end", "ab", 10, "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pretty.CaretPadding(tt.line, tt.column))
		})
	}
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.php", styles.FormatFileHeader("a.php", 0))
	assert.Equal(t, "a.php (1 issue)", styles.FormatFileHeader("a.php", 1))
	assert.Equal(t, "a.php (4 issues)", styles.FormatFileHeader("a.php", 4))
}
