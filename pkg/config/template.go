package config

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the file syntax: yaml (default) or toml.
	Format FileFormat

	// Rules documents each listed rule in the template.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
// It mirrors the lint rule contract without importing the lint package.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
}

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions) []byte {
	rules := slices.Clone(opts.Rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})

	if opts.Format == FileFormatTOML {
		return generateTOMLTemplate(rules)
	}
	return generateYAMLTemplate(rules)
}

func generateYAMLTemplate(rules []RuleInfo) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Default severity for all rules: error, warning, or info
severity_default: error

# File extensions linted as PHP
extensions:
  - .php
  - .phtml
  - .inc
  - .module

# Also lint ` + "```php" + ` fences in Markdown files
# markdown: false

# Inspect extensionless files for a PHP shebang
# detect_language: false

# Result cache ($XDG_CACHE_HOME/phpsniff)
# cache:
#   enabled: true

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"

# Rule-specific configuration (keys may be rule IDs or names)
rules:
`)

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth, "  # "))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}

	return buf.Bytes()
}

func generateTOMLTemplate(rules []RuleInfo) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Default severity for all rules: error, warning, or info
severity_default = "error"

# File extensions linted as PHP
extensions = [".php", ".phtml", ".inc", ".module"]

# Also lint ` + "```php" + ` fences in Markdown files
# markdown = false

# Inspect extensionless files for a PHP shebang
# detect_language = false

# File patterns to ignore (glob patterns)
ignore = ["vendor/**"]

# Result cache ($XDG_CACHE_HOME/phpsniff)
# [cache]
# enabled = true
`)

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n# %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "# %s\n", wrapComment(rule.Description, commentWrapWidth, "# "))
		fmt.Fprintf(&buf, "[rules.%s]\n", rule.ID)
		fmt.Fprintf(&buf, "enabled = %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "severity = %q\n", string(rule.Severity))
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters,
// continuing each line with prefix.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# phpsniff configuration
# See: https://github.com/yaklabco/phpsniff`
}
