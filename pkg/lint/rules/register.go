package rules

import "github.com/yaklabco/phpsniff/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewCallArgumentSpacingRule()) // BH001
}

// RegisterSniffAliases maps PHP_CodeSniffer sniff references to rule IDs so
// that phpcs: comments and config keys written for PHP_CodeSniffer keep working.
func RegisterSniffAliases(registry *lint.Registry) {
	registry.RegisterAlias(CallArgumentSpacingSniff, "BH001")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterSniffAliases(lint.DefaultRegistry)
}
