package analysis

import "github.com/yaklabco/phpsniff/pkg/config"

// SortField specifies how to sort ByFile and ByCode.
type SortField string

const (
	// SortByCount sorts by issue count.
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortBySeverity puts errors first, then warnings.
	SortBySeverity SortField = "severity"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByCode      bool

	SortBy SortField

	// SortDesc applies to SortByCount only.
	SortDesc bool

	// RuleFormat controls how the rule part of Source is written.
	RuleFormat config.RuleFormat

	// WorkingDir makes paths relative when set.
	WorkingDir string
}

// DefaultOptions returns Options with every view, most frequent first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByCode:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatName,
	}
}
