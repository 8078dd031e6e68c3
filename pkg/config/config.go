// Package config defines core configuration types for phpsniff.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"  toml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty" toml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"  toml:"options,omitempty"`
}

// CacheConfig controls the per-file result cache.
type CacheConfig struct {
	// Enabled defaults to true when unset.
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty"`

	// Dir overrides the cache directory ($XDG_CACHE_HOME/phpsniff by default).
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText       OutputFormat = "text"
	FormatJSON       OutputFormat = "json"
	FormatSARIF      OutputFormat = "sarif"
	FormatCheckstyle OutputFormat = "checkstyle"
	FormatSummary    OutputFormat = "summary"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF, FormatCheckstyle, FormatSummary:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "function-call-argument-spacing"
	RuleFormatID       RuleFormat = "id"       // "BH001"
	RuleFormatCombined RuleFormat = "combined" // "BH001/function-call-argument-spacing"
)

// IsValid reports whether f is a known rule format.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// DefaultExtensions are the file extensions linted as PHP.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultExtensions = []string{".php", ".phtml", ".inc", ".module"}

// Config is the root configuration structure for phpsniff.
type Config struct {
	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default,omitempty" toml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty" toml:"rules,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Extensions lists the file extensions treated as PHP.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Markdown also lints ```php fences inside Markdown files.
	Markdown bool `yaml:"markdown,omitempty" toml:"markdown,omitempty"`

	// DetectLanguage inspects extensionless files for a PHP shebang.
	DetectLanguage bool `yaml:"detect_language,omitempty" toml:"detect_language,omitempty"`

	// Cache configures the result cache.
	Cache CacheConfig `yaml:"cache,omitempty" toml:"cache,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-" toml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-" toml:"-"`

	// NoCache disables the result cache for this run.
	NoCache bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityError),
		Rules:           make(map[string]RuleConfig),
		Extensions:      append([]string(nil), DefaultExtensions...),
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
		Jobs:            0, // 0 means use GOMAXPROCS
	}
}

// CacheEnabled reports whether the result cache should be used.
func (c *Config) CacheEnabled() bool {
	if c == nil || c.NoCache {
		return false
	}
	if c.Cache.Enabled != nil {
		return *c.Cache.Enabled
	}
	return true
}
