package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
	"github.com/yaklabco/phpsniff/pkg/lint/rules"
)

func testRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	rules.RegisterSniffAliases(registry)
	return registry
}

// isolated returns options that only look at dir.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		Registry:           testRegistry(),
	}
}

func write(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfigYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	path := write(t, filepath.Join(dir, ".phpsniff.yml"), `
severity_default: warning
markdown: true
extensions: [".php", ".ctp"]
ignore:
  - "vendor/**"
rules:
  function-call-argument-spacing:
    severity: info
`)

	sub := filepath.Join(dir, "src", "Controller")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, path, result.Paths.Project)
	assert.Equal(t, "warning", cfg.SeverityDefault)
	assert.True(t, cfg.Markdown)
	assert.Equal(t, []string{".php", ".ctp"}, cfg.Extensions)
	assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)

	require.Contains(t, cfg.Rules, "BH001", "rule names are normalized to IDs")
	assert.Equal(t, "info", *cfg.Rules["BH001"].Severity)
}

func TestLoad_ProjectConfigTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	write(t, filepath.Join(dir, "phpsniff.toml"), `
detect_language = true

[rules."Behance.Functions.FunctionCallArgumentSpacing"]
enabled = false
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.True(t, result.Config.DetectLanguage)
	require.Contains(t, result.Config.Rules, "BH001")
	assert.False(t, *result.Config.Rules["BH001"].Enabled)
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	write(t, filepath.Join(dir, ".phpsniff.yaml"), "severity_default: info\nignore: [a]\n")
	explicit := write(t, filepath.Join(dir, "ci", "strict.yml"), "severity_default: warning\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{Ignore: []string{"b"}, Jobs: 2}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, "warning", result.Config.SeverityDefault)
	assert.Equal(t, []string{"b"}, result.Config.Ignore)
	assert.Equal(t, 2, result.Config.Jobs)
}

func TestLoad_EnableDisableExpansion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		EnableRules:  []string{"spacing", "function-call-argument-spacing"},
		DisableRules: []string{"no-such-rule"},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"BH001"}, result.Config.EnableRules)
	assert.Equal(t, []string{"no-such-rule"}, result.Config.DisableRules)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown rule or tag "no-such-rule"`)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"bad yaml", ".phpsniff.yml", "rules: [", "parse yaml"},
		{"unknown toml key", ".phpsniff.toml", "colour = true\n", "unknown keys"},
		{"bad severity", ".phpsniff.yml", "severity_default: fatal\n", `invalid severity "fatal"`},
		{"bad extension", ".phpsniff.yml", "extensions: [php]\n", `invalid extension "php"`},
		{"bad glob", ".phpsniff.yml", "ignore: [\"src/[\"]\n", "invalid glob pattern"},
		{
			"bad rule severity", ".phpsniff.yml",
			"rules:\n  BH001:\n    severity: loud\n", `rules.BH001.severity`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
			path := write(t, filepath.Join(dir, tt.file), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, path, vErr.FilePath)
		})
	}
}

func TestLoad_InvalidCLIValue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{Format: "xml"}

	_, err := Load(context.Background(), opts)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "format", vErr.Field)
}

func TestLoad_WarnsAboutRuleset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	write(t, filepath.Join(dir, "phpcs.xml.dist"), "<ruleset/>")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "phpcs.xml.dist")
}

func TestLoad_UserConfig(t *testing.T) {
	// Not parallel: sets XDG_CONFIG_HOME.
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	path := write(t, filepath.Join(home, "phpsniff", "config.toml"), "markdown = true\n")

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	opts := isolated(dir)
	opts.IgnoreUserConfig = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, path, result.Paths.User)
	assert.True(t, result.Config.Markdown)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	write(t, filepath.Join(outer, ".phpsniff.yml"), "markdown: true\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	found, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = FindProjectConfig(context.Background(), outer)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outer, ".phpsniff.yml"), found)
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"PHPSNIFF_SEVERITY_DEFAULT": "warning",
		"PHPSNIFF_JOBS":             "4",
		"PHPSNIFF_IGNORE":           "vendor/**, , build",
		"PHPSNIFF_MARKDOWN":         "1",
		"PHPSNIFF_NO_CACHE":         "true",
		"PHPSNIFF_CACHE_DIR":        "/tmp/sniff",
		"PHPSNIFF_RULE_FORMAT":      "id",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromEnv(cfg, lookup))

	assert.Equal(t, "warning", cfg.SeverityDefault)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, []string{"vendor/**", "build"}, cfg.Ignore)
	assert.True(t, cfg.Markdown)
	assert.True(t, cfg.NoCache)
	assert.Equal(t, "/tmp/sniff", cfg.Cache.Dir)
	assert.Equal(t, config.RuleFormatID, cfg.RuleFormat)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"PHPSNIFF_JOBS":     "many",
		"PHPSNIFF_MARKDOWN": "sometimes",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Parallel()
			lookup := func(k string) (string, bool) {
				if k == key {
					return value, true
				}
				return "", false
			}
			err := loadFromEnv(config.NewConfig(), lookup)
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "PHPSNIFF_JOBS")
}

func TestMerge(t *testing.T) {
	t.Parallel()

	on, off := true, false
	warning, info := "warning", "info"

	base := config.NewConfig()
	base.Rules["BH001"] = config.RuleConfig{
		Enabled:  &on,
		Severity: &warning,
		Options:  map[string]any{"a": 1, "b": 2},
	}
	base.Cache.Dir = "/cache"

	override := &config.Config{
		Rules: map[string]config.RuleConfig{
			"BH001": {Enabled: &off, Options: map[string]any{"b": 3}},
			"BH002": {Severity: &info},
		},
		Markdown: true,
	}

	merged := MergeAll(base, override)

	assert.False(t, *merged.Rules["BH001"].Enabled)
	assert.Equal(t, "warning", *merged.Rules["BH001"].Severity)
	assert.Equal(t, map[string]any{"a": 1, "b": 3}, merged.Rules["BH001"].Options)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, base.Rules["BH001"].Options, "base is not mutated")
	assert.Equal(t, "info", *merged.Rules["BH002"].Severity)
	assert.True(t, merged.Markdown)
	assert.Equal(t, "/cache", merged.Cache.Dir)
	assert.Equal(t, config.DefaultExtensions, merged.Extensions)

	assert.Nil(t, MergeAll())
}

func TestExpandRuleKey(t *testing.T) {
	t.Parallel()

	registry := testRegistry()

	tests := []struct {
		key  string
		want []string
	}{
		{"BH001", []string{"BH001"}},
		{"bh001", []string{"BH001"}},
		{"function-call-argument-spacing", []string{"BH001"}},
		{"Behance.Functions.FunctionCallArgumentSpacing", []string{"BH001"}},
		{"functions", []string{"BH001"}},
		{"Spacing", []string{"BH001"}},
		{"unknown", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExpandRuleKey(registry, tt.key))
		})
	}
}

func TestNormalizeRuleKeys_Duplicates(t *testing.T) {
	t.Parallel()

	info, warning := "info", "warning"
	cfg := &config.Config{Rules: map[string]config.RuleConfig{
		"BH001":                          {Severity: &info},
		"function-call-argument-spacing": {Severity: &warning},
		"XX999":                          {},
	}}
	result := &LoadResult{}

	normalizeRuleKeys(cfg, testRegistry(), result)

	assert.Len(t, cfg.Rules, 2)
	assert.Contains(t, cfg.Rules, "XX999")
	assert.Equal(t, "warning", *cfg.Rules["BH001"].Severity)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "duplicate rule configuration")
}
