package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpsniff/pkg/config"
)

func TestFromTOML(t *testing.T) {
	t.Run("parses rules and cache", func(t *testing.T) {
		data := []byte(`
severity_default = "warning"
ignore = ["vendor/**"]

[cache]
enabled = false

[rules.BH001]
severity = "info"
`)
		cfg, err := config.FromTOML(data)
		require.NoError(t, err)
		assert.Equal(t, "warning", cfg.SeverityDefault)
		assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
		require.NotNil(t, cfg.Cache.Enabled)
		assert.False(t, *cfg.Cache.Enabled)
		require.Contains(t, cfg.Rules, "BH001")
		assert.Equal(t, "info", *cfg.Rules["BH001"].Severity)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := config.FromTOML([]byte(`flavor = "gfm"`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flavor")
	})

	t.Run("rejects malformed TOML", func(t *testing.T) {
		_, err := config.FromTOML([]byte(`severity_default = `))
		require.Error(t, err)
	})
}

func TestConfigTOMLRoundTrip(t *testing.T) {
	enabled := false
	cfg := &config.Config{
		SeverityDefault: "info",
		Extensions:      []string{".php"},
		Rules: map[string]config.RuleConfig{
			"BH001": {Enabled: &enabled},
		},
	}

	data, err := cfg.ToTOML()
	require.NoError(t, err)

	parsed, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, "info", parsed.SeverityDefault)
	assert.Equal(t, []string{".php"}, parsed.Extensions)
	require.Contains(t, parsed.Rules, "BH001")
	assert.False(t, *parsed.Rules["BH001"].Enabled)
}

func TestParseByFileFormat(t *testing.T) {
	assert.Equal(t, config.FileFormatTOML, config.FileFormatFor("/x/.phpsniff.TOML"))
	assert.Equal(t, config.FileFormatYAML, config.FileFormatFor("phpsniff.yml"))

	cfg, err := config.Parse([]byte(`markdown = true`), config.FileFormatTOML)
	require.NoError(t, err)
	assert.True(t, cfg.Markdown)

	cfg, err = config.Parse([]byte(`markdown: true`), config.FileFormatYAML)
	require.NoError(t, err)
	assert.True(t, cfg.Markdown)
}
