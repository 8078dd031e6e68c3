package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpsniff/pkg/cache"
	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

func sampleDiagnostics() []lint.Diagnostic {
	return []lint.Diagnostic{
		{
			RuleID:     "BH001",
			RuleName:   "function-call-argument-spacing",
			Code:       "NoSpaceAfterComma",
			Message:    "No space found after comma in function call",
			Severity:   config.SeverityError,
			FilePath:   "src/a.php",
			Line:       3,
			Column:     1,
			EndLine:    3,
			EndColumn:  4,
			TokenIndex: 7,
		},
	}
}

func TestCache_StoreLookup(t *testing.T) {
	t.Parallel()

	c, err := cache.Open(t.TempDir(), "fp")
	require.NoError(t, err)

	content := []byte("<?php foo($a,$b);")
	_, ok := c.Lookup("src/a.php", content)
	assert.False(t, ok, "empty cache")

	require.NoError(t, c.Store("src/a.php", content, sampleDiagnostics()))

	got, ok := c.Lookup("src/a.php", content)
	require.True(t, ok)
	assert.Equal(t, sampleDiagnostics(), got)

	_, ok = c.Lookup("src/a.php", []byte("<?php foo( $a, $b );"))
	assert.False(t, ok, "content changed")

	_, ok = c.Lookup("src/b.php", content)
	assert.False(t, ok, "other path")
}

func TestCache_StoreEmpty(t *testing.T) {
	t.Parallel()

	c, err := cache.Open(t.TempDir(), "fp")
	require.NoError(t, err)

	require.NoError(t, c.Store("clean.php", []byte("<?php"), nil))

	got, ok := c.Lookup("clean.php", []byte("<?php"))
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestCache_FingerprintIsolation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := []byte("<?php foo($a);")

	first, err := cache.Open(dir, "one")
	require.NoError(t, err)
	require.NoError(t, first.Store("a.php", content, sampleDiagnostics()))

	second, err := cache.Open(dir, "two")
	require.NoError(t, err)
	_, ok := second.Lookup("a.php", content)
	assert.False(t, ok)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := cache.Open(dir, "fp")
	require.NoError(t, err)

	content := []byte("<?php")
	require.NoError(t, c.Store("a.php", content, sampleDiagnostics()))

	entries, err := filepath.Glob(filepath.Join(dir, "results", "*", "*.mp"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(entries[0], []byte("not msgpack"), 0o600))

	_, ok := c.Lookup("a.php", content)
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "cache")
	c, err := cache.Open(dir, "fp")
	require.NoError(t, err)
	require.NoError(t, c.Store("a.php", []byte("x"), nil))

	require.NoError(t, c.Clear())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, cache.Clear(dir), "clearing twice is fine")
	assert.Error(t, cache.Clear(""))
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := cache.DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "phpsniff"), dir)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	fp1, err := cache.Fingerprint("1.0.0", base)
	require.NoError(t, err)

	same, err := cache.Fingerprint("1.0.0", config.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, fp1, same)

	other, err := cache.Fingerprint("1.0.1", base)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, other, "version changes fingerprint")

	disabled := config.NewConfig()
	disabled.DisableRules = []string{"BH001"}
	fp2, err := cache.Fingerprint("1.0.0", disabled)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp2, "CLI rule selection changes fingerprint")

	sev := "warning"
	configured := config.NewConfig()
	configured.Rules["BH001"] = config.RuleConfig{Severity: &sev}
	fp3, err := cache.Fingerprint("1.0.0", configured)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3, "rule config changes fingerprint")
}
