// Package cache stores lint results on disk so unchanged files are not
// linted again. Entries are msgpack-encoded and keyed by a SHA-256 digest of
// the tool version, the effective configuration, the path, and the content.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/fsutil"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

// schemaVersion is bumped whenever the entry layout changes.
const schemaVersion uint16 = 1

// appName is the cache directory name under $XDG_CACHE_HOME.
const appName = "phpsniff"

// entry is the on-disk record for one linted file.
type entry struct {
	Schema      uint16            `msgpack:"schema"`
	Path        string            `msgpack:"path"`
	Diagnostics []lint.Diagnostic `msgpack:"diagnostics"`
}

// Cache is a directory of result entries. It is safe for concurrent use;
// writes are atomic renames.
type Cache struct {
	dir         string
	fingerprint string
}

// DefaultDir returns $XDG_CACHE_HOME/phpsniff, falling back to ~/.cache/phpsniff.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate cache directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, appName), nil
}

// Open returns a cache rooted at dir (DefaultDir when empty) whose entries
// are only valid for the given fingerprint.
func Open(dir, fingerprint string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, fsutil.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir, fingerprint: fingerprint}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

// Fingerprint digests everything besides path and content that changes what
// a lint run reports.
func Fingerprint(version string, cfg *config.Config) (string, error) {
	h := sha256.New()
	fmt.Fprintf(h, "phpsniff %s\x00", version)

	if cfg != nil {
		data, err := cfg.ToYAML()
		if err != nil {
			return "", fmt.Errorf("fingerprint config: %w", err)
		}
		h.Write(data)

		enable := slices.Sorted(slices.Values(cfg.EnableRules))
		disable := slices.Sorted(slices.Values(cfg.DisableRules))
		fmt.Fprintf(h, "\x00enable=%s\x00disable=%s",
			strings.Join(enable, ","), strings.Join(disable, ","))
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Cache) key(path string, content []byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\x00%s\x00%s\x00", schemaVersion, c.fingerprint, path)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, "results", key[:2], key+".mp")
}

// Lookup returns the diagnostics stored for path with exactly this content.
// Unreadable or outdated entries count as misses.
func (c *Cache) Lookup(path string, content []byte) ([]lint.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}

	data, err := os.ReadFile(c.pathFor(c.key(path, content)))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if e.Schema != schemaVersion || e.Path != path {
		return nil, false
	}

	return e.Diagnostics, true
}

// Store records the diagnostics for path with this content.
func (c *Cache) Store(path string, content []byte, diags []lint.Diagnostic) error {
	if c == nil {
		return nil
	}

	data, err := msgpack.Marshal(&entry{
		Schema:      schemaVersion,
		Path:        path,
		Diagnostics: diags,
	})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	target := c.pathFor(c.key(path, content))
	if err := fsutil.WriteAtomic(context.Background(), target, data, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry. A missing directory is not an error.
func (c *Cache) Clear() error {
	return Clear(c.dir)
}

// Clear removes the cache directory dir.
func Clear(dir string) error {
	if dir == "" {
		return errors.New("clear cache: empty directory")
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
