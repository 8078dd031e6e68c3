package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the configuration files found for a working directory.
// Missing files are empty strings.
type ConfigPaths struct {
	// System is the machine-wide config, e.g. /etc/phpsniff/config.yaml.
	System string

	// User is the per-user config, e.g. ~/.config/phpsniff/config.yaml.
	User string

	// Project is the nearest .phpsniff.yml (or variant) above the working directory.
	Project string

	// Explicit is a config path provided via --config.
	Explicit string

	// PHPCS is a PHP_CodeSniffer ruleset next to the project, which phpsniff
	// does not read but reports so users know why it has no effect.
	PHPCS string
}

// projectConfigFiles are searched in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".phpsniff.yml",
	".phpsniff.yaml",
	".phpsniff.toml",
	"phpsniff.yml",
	"phpsniff.yaml",
	"phpsniff.toml",
}

//nolint:gochecknoglobals // Read-only lookup table.
var dirConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

//nolint:gochecknoglobals // Read-only lookup table.
var phpcsRulesetFiles = []string{".phpcs.xml", "phpcs.xml", ".phpcs.xml.dist", "phpcs.xml.dist"}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in the standard locations:
//   - system: /etc/phpsniff/config.{yaml,yml,toml}
//   - user: $XDG_CONFIG_HOME/phpsniff/config.{yaml,yml,toml}
//   - project: upward search from workDir, stopping at a VCS root or $HOME
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{
		System: findConfigInDir(systemConfigDir()),
		User:   findConfigInDir(userConfigDir()),
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = project

	projectDir := workDir
	if project != "" {
		projectDir = filepath.Dir(project)
	}
	paths.PHPCS = firstExisting(projectDir, phpcsRulesetFiles)

	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "phpsniff")
	}
	return "/etc/phpsniff"
}

func userConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "phpsniff")
}

func findConfigInDir(dir string) string {
	if dir == "" {
		return ""
	}
	return firstExisting(dir, dirConfigFiles)
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// The search stops at a VCS root, the home directory, or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if found := firstExisting(dir, projectConfigFiles); found != "" {
			return found, nil
		}

		if isVCSRoot(dir) || (homeDir != "" && dir == homeDir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
