// Package configloader finds, parses, merges, and validates phpsniff
// configuration from files, the environment, and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts.
	// Defaults to the process working directory.
	WorkingDir string

	// ExplicitPath is a config file given with --config. It is loaded in
	// addition to, and on top of, the discovered files.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds values from command-line flags. They take highest precedence.
	CLIConfig *config.Config

	// Registry resolves rule names, aliases, and tags. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult contains the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config

	Paths *ConfigPaths

	// LoadedFrom lists the files that were loaded, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal issues found while loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence, highest first:
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (PHPSNIFF_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.phpsniff.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/phpsniff/config.yaml)
//  6. System config (/etc/phpsniff/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if paths.PHPCS != "" && !opts.IgnoreProjectConfig {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found %s; phpsniff does not read PHP_CodeSniffer rulesets", paths.PHPCS))
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, registry, result)
	cfg.EnableRules = expandRuleList(registry, cfg.EnableRules)
	cfg.DisableRules = expandRuleList(registry, cfg.DisableRules)

	validation := ValidateWithRegistry(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile parses one YAML or TOML file and validates it on its own,
// so that errors name the file they come from. Unknown-rule warnings are
// left to the final validation pass.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.Parse(content, config.FileFormatFor(path))
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	validation := ValidateWithFile(cfg, nil, path)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	return cfg, nil
}
