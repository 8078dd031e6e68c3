// Package runner discovers PHP sources and lints them concurrently.
package runner

import (
	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/source"
)

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified files or directories.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match globs. If empty, the process working directory is used.
	WorkingDir string

	// Extensions are the file extensions linted as PHP, with a leading dot.
	// Defaults to config.DefaultExtensions.
	Extensions []string

	// Markdown also collects .md and .markdown files.
	Markdown bool

	// DetectLanguage inspects extensionless files for a PHP shebang.
	DetectLanguage bool

	// IncludeGlobs restrict discovery to matching paths, relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of files linted at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig builds runner options for paths from a resolved config.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Config: cfg}
	if cfg == nil {
		return opts
	}
	opts.Extensions = cfg.Extensions
	opts.Markdown = cfg.Markdown
	opts.DetectLanguage = cfg.DetectLanguage
	opts.ExcludeGlobs = cfg.Ignore
	opts.Jobs = cfg.Jobs
	return opts
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) detectOptions() source.Options {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = config.DefaultExtensions
	}
	return source.Options{
		Extensions: exts,
		Markdown:   o.Markdown,
		Shebang:    o.DetectLanguage,
	}
}
