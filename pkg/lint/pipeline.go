package lint

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/fsutil"
	"github.com/yaklabco/phpsniff/pkg/source"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the file could not be tokenized.
	ErrParseFailure = errors.New("parse failure")
)

// ResultCache stores diagnostics of previously linted content.
type ResultCache interface {
	// Lookup returns the cached diagnostics for path with this content.
	Lookup(path string, content []byte) ([]Diagnostic, bool)

	// Store records diagnostics for path with this content.
	Store(path string, content []byte, diags []Diagnostic) error
}

// PipelineResult contains the result of processing a single file.
type PipelineResult struct {
	*FileResult

	// Path is the file path that was processed.
	Path string

	// Kind is how the file was linted.
	Kind source.Kind

	// Info describes the file as read from disk (nil for in-memory content).
	Info *fsutil.FileInfo

	// Content is the source that was linted, for showing context.
	Content []byte

	// Cached is true when diagnostics came from the result cache.
	Cached bool

	// CacheErr records a failure to store the result. It does not fail the file.
	CacheErr error
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.FileResult != nil && len(pr.RuleErrors) > 0:
		return "rule errors"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	case pr.Cached:
		return "ok (cached)"
	default:
		return "ok"
	}
}

// Pipeline reads a file, picks how to lint it, and consults the cache.
type Pipeline struct {
	// Engine is the lint engine used for tokenizing and rule execution.
	Engine *Engine

	// Cache is optional.
	Cache ResultCache
}

// NewPipeline creates a pipeline with the given engine and no cache.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads and lints a single file. Markdown files are linted
// fence by fence when cfg enables Markdown; everything else is PHP.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	kind := source.KindPHP
	if cfg != nil && cfg.Markdown && source.IsMarkdown(path) {
		kind = source.KindMarkdown
	}

	result, err := p.ProcessContent(ctx, path, content, kind, cfg)
	if err != nil {
		return nil, err
	}
	result.Info = info

	return result, nil
}

// ProcessContent lints in-memory content.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	kind source.Kind,
	cfg *config.Config,
) (*PipelineResult, error) {
	result := &PipelineResult{
		Path:    path,
		Kind:    kind,
		Content: content,
	}

	if p.Cache != nil {
		if diags, ok := p.Cache.Lookup(path, content); ok {
			result.FileResult = &FileResult{
				Diagnostics: diags,
				RuleErrors:  make(map[string]error),
			}
			result.Cached = true
			return result, nil
		}
	}

	var (
		fileResult *FileResult
		err        error
	)
	if kind == source.KindMarkdown {
		fileResult, err = p.lintMarkdown(ctx, path, content, cfg)
	} else {
		fileResult, err = p.Engine.LintFile(ctx, path, content, cfg)
	}
	if err != nil {
		return nil, err
	}
	result.FileResult = fileResult

	if p.Cache != nil && len(fileResult.RuleErrors) == 0 {
		result.CacheErr = p.Cache.Store(path, content, fileResult.Diagnostics)
	}

	return result, nil
}

func (p *Pipeline) lintMarkdown(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	merged := &FileResult{RuleErrors: make(map[string]error)}

	for _, block := range source.MarkdownBlocks(content) {
		res, err := p.Engine.LintSnippet(ctx, path, block.Code, cfg, block.LineOffset())
		if err != nil {
			return nil, fmt.Errorf("php block at line %d: %w", block.StartLine, err)
		}
		merged.Diagnostics = append(merged.Diagnostics, res.Diagnostics...)
		merged.Suppressed += res.Suppressed
		maps.Copy(merged.RuleErrors, res.RuleErrors)
	}

	return merged, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure)
}
