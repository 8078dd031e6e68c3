package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/phptoken"
)

// ErrRulePanic marks a rule that panicked while processing a file.
var ErrRulePanic = errors.New("rule panicked")

// cancelCheckInterval is how many tokens are dispatched between context checks.
const cancelCheckInterval = 1024

// FileResult contains the results of linting a single file.
type FileResult struct {
	// File is the token stream. It is nil for Markdown documents, which
	// are linted block by block, and for cached results.
	File *phptoken.File

	// Diagnostics contains all issues found, sorted by position.
	Diagnostics []Diagnostic

	// Suppressed counts diagnostics dropped by phpcs: comments.
	Suppressed int

	// RuleErrors contains any errors from rule execution, keyed by rule ID.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// CountBySeverity returns the number of diagnostics with the given severity.
func (fr *FileResult) CountBySeverity(sev config.Severity) int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.Severity == sev {
			count++
		}
	}
	return count
}

// Engine coordinates tokenization and rule dispatch.
type Engine struct {
	// Tokenizer turns content into tokens.
	Tokenizer Tokenizer

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given tokenizer and registry.
func NewEngine(tokenizer Tokenizer, registry *Registry) *Engine {
	return &Engine{
		Tokenizer: tokenizer,
		Registry:  registry,
	}
}

// LintFile tokenizes and lints a PHP file.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	return e.lint(ctx, path, content, cfg, phptoken.Options{}, 0)
}

// LintSnippet lints PHP code that has no opening tag, such as a Markdown
// fence. Diagnostic lines are shifted by lineOffset.
func (e *Engine) LintSnippet(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	lineOffset int,
) (*FileResult, error) {
	return e.lint(ctx, path, content, cfg, phptoken.Options{StartInPHP: true}, lineOffset)
}

// ruleRun is one rule's state for one file.
type ruleRun struct {
	resolved ResolvedRule
	rule     TokenRule
	ctx      *RuleContext
	err      error
}

func (r *ruleRun) process(pos int) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: token %d: %v", ErrRulePanic, pos, p)
		}
	}()
	r.rule.Process(r.ctx, pos)
	return nil
}

func (e *Engine) lint(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts phptoken.Options,
	lineOffset int,
) (*FileResult, error) {
	tokenizer := e.Tokenizer
	if tokenizer == nil {
		tokenizer = PHPTokenizer
	}

	file, err := tokenizer.Tokenize(path, content, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	result := &FileResult{
		File:       file,
		RuleErrors: make(map[string]error),
	}

	runs, dispatch := e.prepare(ctx, file, cfg)

	for pos := range file.Len() {
		if pos%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return result, fmt.Errorf("linting cancelled: %w", err)
			}
		}

		for _, run := range dispatch[file.Kind(pos)] {
			if run.err != nil {
				continue
			}
			run.err = run.process(pos)
		}
	}

	var diags []Diagnostic
	for _, run := range runs {
		if run.err != nil {
			result.RuleErrors[run.resolved.Rule.ID()] = run.err
			continue
		}
		for _, d := range run.ctx.Diagnostics() {
			d.Severity = run.resolved.Severity
			if d.FilePath == "" {
				d.FilePath = path
			}
			if d.RuleID == "" {
				d.RuleID = run.resolved.Rule.ID()
			}
			if d.RuleName == "" {
				d.RuleName = run.resolved.Rule.Name()
			}
			diags = append(diags, d)
		}
	}

	diags, result.Suppressed = collectSuppressions(file, e.Registry).filter(diags)

	for i := range diags {
		if diags[i].Line > 0 {
			diags[i].Line += lineOffset
			diags[i].EndLine += lineOffset
		}
	}

	SortDiagnostics(diags)
	result.Diagnostics = diags

	return result, nil
}

// prepare builds one run per enabled token rule and the kind dispatch table.
func (e *Engine) prepare(
	ctx context.Context,
	file *phptoken.File,
	cfg *config.Config,
) ([]*ruleRun, map[phptoken.Kind][]*ruleRun) {
	var runs []*ruleRun
	dispatch := make(map[phptoken.Kind][]*ruleRun)

	registry := e.Registry
	if registry == nil {
		registry = DefaultRegistry
	}

	for _, rr := range ResolveRules(registry, cfg) {
		tr, ok := rr.Rule.(TokenRule)
		if !ok {
			continue
		}

		ruleCtx := NewRuleContext(ctx, file, cfg, rr.Config)
		ruleCtx.Rule = rr.Rule
		ruleCtx.Registry = registry

		run := &ruleRun{resolved: rr, rule: tr, ctx: ruleCtx}
		runs = append(runs, run)

		for _, kind := range slices.Compact(slices.Sorted(slices.Values(tr.Register()))) {
			dispatch[kind] = append(dispatch[kind], run)
		}
	}

	return runs, dispatch
}

// SortDiagnostics orders diagnostics by line, column, rule, then code.
// Diagnostics at the same spot keep their report order.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.FilePath, b.FilePath),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.RuleID, b.RuleID),
			cmp.Compare(a.Code, b.Code),
		)
	})
}
