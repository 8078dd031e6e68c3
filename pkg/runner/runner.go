package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/phpsniff/internal/logging"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files and lints them with at most opts.Jobs in flight.
// A file that fails to read or tokenize is recorded in its FileOutcome and
// does not stop the run. Outcomes are ordered by path.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts)
}

// RunFiles lints an already discovered file list.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	slots := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return nil //nolint:nilerr // cancellation is reported after Wait
			}

			outcome := FileOutcome{Path: path}
			pr, err := r.Pipeline.ProcessFile(groupCtx, path, opts.Config)
			if err != nil {
				outcome.Error = err
				logger.Debug("lint failed", logging.FieldPath, path, logging.FieldError, err)
			} else {
				outcome.Result = pr
				if pr.CacheErr != nil {
					logger.Debug("cache store failed", logging.FieldPath, path, logging.FieldError, pr.CacheErr)
				}
				for ruleID, ruleErr := range pr.RuleErrors {
					logger.Debug("rule failed",
						logging.FieldPath, path, logging.FieldRule, ruleID, logging.FieldError, ruleErr)
				}
			}

			slots[i] = outcome
			done[i] = true
			return nil
		})
	}

	_ = group.Wait() // workers never return errors

	for i := range slots {
		if done[i] {
			result.accumulate(slots[i])
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}
