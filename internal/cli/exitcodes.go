package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/phpsniff/pkg/runner"
)

// Exit codes for phpsniff.
const (
	// ExitSuccess indicates successful execution with no errors.
	ExitSuccess = 0

	// ExitLintErrors indicates lint found errors or could not lint a file.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint found warnings in strict mode.
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ErrLintIssuesFound is returned when lint issues decide the exit code.
var ErrLintIssuesFound = errors.New("lint issues found")

// ExitError carries the process exit code for err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitError(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

func usageError(err error) error {
	return exitError(ExitInvalidUsage, err)
}

// ExitCode maps an error returned by the root command to a process exit
// code. Errors without an ExitError come from cobra's own argument and
// command parsing, so they are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInvalidUsage
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() || result.Stats.FilesErrored > 0 {
		return ExitLintErrors
	}

	if strict && result.HasWarnings() {
		return ExitLintWarnings
	}

	return ExitSuccess
}
