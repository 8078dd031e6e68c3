package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/phpsniff/internal/configloader"
	"github.com/yaklabco/phpsniff/internal/logging"
	"github.com/yaklabco/phpsniff/pkg/cache"
	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
	_ "github.com/yaklabco/phpsniff/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/phpsniff/pkg/reporter"
	"github.com/yaklabco/phpsniff/pkg/runner"
)

type lintFlags struct {
	format         string
	jobs           int
	ignore         []string
	include        []string
	extensions     []string
	enable         []string
	disable        []string
	strict         bool
	noContext      bool
	noSummary      bool
	compact        bool
	ruleFormat     string
	markdown       bool
	detectLanguage bool
	followSymlinks bool
	noCache        bool
	cacheDir       string
}

func newLintCommand(info BuildInfo, globals *globalFlags) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check PHP files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, info, globals, flags)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Check function call argument spacing in PHP files.

By default, checks every .php, .phtml, .inc, and .module file under the
current directory, skipping hidden entries. Specify paths to check specific
files or directories.

Examples:
  phpsniff lint                          # Check current directory
  phpsniff lint src/ tests/              # Check two directories
  phpsniff lint --ignore 'vendor/**'     # Skip Composer dependencies
  phpsniff lint --format checkstyle      # Checkstyle XML for CI servers
  phpsniff lint --markdown docs/         # Check PHP fences in Markdown
  phpsniff lint --strict                 # Fail on warnings too`

// cliConfig turns explicitly set flags into the highest-precedence config
// layer. Flags left at their defaults must not mask config files.
func (f *lintFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		format := config.OutputFormat(f.format)
		if !format.IsValid() {
			_, err := reporter.ParseFormat(f.format)
			return nil, usageError(err)
		}
		cfg.Format = format
	}
	if changed("rule-format") {
		ruleFormat := config.RuleFormat(f.ruleFormat)
		if !ruleFormat.IsValid() {
			return nil, usageError(fmt.Errorf("invalid --rule-format %q: must be name, id, or combined", f.ruleFormat))
		}
		cfg.RuleFormat = ruleFormat
	}
	if changed("jobs") {
		if f.jobs < 0 {
			return nil, usageError(fmt.Errorf("invalid --jobs %d: must not be negative", f.jobs))
		}
		cfg.Jobs = f.jobs
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("extensions") {
		cfg.Extensions = f.extensions
	}
	if changed("enable") {
		cfg.EnableRules = f.enable
	}
	if changed("disable") {
		cfg.DisableRules = f.disable
	}
	if changed("cache-dir") {
		cfg.Cache.Dir = f.cacheDir
	}

	cfg.Markdown = f.markdown
	cfg.DetectLanguage = f.detectLanguage
	cfg.NoCache = f.noCache

	return cfg, nil
}

func runLint(cmd *cobra.Command, args []string, info BuildInfo, globals *globalFlags, flags *lintFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return exitError(ExitInternalError, fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        globals.configPath,
		IgnoreSystemConfig:  globals.noConfig,
		IgnoreUserConfig:    globals.noConfig,
		IgnoreProjectConfig: globals.noConfig,
		CLIConfig:           cliCfg,
		Registry:            lint.DefaultRegistry,
	})
	if err != nil {
		return exitError(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config

	pipeline := lint.NewPipeline(lint.NewEngine(lint.PHPTokenizer, lint.DefaultRegistry))
	if cfg.CacheEnabled() {
		if resultCache, err := openCache(info.Version, cfg); err != nil {
			logger.Warn("result cache disabled", logging.FieldError, err)
		} else {
			pipeline.Cache = resultCache
			logger.Debug("result cache enabled", logging.FieldCache, resultCache.Dir())
		}
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir
	runOpts.IncludeGlobs = flags.include
	runOpts.FollowSymlinks = flags.followSymlinks

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(pipeline).Run(ctx, runOpts)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return usageError(err)
		}
		return exitError(ExitInternalError, errors.Join(errors.New("lint run failed"), err))
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      reporter.Format(cfg.Format),
		Color:       globals.color,
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
		ToolVersion: info.Version,
	})
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return exitError(ExitInternalError, fmt.Errorf("report results: %w", err))
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return exitError(code, ErrLintIssuesFound)
	}

	return nil
}

func openCache(version string, cfg *config.Config) (*cache.Cache, error) {
	fingerprint, err := cache.Fingerprint(version, cfg)
	if err != nil {
		return nil, err
	}
	return cache.Open(cfg.Cache.Dir, fingerprint)
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, checkstyle, summary")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only check files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil,
		"file extensions to check (default .php,.phtml,.inc,.module)")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs, names, or tags to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs, names, or tags to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when only warnings are found")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line in text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "one line per diagnostic; minified JSON and SARIF")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "also check ```php fences in Markdown files")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"inspect extensionless files for a PHP shebang")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "do not read or write the result cache")
	cmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "result cache directory")
}
