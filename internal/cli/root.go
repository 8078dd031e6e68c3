// Package cli provides the Cobra command structure for phpsniff.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/phpsniff/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	noConfig   bool
	color      string
}

// NewRootCommand creates the root phpsniff command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "phpsniff",
		Short: "A fast checker for PHP function call argument spacing",
		Long: `phpsniff checks the whitespace around the arguments of PHP function
calls: one space inside non-empty parentheses, no space before a comma,
and exactly one space after it.

It reads .php, .phtml, .inc, and .module files, optionally PHP fences in
Markdown, honours phpcs:ignore and phpcs:disable comments, and caches
results between runs.

Exit codes:
  0   no errors
  1   errors found, or files could not be linted
  2   warnings found with --strict
  64  invalid usage
  65  configuration error
  70  internal error`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if globals.debug {
				level = "debug"
				logging.SetLevel(level)
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&globals.noConfig, "no-config", false,
		"ignore system, user, and project config files")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newLintCommand(info, globals))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCacheCommand(globals))
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(globals.color, rootCmd.OutOrStdout()).ApplyToCommand(rootCmd)

	return rootCmd
}
