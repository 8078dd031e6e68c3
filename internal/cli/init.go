package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/phpsniff/internal/logging"
	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/fsutil"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

// errInitDeclined is returned when the user answers no to the overwrite prompt.
var errInitDeclined = errors.New("not overwriting existing configuration file")

// stdinIsTerminal reports whether overwrite confirmation can be asked for.
//
//nolint:gochecknoglobals // Replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a phpsniff configuration file",
		Long: `Create a .phpsniff.yml configuration file in the current directory
documenting every rule with its default severity.

When the file exists and stdin is a terminal, phpsniff asks before
overwriting it; otherwise --force is required.

Examples:
  phpsniff init                      Create .phpsniff.yml
  phpsniff init --format toml        Create .phpsniff.toml instead
  phpsniff init --output ci.yml      Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .phpsniff.yml or .phpsniff.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	format := config.FileFormat(flags.format)
	if format != config.FileFormatYAML && format != config.FileFormatTOML {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or toml", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".phpsniff.yml"
		if format == config.FileFormatTOML {
			outputPath = ".phpsniff.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return exitError(ExitInternalError, fmt.Errorf("resolve path: %w", err))
	}

	if fsutil.Exists(absPath) && !flags.force {
		if !stdinIsTerminal() {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Overwrite %s?", outputPath))
		if err != nil {
			return exitError(ExitInternalError, fmt.Errorf("read answer: %w", err))
		}
		if !ok {
			return usageError(errInitDeclined)
		}
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Format: format,
		Rules:  templateRules(lint.DefaultRegistry),
	})

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, fsutil.DefaultFileMode); err != nil {
		return exitError(ExitInternalError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'phpsniff rules' to see all available rules")

	return nil
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
