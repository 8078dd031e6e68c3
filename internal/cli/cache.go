package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/phpsniff/internal/configloader"
	"github.com/yaklabco/phpsniff/internal/logging"
	"github.com/yaklabco/phpsniff/pkg/cache"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

func newCacheCommand(globals *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached lint results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir(cmd, globals)
			if err != nil {
				return err
			}
			if err := cache.Clear(dir); err != nil {
				return exitError(ExitInternalError, err)
			}
			logging.FromContext(cmd.Context()).Info("cache cleared", logging.FieldCache, dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the result cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir(cmd, globals)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	})

	return cmd
}

// cacheDir resolves the cache directory from configuration, so a cache.dir
// set in a config file or PHPSNIFF_CACHE_DIR is honoured.
func cacheDir(cmd *cobra.Command, globals *globalFlags) (string, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return "", exitError(ExitInternalError, fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        globals.configPath,
		IgnoreSystemConfig:  globals.noConfig,
		IgnoreUserConfig:    globals.noConfig,
		IgnoreProjectConfig: globals.noConfig,
		Registry:            lint.DefaultRegistry,
	})
	if err != nil {
		return "", exitError(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	if dir := loadResult.Config.Cache.Dir; dir != "" {
		return dir, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "", exitError(ExitInternalError, err)
	}
	return dir, nil
}
