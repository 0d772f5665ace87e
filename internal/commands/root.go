package commands

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/budgetbook/budgetbook/internal/buildinfo"
	"github.com/budgetbook/budgetbook/internal/config"
	"github.com/budgetbook/budgetbook/internal/logger"
)

type globalOptions struct {
	repo      string
	logLevel  string
	logFormat string
	noColor   bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "budgetbook",
		Short:   "Import bank CSV exports into a personal budget",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			return setupLogger(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.repo, "repo", ".", "budgetbook workspace directory")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console or json (default from config)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newInitCommand(),
		newFieldsCommand(),
		newCategoriesCommand(opts),
		newPreviewCommand(opts),
		newImportCommand(opts),
		newInboxCommand(opts),
	)

	return rootCmd
}

// setupLogger attaches a logger to the command context. Flags win over the
// workspace config. A missing or invalid config is reported later by the
// command that loads the workspace.
func setupLogger(cmd *cobra.Command, opts *globalOptions) error {
	lo := logger.Options{Level: opts.logLevel, Format: opts.logFormat, Out: cmd.ErrOrStderr()}
	if cfg, err := config.Load(filepath.Join(opts.repo, config.FileName)); err == nil {
		if lo.Level == "" {
			lo.Level = cfg.Log.Level
		}
		if lo.Format == "" {
			lo.Format = cfg.Log.Format
		}
	}

	log, err := logger.New(lo)
	if err != nil {
		return err
	}
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}
