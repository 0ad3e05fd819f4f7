/*
Package commands implements the CLI command structure for treepp.
The root command writes the report; the version subcommand prints build
information.
*/
package commands

import (
	"fmt"

	"github.com/sonemaro/treepp/cmd/treepp/app"
	"github.com/sonemaro/treepp/internal/config"
	"github.com/sonemaro/treepp/pkg/logger"
	"github.com/spf13/cobra"
)

// Options holds command-line options that apply to all commands
type Options struct {
	Config     *config.Config
	Verbose    int
	LogFormat  string
	NoProgress bool
	NoColor    bool
	Quiet      bool
}

// NewRootCommand creates the root command for the application
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "treepp [path]",
		Short: "Directory tree and text content dumper",
		Long: `treepp walks a directory, writes its tree to ` + config.OutputFileName + `
in the working directory and appends the contents of every text file.

Build artifacts, IDE metadata and version control directories are skipped.
The path defaults to the current directory.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeCommand(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runTree(cmd, root, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.Verbose, "verbose", "v",
		"verbose output (can be used multiple times)")
	rootCmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", config.DefaultLogFormat,
		"log format: json|console")
	rootCmd.PersistentFlags().BoolVar(&opts.NoProgress, "no-progress", false,
		"disable progress reporting")
	rootCmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false,
		"disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false,
		"do not print the summary")

	rootCmd.AddCommand(newVersionCommand(opts))

	return rootCmd
}

// initializeCommand loads the environment and applies explicitly set flags on top
func initializeCommand(cmd *cobra.Command, opts *Options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.LogFormat
	}
	if flags.Changed("no-progress") {
		cfg.NoProgress = opts.NoProgress
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.NoColor
	}
	if flags.Changed("quiet") {
		cfg.Quiet = opts.Quiet
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	opts.Config = &cfg
	return nil
}

func runTree(cmd *cobra.Command, root string, opts *Options) error {
	application := app.New(opts.Config, app.WithStderr(cmd.ErrOrStderr()))

	err := application.Run(root, config.OutputFileName)
	if err != nil {
		application.Logger().WithFields(logger.Fields{
			"error": err,
			"path":  root,
		}).Debug("Run failed")
	}
	return err
}
