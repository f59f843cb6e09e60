// Package cli implements the journal command line: an HTTP server plus
// one-shot reports over CSV trade files.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	seed     bool
	logLevel string
}

// NewRootCommand builds the journal command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "journal",
		Short:         "Trade journal analytics",
		Long:          "Record trades, import broker CSV exports and review performance statistics, equity curve and AI commentary.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVar(&opts.seed, "seed", false, "load the demo trades before running the command")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(opts),
		newStatsCommand(opts),
		newEquityCommand(opts),
		newExportCommand(opts),
		newSizeCommand(opts),
		newAnalyzeCommand(opts),
	)
	return root
}

// Execute runs the journal command line.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// withDeps wires the application for a command and closes it afterwards.
func withDeps(cmd *cobra.Command, opts *rootOptions, run func(ctx context.Context, deps *appDependency) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	deps, err := newAppDependency(ctx, opts)
	if err != nil {
		return err
	}
	defer deps.Close()
	return run(ctx, deps)
}
