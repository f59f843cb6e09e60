package cli

import (
	"context"

	"github.com/spf13/cobra"

	"tradeJournal/internal/report"
)

func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "analyze [trades.csv]",
		Short: "Ask the AI mentor to review the journal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, opts, func(ctx context.Context, deps *appDependency) error {
				out := cmd.OutOrStdout()
				if err := deps.loadJournal(ctx, out, args); err != nil {
					return err
				}

				analysis := deps.service.Analyze(ctx)
				if raw {
					_, err := out.Write([]byte(analysis.Text + "\n"))
					return err
				}
				return report.RenderText(out, analysis.Blocks)
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the Markdown as returned")
	return cmd
}
