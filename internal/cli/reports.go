package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tradeJournal/internal/analytics"
)

func newStatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [trades.csv]",
		Short: "Print dashboard statistics and the performance breakdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, opts, func(ctx context.Context, deps *appDependency) error {
				out := cmd.OutOrStdout()
				if err := deps.loadJournal(ctx, out, args); err != nil {
					return err
				}

				stats, err := deps.service.Stats(ctx)
				if err != nil {
					return err
				}
				perf, err := deps.service.Performance(ctx)
				if err != nil {
					return err
				}
				printStats(out, stats, perf)
				return nil
			})
		},
	}
}

func printStats(out io.Writer, s analytics.DashboardStats, p *analytics.PerformanceMetrics) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Total Trades\t%d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins / Losses\t%d / %d\n", s.Wins, s.Losses)
	fmt.Fprintf(w, "Win Rate\t%.1f%%\n", s.WinRate)
	fmt.Fprintf(w, "Net P&L\t%.2f\n", s.NetPnL)
	fmt.Fprintf(w, "Profit Factor\t%.2f\n", s.ProfitFactor)
	fmt.Fprintf(w, "Avg Win / Avg Loss\t%.2f / %.2f\n", s.AvgWin, s.AvgLoss)
	fmt.Fprintf(w, "Risk/Reward\t%.2f\n", s.RiskReward)
	fmt.Fprintf(w, "Best / Worst Trade\t%.2f / %.2f\n", s.BestTrade, s.WorstTrade)
	fmt.Fprintf(w, "Expectancy\t%.2f\n", s.Expectancy)
	fmt.Fprintf(w, "Max Drawdown\t%.2f\n", p.MaxDrawdown)
	fmt.Fprintf(w, "Longest Win / Loss Streak\t%d / %d\n", p.MaxConsecutiveWins, p.MaxConsecutiveLosses)
	w.Flush()

	if len(p.Setups) > 0 {
		fmt.Fprintln(out, "\nSetups")
		w = tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
		fmt.Fprintln(w, "Setup\tTrades\tWins\tWin Rate\tNet P&L\t")
		for _, b := range p.Setups {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\t%.2f\t\n", b.Setup, b.Trades, b.Wins, b.WinRate, b.NetPnL)
		}
		w.Flush()
	}

	if len(p.MonthlyReturns) > 0 {
		fmt.Fprintln(out, "\nMonthly")
		w = tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
		fmt.Fprintln(w, "Month\tTrades\tNet P&L\t")
		for _, m := range p.MonthlyReturns {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t\n", m.Month, m.Trades, m.Return)
		}
		w.Flush()
	}
}

func newEquityCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "equity [trades.csv]",
		Short: "Print the cumulative P&L curve",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, opts, func(ctx context.Context, deps *appDependency) error {
				out := cmd.OutOrStdout()
				if err := deps.loadJournal(ctx, out, args); err != nil {
					return err
				}

				curve, err := deps.service.EquityCurve(ctx)
				if err != nil {
					return err
				}
				if len(curve) == 0 {
					fmt.Fprintln(out, "Not enough data to display equity curve.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
				fmt.Fprintln(w, "Date\tSymbol\tTrade P&L\tEquity\t")
				for _, p := range curve {
					fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t\n", p.Date, p.Symbol, p.TradePnL, p.Equity)
				}
				return w.Flush()
			})
		},
	}
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export [trades.csv]",
		Short: "Normalise a broker CSV into the journal export format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, opts, func(ctx context.Context, deps *appDependency) error {
				out := cmd.OutOrStdout()
				if err := deps.loadJournal(ctx, out, args); err != nil {
					return err
				}

				file, err := deps.service.ExportCSV(ctx)
				if err != nil {
					return err
				}

				path := filepath.Join(outDir, file.Filename)
				if err := os.WriteFile(path, []byte(file.Content), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintf(out, "Exported journal to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "directory to write the export into")
	return cmd
}
