package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSizeCommand(opts *rootOptions) *cobra.Command {
	var balance, risk, leverage, entry, stop, target float64

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Size a position from account risk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, opts, func(ctx context.Context, deps *appDependency) error {
				req := deps.service.SizingDefaults()
				if cmd.Flags().Changed("balance") {
					req.AccountBalance = balance
				}
				if cmd.Flags().Changed("risk") {
					req.RiskPercent = risk
				}
				if cmd.Flags().Changed("leverage") {
					req.Leverage = leverage
				}
				req.EntryPrice, req.StopLoss, req.TargetPrice = entry, stop, target

				plan, err := deps.service.SizePosition(ctx, req)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
				fmt.Fprintf(w, "Position Size\t%.0f units\n", plan.PositionSize)
				fmt.Fprintf(w, "Position Value\t%.2f\n", plan.PositionValue)
				fmt.Fprintf(w, "Capital Required\t%.2f (%.1f%% of account)\n", plan.CapitalRequired, plan.CapitalUsagePercent)
				fmt.Fprintf(w, "Risk Amount\t%.2f (%.2f per unit)\n", plan.RiskAmount, plan.RiskPerShare)
				fmt.Fprintf(w, "Potential Profit\t%.2f (%.2f per unit)\n", plan.PotentialProfit, plan.RewardPerShare)
				fmt.Fprintf(w, "Reward/Risk\t%.2f (%s)\n", plan.RiskRewardRatio, plan.Grade)
				if plan.MarginUsed {
					fmt.Fprintf(w, "Margin\t%.0fx leverage applied\n", req.Leverage)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().Float64Var(&balance, "balance", 0, "account balance (default from SIZER_ACCOUNT_BALANCE)")
	cmd.Flags().Float64Var(&risk, "risk", 0, "percent of the balance to risk (default from SIZER_RISK_PERCENT)")
	cmd.Flags().Float64Var(&leverage, "leverage", 0, "leverage multiplier (default from SIZER_LEVERAGE)")
	cmd.Flags().Float64Var(&entry, "entry", 0, "entry price")
	cmd.Flags().Float64Var(&stop, "stop", 0, "stop loss price")
	cmd.Flags().Float64Var(&target, "target", 0, "target price")
	_ = cmd.MarkFlagRequired("entry")
	_ = cmd.MarkFlagRequired("stop")
	return cmd
}
