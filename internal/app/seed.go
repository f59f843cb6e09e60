package app

import (
	"context"
	"fmt"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/pnl"
)

// demoTrades are the sample trades a fresh journal can be seeded with.
var demoTrades = []domain.TradeInput{
	{Symbol: "AAPL", EntryDate: "2023-10-01", ExitDate: "2023-10-02", Direction: domain.Long, EntryPrice: 150, ExitPrice: 155, Quantity: 100, Fees: 2, Setup: "Breakout", Notes: "Strong volume on entry"},
	{Symbol: "TSLA", EntryDate: "2023-10-03", ExitDate: "2023-10-03", Direction: domain.Short, EntryPrice: 250, ExitPrice: 255, Quantity: 50, Fees: 2, Setup: "Reversal", Notes: "Faded too early"},
	{Symbol: "NVDA", EntryDate: "2023-10-05", ExitDate: "2023-10-06", Direction: domain.Long, EntryPrice: 450, ExitPrice: 465, Quantity: 20, Fees: 1, Setup: "Trend Following", Notes: "Good patience"},
	{Symbol: "AMD", EntryDate: "2023-10-08", ExitDate: "2023-10-08", Direction: domain.Long, EntryPrice: 110, ExitPrice: 108, Quantity: 100, Fees: 2, Setup: "Breakout", Notes: "False breakout"},
	{Symbol: "SPY", EntryDate: "2023-10-10", ExitDate: "2023-10-11", Direction: domain.Long, EntryPrice: 430, ExitPrice: 435, Quantity: 50, Fees: 1, Setup: "Bounce", Notes: "Market support hold"},
}

// Seed adds the demo trades to the journal and returns how many were added.
func (s *JournalService) Seed(ctx context.Context) (int, error) {
	trades := make([]*domain.Trade, 0, len(demoTrades))
	for _, in := range demoTrades {
		trades = append(trades, pnl.NewTrade(s.newID(), in, false))
	}
	if err := s.repo.AddMany(ctx, trades); err != nil {
		return 0, fmt.Errorf("failed to seed demo trades: %w", err)
	}
	s.logger.Info(ctx, "Demo trades seeded", map[string]interface{}{"count": len(trades)})
	return len(trades), nil
}
