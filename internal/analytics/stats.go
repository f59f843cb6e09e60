// Package analytics reduces a trade collection into dashboard statistics,
// an equity curve and a performance breakdown.
package analytics

import (
	"math"

	"tradeJournal/internal/domain"
)

// DashboardStats holds the aggregate metrics shown on the dashboard.
// It is recomputed from the full collection on every change.
type DashboardStats struct {
	TotalTrades  int     `json:"totalTrades"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`  // Includes breakeven trades
	WinRate      float64 `json:"winRate"` // Percentage, 0-100
	NetPnL       float64 `json:"netPnL"`
	TotalWinPnL  float64 `json:"totalWinPnL"`
	TotalLossPnL float64 `json:"totalLossPnL"` // Magnitude, never negative
	ProfitFactor float64 `json:"profitFactor"`
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"` // Magnitude, never negative
	BestTrade    float64 `json:"bestTrade"`
	WorstTrade   float64 `json:"worstTrade"`
	Expectancy   float64 `json:"expectancy"` // Probability-weighted P&L per trade
	RiskReward   float64 `json:"riskReward"` // AvgWin / AvgLoss, AvgLoss of 0 treated as 1
}

// ComputeStats aggregates the trades into DashboardStats.
// An empty collection yields all-zero stats.
// Trades with a P&L of exactly 0 are counted as losses here, even though
// their own status is Breakeven.
func ComputeStats(trades []*domain.Trade) DashboardStats {
	var stats DashboardStats
	if len(trades) == 0 {
		return stats
	}

	var lossSum float64
	stats.TotalTrades = len(trades)
	stats.BestTrade = math.Inf(-1)
	stats.WorstTrade = math.Inf(1)

	for _, trade := range trades {
		stats.NetPnL += trade.PNL
		if trade.PNL > 0 {
			stats.Wins++
			stats.TotalWinPnL += trade.PNL
		} else {
			stats.Losses++
			lossSum += trade.PNL
		}
		stats.BestTrade = math.Max(stats.BestTrade, trade.PNL)
		stats.WorstTrade = math.Min(stats.WorstTrade, trade.PNL)
	}

	total := float64(stats.TotalTrades)
	stats.TotalLossPnL = math.Abs(lossSum)
	stats.WinRate = float64(stats.Wins) / total * 100

	if stats.TotalLossPnL == 0 {
		stats.ProfitFactor = stats.TotalWinPnL
	} else {
		stats.ProfitFactor = stats.TotalWinPnL / stats.TotalLossPnL
	}

	if stats.Wins > 0 {
		stats.AvgWin = stats.TotalWinPnL / float64(stats.Wins)
	}
	if stats.Losses > 0 {
		stats.AvgLoss = stats.TotalLossPnL / float64(stats.Losses)
	}

	stats.Expectancy = stats.AvgWin*(float64(stats.Wins)/total) - stats.AvgLoss*(float64(stats.Losses)/total)

	denom := stats.AvgLoss
	if denom == 0 {
		denom = 1
	}
	stats.RiskReward = stats.AvgWin / denom

	return stats
}
