package analytics

import (
	"sort"
	"strings"

	"tradeJournal/internal/domain"
)

// PerformanceMetrics holds the journal metrics that go beyond the dashboard stats.
type PerformanceMetrics struct {
	MaxDrawdown          float64            `json:"maxDrawdown"` // Largest peak-to-trough drop of cumulative P&L
	Drawdowns            []Drawdown         `json:"drawdowns"`
	MaxConsecutiveWins   int                `json:"maxConsecutiveWins"`
	MaxConsecutiveLosses int                `json:"maxConsecutiveLosses"`
	MonthlyReturns       []MonthlyReturn    `json:"monthlyReturns"`
	Setups               []SetupBreakdown   `json:"setups"`
	Symbols              map[string]float64 `json:"symbols"` // Net P&L per symbol
}

// Drawdown represents a drawdown period of the equity curve.
type Drawdown struct {
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"` // Empty while not yet recovered
	Peak      float64 `json:"peak"`
	Depth     float64 `json:"depth"` // Deepest drop below Peak
}

// MonthlyReturn is the net P&L of trades that exited in a calendar month.
type MonthlyReturn struct {
	Month  string  `json:"month"` // YYYY-MM
	Return float64 `json:"return"`
	Trades int     `json:"trades"`
}

// SetupBreakdown aggregates the trades sharing a setup label.
type SetupBreakdown struct {
	Setup   string  `json:"setup"`
	Trades  int     `json:"trades"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
	NetPnL  float64 `json:"netPnL"`
}

const untaggedSetup = "(none)"

// AnalyzePerformance walks the trades in exit-date order and computes drawdowns,
// win/loss streaks, monthly returns and per-setup results.
// Wins and losses follow ComputeStats: a P&L of 0 counts as a loss.
func AnalyzePerformance(trades []*domain.Trade) *PerformanceMetrics {
	metrics := &PerformanceMetrics{
		Drawdowns:      make([]Drawdown, 0),
		MonthlyReturns: make([]MonthlyReturn, 0),
		Setups:         make([]SetupBreakdown, 0),
		Symbols:        make(map[string]float64),
	}
	if len(trades) == 0 {
		return metrics
	}

	var equity, peak float64
	var current *Drawdown
	var consecutiveWins, consecutiveLosses int
	months := make(map[string]*MonthlyReturn)
	setups := make(map[string]*SetupBreakdown)

	for _, trade := range Chronological(trades) {
		if trade.PNL > 0 {
			consecutiveWins++
			consecutiveLosses = 0
		} else {
			consecutiveLosses++
			consecutiveWins = 0
		}
		metrics.MaxConsecutiveWins = max(metrics.MaxConsecutiveWins, consecutiveWins)
		metrics.MaxConsecutiveLosses = max(metrics.MaxConsecutiveLosses, consecutiveLosses)

		equity += trade.PNL
		if equity >= peak {
			peak = equity
			if current != nil {
				current.EndDate = trade.ExitDate
				metrics.Drawdowns = append(metrics.Drawdowns, *current)
				current = nil
			}
		} else {
			depth := peak - equity
			if current == nil {
				current = &Drawdown{StartDate: trade.ExitDate, Peak: peak}
			}
			current.Depth = max(current.Depth, depth)
			metrics.MaxDrawdown = max(metrics.MaxDrawdown, depth)
		}

		month := monthKey(trade.ExitDate)
		mr, ok := months[month]
		if !ok {
			mr = &MonthlyReturn{Month: month}
			months[month] = mr
		}
		mr.Return += trade.PNL
		mr.Trades++

		label := strings.TrimSpace(trade.Setup)
		if label == "" {
			label = untaggedSetup
		}
		sb, ok := setups[label]
		if !ok {
			sb = &SetupBreakdown{Setup: label}
			setups[label] = sb
		}
		sb.Trades++
		sb.NetPnL += trade.PNL
		if trade.PNL > 0 {
			sb.Wins++
		}

		metrics.Symbols[trade.Symbol] += trade.PNL
	}

	// Close any open drawdown
	if current != nil {
		metrics.Drawdowns = append(metrics.Drawdowns, *current)
	}

	for _, mr := range months {
		metrics.MonthlyReturns = append(metrics.MonthlyReturns, *mr)
	}
	sort.Slice(metrics.MonthlyReturns, func(i, j int) bool {
		return metrics.MonthlyReturns[i].Month < metrics.MonthlyReturns[j].Month
	})

	for _, sb := range setups {
		sb.WinRate = float64(sb.Wins) / float64(sb.Trades) * 100
		metrics.Setups = append(metrics.Setups, *sb)
	}
	// Best performing setups first
	sort.Slice(metrics.Setups, func(i, j int) bool {
		if metrics.Setups[i].NetPnL == metrics.Setups[j].NetPnL {
			return metrics.Setups[i].Setup < metrics.Setups[j].Setup
		}
		return metrics.Setups[i].NetPnL > metrics.Setups[j].NetPnL
	})

	return metrics
}

func monthKey(date string) string {
	if len(date) >= 7 {
		return date[:7]
	}
	return date
}
