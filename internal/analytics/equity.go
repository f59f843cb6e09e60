package analytics

import (
	"sort"
	"time"

	"tradeJournal/internal/domain"
)

// EquityPoint represents a point on the cumulative P&L curve.
type EquityPoint struct {
	Date     string  `json:"date"`     // Exit date of the trade
	Equity   float64 `json:"equity"`   // Running total after this trade
	TradePnL float64 `json:"tradePnl"` // This trade's own P&L
	Symbol   string  `json:"symbol"`
}

// Chronological returns a copy of trades stably sorted by ascending exit date.
// Exit dates that cannot be parsed sort first.
func Chronological(trades []*domain.Trade) []*domain.Trade {
	sorted := make([]*domain.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return exitTime(sorted[i]).Before(exitTime(sorted[j]))
	})
	return sorted
}

// NewestFirst returns a copy of trades stably sorted by descending exit date.
func NewestFirst(trades []*domain.Trade) []*domain.Trade {
	sorted := make([]*domain.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return exitTime(sorted[i]).After(exitTime(sorted[j]))
	})
	return sorted
}

// BuildEquityCurve produces one point per trade in chronological order.
// An empty collection yields an empty curve, which callers should treat as
// insufficient data rather than an error.
func BuildEquityCurve(trades []*domain.Trade) []EquityPoint {
	curve := make([]EquityPoint, 0, len(trades))

	var equity float64
	for _, trade := range Chronological(trades) {
		equity += trade.PNL
		curve = append(curve, EquityPoint{
			Date:     trade.ExitDate,
			Equity:   equity,
			TradePnL: trade.PNL,
			Symbol:   trade.Symbol,
		})
	}
	return curve
}

func exitTime(t *domain.Trade) time.Time {
	ts, err := time.Parse(domain.DateLayout, t.ExitDate)
	if err != nil {
		return time.Time{}
	}
	return ts
}
