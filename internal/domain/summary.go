package domain

// TradeSummary is the reduced view of a trade sent for AI review.
type TradeSummary struct {
	Symbol    string    `json:"symbol"`
	Direction Direction `json:"direction"`
	PNL       float64   `json:"pnl"`
	Setup     string    `json:"setup"`
	Date      string    `json:"date"` // Entry date
	Notes     string    `json:"notes"`
}

// Summarize reduces trades to their review summaries, keeping order.
func Summarize(trades []*Trade) []TradeSummary {
	out := make([]TradeSummary, len(trades))
	for i, t := range trades {
		out[i] = TradeSummary{
			Symbol:    t.Symbol,
			Direction: t.Direction,
			PNL:       t.PNL,
			Setup:     t.Setup,
			Date:      t.EntryDate,
			Notes:     t.Notes,
		}
	}
	return out
}
