package ports

import (
	"context"

	"tradeJournal/internal/domain"
)

// TradeAnalyst produces free-text coaching commentary for a trade collection.
// The text is lightly structured Markdown (see internal/report).
type TradeAnalyst interface {
	// Analyze reviews the trades and returns the commentary.
	// Implementations return ErrMissingCredential, ErrNoTrades, ErrEmptyAnalysis
	// or a wrapped ErrAnalysisFailed.
	Analyze(ctx context.Context, trades []*domain.Trade) (string, error)
}
