package ports

import (
	"context"

	"tradeJournal/internal/domain"
)

// TradeRepository defines the interface for the trade collection.
// Trades are kept most-recent-first: new trades are prepended.
type TradeRepository interface {
	// Add prepends a single trade to the collection.
	Add(ctx context.Context, trade *domain.Trade) error
	// AddMany prepends a batch of trades, keeping the batch order, in one step.
	AddMany(ctx context.Context, trades []*domain.Trade) error
	// Remove deletes the trade with the given ID.
	// Returns ErrNotFound if no such trade exists.
	Remove(ctx context.Context, id string) error
	// List returns a copy of the collection in insertion (most-recent-first) order.
	List(ctx context.Context) ([]*domain.Trade, error)
	// Count returns the number of trades in the collection.
	Count(ctx context.Context) (int, error)
}
