// Package memory provides an in-process implementation of ports.TradeRepository.
// The journal lives for the lifetime of the process; nothing is persisted.
package memory

import (
	"context"
	"fmt"
	"sync"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

// Repository implements ports.TradeRepository with a mutex-guarded slice kept
// most-recent-first.
type Repository struct {
	mu     sync.RWMutex
	trades []*domain.Trade
	logger ports.Logger
}

// Config holds configuration for the in-memory repository.
type Config struct {
	Logger   ports.Logger
	Capacity int // Initial slice capacity hint
}

// NewRepository creates a new, empty in-memory repository.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for memory repository")
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 64
	}
	cfg.Logger.Debug(context.Background(), "In-memory trade repository initialized", map[string]interface{}{"capacity": capacity})
	return &Repository{
		trades: make([]*domain.Trade, 0, capacity),
		logger: cfg.Logger,
	}, nil
}

// Add prepends a single trade.
func (r *Repository) Add(ctx context.Context, trade *domain.Trade) error {
	if trade == nil {
		return fmt.Errorf("%w: nil trade", ports.ErrInvalidRequest)
	}
	return r.AddMany(ctx, []*domain.Trade{trade})
}

// AddMany prepends the batch in one step, keeping the batch order ahead of
// the existing trades.
func (r *Repository) AddMany(ctx context.Context, trades []*domain.Trade) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(trades) == 0 {
		return nil
	}

	batch := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if t == nil {
			return fmt.Errorf("%w: nil trade in batch", ports.ErrInvalidRequest)
		}
		c := *t
		batch = append(batch, &c)
	}

	r.mu.Lock()
	r.trades = append(batch, r.trades...)
	total := len(r.trades)
	r.mu.Unlock()

	r.logger.Debug(ctx, "Trades stored", map[string]interface{}{"added": len(batch), "total": total})
	return nil
}

// Remove deletes the trade with the given ID, or returns ports.ErrNotFound.
func (r *Repository) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.trades {
		if t.ID == id {
			r.trades = append(r.trades[:i:i], r.trades[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("trade %s: %w", id, ports.ErrNotFound)
}

// List returns copies of all trades, most recent first.
func (r *Repository) List(ctx context.Context) ([]*domain.Trade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Trade, len(r.trades))
	for i, t := range r.trades {
		c := *t
		out[i] = &c
	}
	return out, nil
}

// Count returns the number of stored trades.
func (r *Repository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trades), nil
}
