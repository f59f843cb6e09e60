package gemini

import (
	"context"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

// Noop is the analyst used when no API key is configured.
type Noop struct{}

// Analyze always reports the missing credential.
func (Noop) Analyze(ctx context.Context, trades []*domain.Trade) (string, error) {
	return "", ports.ErrMissingCredential
}
