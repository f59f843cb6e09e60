package domain

import "math"

// Trade represents one closed round-trip trade in the journal.
// Computed fields (PNL, ReturnPercent, Status) are derived once at creation
// by the P&L calculator and never mutated afterwards.
type Trade struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`     // Upper-case ticker (e.g., "AAPL")
	EntryDate  string    `json:"entryDate"`  // YYYY-MM-DD
	ExitDate   string    `json:"exitDate"`   // YYYY-MM-DD
	Direction  Direction `json:"direction"`  // Long or Short
	EntryPrice float64   `json:"entryPrice"` // Price at which the position was entered
	ExitPrice  float64   `json:"exitPrice"`  // Price at which the position was exited
	Quantity   float64   `json:"quantity"`   // Size of the position, fractional allowed
	Fees       float64   `json:"fees"`       // Flat deduction from gross P&L
	Setup      string    `json:"setup"`      // Strategy/pattern label, may be empty
	Notes      string    `json:"notes"`

	// Computed fields
	PNL           float64     `json:"pnl"`
	ReturnPercent float64     `json:"returnPercent"`
	Status        TradeStatus `json:"status"`
}

// TradeInput holds the user-supplied fields of a trade before its outcome is computed.
type TradeInput struct {
	Symbol     string    `json:"symbol" validate:"required"`
	EntryDate  string    `json:"entryDate" validate:"required,datetime=2006-01-02"`
	ExitDate   string    `json:"exitDate" validate:"required,datetime=2006-01-02"`
	Direction  Direction `json:"direction" validate:"required,oneof=Long Short"`
	EntryPrice float64   `json:"entryPrice" validate:"gt=0"`
	ExitPrice  float64   `json:"exitPrice" validate:"gte=0"`
	Quantity   float64   `json:"quantity" validate:"gt=0"`
	Fees       float64   `json:"fees" validate:"gte=0"`
	Setup      string    `json:"setup"`
	Notes      string    `json:"notes"`
}

// IsWin reports whether the trade closed with a positive net P&L.
func (t *Trade) IsWin() bool {
	return t.Status == StatusWin
}

// Finite reports whether the computed P&L and return percent are finite
// numbers. Overflowing inputs produce infinities that cannot be encoded.
func (t *Trade) Finite() bool {
	return !math.IsInf(t.PNL, 0) && !math.IsNaN(t.PNL) &&
		!math.IsInf(t.ReturnPercent, 0) && !math.IsNaN(t.ReturnPercent)
}

// Notional returns the entry value of the trade (entry price times quantity).
func (t *Trade) Notional() float64 {
	return t.EntryPrice * t.Quantity
}
