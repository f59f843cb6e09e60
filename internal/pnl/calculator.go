// Package pnl derives the outcome of a closed trade from its raw inputs.
package pnl

import (
	"strings"

	"github.com/shopspring/decimal"

	"tradeJournal/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Inputs are the raw trade values the outcome depends on.
type Inputs struct {
	Direction  domain.Direction
	EntryPrice float64
	ExitPrice  float64
	Quantity   float64
	Fees       float64
}

// Outcome holds the computed fields of a trade.
type Outcome struct {
	PNL           float64
	ReturnPercent float64
	Status        domain.TradeStatus
}

// Calculate computes net P&L, return percent and status.
// ReturnPercent is not guarded: a zero notional (entry price or quantity of 0)
// yields ±Inf or NaN. Use CalculateGuarded where that must not happen.
func Calculate(in Inputs) Outcome {
	net := netPnL(in)
	notional := decimal.NewFromFloat(in.EntryPrice).Mul(decimal.NewFromFloat(in.Quantity))

	var ret float64
	if notional.IsZero() {
		// decimal panics on division by zero; reproduce float semantics instead.
		var zero float64
		ret = net.InexactFloat64() / zero
	} else {
		ret = net.DivRound(notional, 16).Mul(hundred).InexactFloat64()
	}

	return Outcome{
		PNL:           net.InexactFloat64(),
		ReturnPercent: ret,
		Status:        statusFor(net),
	}
}

// CalculateGuarded is Calculate with ReturnPercent forced to 0 when the
// entry price or quantity is 0.
func CalculateGuarded(in Inputs) Outcome {
	if in.EntryPrice == 0 || in.Quantity == 0 {
		net := netPnL(in)
		return Outcome{PNL: net.InexactFloat64(), Status: statusFor(net)}
	}
	return Calculate(in)
}

// NewTrade builds a fully formed trade from user input.
// When guard is set the return percent is computed with CalculateGuarded.
func NewTrade(id string, in domain.TradeInput, guard bool) *domain.Trade {
	inputs := Inputs{
		Direction:  in.Direction,
		EntryPrice: in.EntryPrice,
		ExitPrice:  in.ExitPrice,
		Quantity:   in.Quantity,
		Fees:       in.Fees,
	}
	out := Calculate
	if guard {
		out = CalculateGuarded
	}
	res := out(inputs)

	return &domain.Trade{
		ID:            id,
		Symbol:        strings.ToUpper(strings.TrimSpace(in.Symbol)),
		EntryDate:     in.EntryDate,
		ExitDate:      in.ExitDate,
		Direction:     in.Direction,
		EntryPrice:    in.EntryPrice,
		ExitPrice:     in.ExitPrice,
		Quantity:      in.Quantity,
		Fees:          in.Fees,
		Setup:         in.Setup,
		Notes:         in.Notes,
		PNL:           res.PNL,
		ReturnPercent: res.ReturnPercent,
		Status:        res.Status,
	}
}

func netPnL(in Inputs) decimal.Decimal {
	entry := decimal.NewFromFloat(in.EntryPrice)
	exit := decimal.NewFromFloat(in.ExitPrice)
	qty := decimal.NewFromFloat(in.Quantity)

	var gross decimal.Decimal
	if in.Direction == domain.Short {
		gross = entry.Sub(exit).Mul(qty)
	} else {
		gross = exit.Sub(entry).Mul(qty)
	}
	return gross.Sub(decimal.NewFromFloat(in.Fees))
}

func statusFor(net decimal.Decimal) domain.TradeStatus {
	switch net.Sign() {
	case 1:
		return domain.StatusWin
	case -1:
		return domain.StatusLoss
	default:
		return domain.StatusBreakeven
	}
}
