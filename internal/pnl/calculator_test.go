package pnl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeJournal/internal/domain"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		in         Inputs
		wantPNL    float64
		wantReturn float64
		wantStatus domain.TradeStatus
	}{
		{
			name:       "long win net of fees",
			in:         Inputs{Direction: domain.Long, EntryPrice: 150, ExitPrice: 155, Quantity: 100, Fees: 2},
			wantPNL:    498,
			wantReturn: 3.32,
			wantStatus: domain.StatusWin,
		},
		{
			name:       "short loss",
			in:         Inputs{Direction: domain.Short, EntryPrice: 250, ExitPrice: 255, Quantity: 50, Fees: 2},
			wantPNL:    -252,
			wantReturn: -2.016,
			wantStatus: domain.StatusLoss,
		},
		{
			name:       "short win",
			in:         Inputs{Direction: domain.Short, EntryPrice: 100, ExitPrice: 90, Quantity: 2, Fees: 0},
			wantPNL:    20,
			wantReturn: 10,
			wantStatus: domain.StatusWin,
		},
		{
			name:       "fees eat the gain exactly",
			in:         Inputs{Direction: domain.Long, EntryPrice: 10, ExitPrice: 11, Quantity: 1, Fees: 1},
			wantPNL:    0,
			wantReturn: 0,
			wantStatus: domain.StatusBreakeven,
		},
		{
			name:       "fractional quantity keeps decimal precision",
			in:         Inputs{Direction: domain.Long, EntryPrice: 100.2, ExitPrice: 110.1, Quantity: 3, Fees: 0},
			wantPNL:    29.7,
			wantReturn: 9.880239520958084,
			wantStatus: domain.StatusWin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Calculate(tt.in)
			assert.Equal(t, tt.wantPNL, out.PNL)
			assert.InDelta(t, tt.wantReturn, out.ReturnPercent, 1e-9)
			assert.Equal(t, tt.wantStatus, out.Status)
		})
	}
}

func TestCalculate_ZeroNotionalIsUnguarded(t *testing.T) {
	out := Calculate(Inputs{Direction: domain.Long, EntryPrice: 0, ExitPrice: 10, Quantity: 1})
	assert.Equal(t, 10.0, out.PNL)
	assert.True(t, math.IsInf(out.ReturnPercent, 1), "expected +Inf, got %v", out.ReturnPercent)

	out = Calculate(Inputs{Direction: domain.Long, EntryPrice: 0, ExitPrice: 0, Quantity: 1})
	assert.True(t, math.IsNaN(out.ReturnPercent))
	assert.Equal(t, domain.StatusBreakeven, out.Status)
}

func TestCalculateGuarded(t *testing.T) {
	out := CalculateGuarded(Inputs{Direction: domain.Long, EntryPrice: 0, ExitPrice: 10, Quantity: 1})
	assert.Equal(t, 10.0, out.PNL)
	assert.Equal(t, 0.0, out.ReturnPercent)
	assert.Equal(t, domain.StatusWin, out.Status)

	out = CalculateGuarded(Inputs{Direction: domain.Long, EntryPrice: 100, ExitPrice: 110, Quantity: 10, Fees: 1})
	assert.Equal(t, 99.0, out.PNL)
	assert.InDelta(t, 9.9, out.ReturnPercent, 1e-9)
}

func TestNewTrade(t *testing.T) {
	trade := NewTrade("abc", domain.TradeInput{
		Symbol:     " nvda ",
		EntryDate:  "2023-10-05",
		ExitDate:   "2023-10-06",
		Direction:  domain.Long,
		EntryPrice: 450,
		ExitPrice:  465,
		Quantity:   20,
		Fees:       1,
		Setup:      "Trend Following",
		Notes:      "Good patience",
	}, false)

	require.NotNil(t, trade)
	assert.Equal(t, "abc", trade.ID)
	assert.Equal(t, "NVDA", trade.Symbol)
	assert.Equal(t, 299.0, trade.PNL)
	assert.Equal(t, domain.StatusWin, trade.Status)
	assert.Equal(t, "Trend Following", trade.Setup)
	assert.InDelta(t, 299.0/9000.0*100, trade.ReturnPercent, 1e-9)
}

// The sign of PNL always determines the status, for every direction.
func TestCalculate_StatusMatchesSign(t *testing.T) {
	for _, dir := range []domain.Direction{domain.Long, domain.Short} {
		for _, exit := range []float64{90, 99.5, 100, 100.5, 110} {
			out := Calculate(Inputs{Direction: dir, EntryPrice: 100, ExitPrice: exit, Quantity: 3, Fees: 1.5})
			gross := (exit - 100) * 3
			if dir == domain.Short {
				gross = -gross
			}
			assert.InDelta(t, gross-1.5, out.PNL, 1e-9)
			switch {
			case out.PNL > 0:
				assert.Equal(t, domain.StatusWin, out.Status)
			case out.PNL < 0:
				assert.Equal(t, domain.StatusLoss, out.Status)
			default:
				assert.Equal(t, domain.StatusBreakeven, out.Status)
			}
		}
	}
}
