// Package risk sizes planned positions from account risk parameters.
package risk

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

// SizerConfig holds the defaults offered for a new sizing request.
type SizerConfig struct {
	AccountBalance float64
	RiskPercent    float64
	Leverage       float64
}

// DefaultSizerConfig returns the stock defaults: 10000 balance, 1% risk, no leverage.
func DefaultSizerConfig() SizerConfig {
	return SizerConfig{AccountBalance: 10000, RiskPercent: 1, Leverage: 1}
}

// Sizer computes position plans.
type Sizer struct {
	config   SizerConfig
	validate *validator.Validate
}

// NewSizer creates a sizer. Non-positive defaults are replaced by the stock ones.
func NewSizer(config SizerConfig) *Sizer {
	def := DefaultSizerConfig()
	if config.AccountBalance <= 0 {
		config.AccountBalance = def.AccountBalance
	}
	if config.RiskPercent <= 0 {
		config.RiskPercent = def.RiskPercent
	}
	if config.Leverage <= 0 {
		config.Leverage = def.Leverage
	}
	return &Sizer{config: config, validate: validator.New()}
}

// NewRequest returns a request pre-filled with the configured defaults.
func (s *Sizer) NewRequest() domain.SizingRequest {
	return domain.SizingRequest{
		AccountBalance: s.config.AccountBalance,
		RiskPercent:    s.config.RiskPercent,
		Leverage:       s.config.Leverage,
	}
}

var hundred = decimal.NewFromInt(100)

// Calculate sizes a position so that hitting the stop loses RiskPercent of
// the account balance. Returns an error wrapping ports.ErrInvalidRequest when
// the request fails validation.
func (s *Sizer) Calculate(ctx context.Context, req domain.SizingRequest) (*domain.PositionPlan, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err)
	}

	balance := decimal.NewFromFloat(req.AccountBalance)
	entry := decimal.NewFromFloat(req.EntryPrice)
	leverage := decimal.NewFromFloat(req.Leverage)

	riskAmount := balance.Mul(decimal.NewFromFloat(req.RiskPercent)).Div(hundred)
	riskPerShare := entry.Sub(decimal.NewFromFloat(req.StopLoss)).Abs()
	rewardPerShare := decimal.NewFromFloat(req.TargetPrice).Sub(entry).Abs()

	size := decimal.Zero
	if !riskPerShare.IsZero() {
		size = riskAmount.Div(riskPerShare).Floor()
	}

	value := size.Mul(entry)
	capital := value
	if leverage.IsPositive() {
		capital = value.Div(leverage)
	}

	ratio := decimal.Zero
	if !riskPerShare.IsZero() {
		ratio = rewardPerShare.Div(riskPerShare)
	}

	usage := decimal.Zero
	if balance.IsPositive() {
		usage = capital.Div(balance).Mul(hundred)
	}

	rr := ratio.InexactFloat64()
	return &domain.PositionPlan{
		RiskAmount:          riskAmount.InexactFloat64(),
		RiskPerShare:        riskPerShare.InexactFloat64(),
		PositionSize:        size.InexactFloat64(),
		PositionValue:       value.InexactFloat64(),
		CapitalRequired:     capital.InexactFloat64(),
		RewardPerShare:      rewardPerShare.InexactFloat64(),
		PotentialProfit:     size.Mul(rewardPerShare).InexactFloat64(),
		RiskRewardRatio:     rr,
		Grade:               GradeRatio(rr),
		CapitalUsagePercent: usage.InexactFloat64(),
		MarginUsed:          req.Leverage > 1,
	}, nil
}

// GradeRatio rates a reward/risk ratio.
func GradeRatio(rr float64) domain.RRGrade {
	switch {
	case rr >= 2:
		return domain.RRFavorable
	case rr >= 1:
		return domain.RRNeutral
	default:
		return domain.RRPoor
	}
}
