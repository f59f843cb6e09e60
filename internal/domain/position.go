package domain

// SizingRequest holds the inputs of the position sizer.
type SizingRequest struct {
	AccountBalance float64 `json:"accountBalance" validate:"gte=0"`
	RiskPercent    float64 `json:"riskPercent" validate:"gte=0,lte=100"`
	Leverage       float64 `json:"leverage" validate:"gte=0"`
	EntryPrice     float64 `json:"entryPrice" validate:"gt=0"`
	StopLoss       float64 `json:"stopLoss" validate:"gte=0"`
	TargetPrice    float64 `json:"targetPrice" validate:"gte=0"`
}

// RRGrade is a coarse rating of a reward/risk ratio.
type RRGrade string

const (
	RRFavorable RRGrade = "favorable" // Ratio of at least 2
	RRNeutral   RRGrade = "neutral"   // Ratio of at least 1
	RRPoor      RRGrade = "poor"
)

// PositionPlan is the sizing recommendation for a planned trade.
type PositionPlan struct {
	RiskAmount          float64 `json:"riskAmount"`   // Account currency put at risk
	RiskPerShare        float64 `json:"riskPerShare"` // Distance between entry and stop
	PositionSize        float64 `json:"positionSize"` // Whole units to buy or sell
	PositionValue       float64 `json:"positionValue"`
	CapitalRequired     float64 `json:"capitalRequired"` // Position value divided by leverage
	RewardPerShare      float64 `json:"rewardPerShare"`
	PotentialProfit     float64 `json:"potentialProfit"`
	RiskRewardRatio     float64 `json:"riskRewardRatio"`
	Grade               RRGrade `json:"grade"`
	CapitalUsagePercent float64 `json:"capitalUsagePercent"`
	MarginUsed          bool    `json:"marginUsed"` // True when leverage above 1 is applied
}
