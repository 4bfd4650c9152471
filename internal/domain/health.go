package domain

import "github.com/shopspring/decimal"

// Recommendation texts, emitted in this order when their rule fires
const (
	RecommendIncreaseSavings  = "Increase your monthly savings to at least 20% of income"
	RecommendStartInvesting   = "Consider investing at least 10% of your income"
	RecommendReduceExpenses   = "Reduce expenses to stay within your income"
	RecommendFocusOnGoals     = "Focus on achieving your financial goals"
	MinHealthScore            = 0
	MaxHealthScore            = 100
	HappyAvatarScoreThreshold = 61
	NeutralAvatarScoreFloor   = 41
)

// HealthBreakdown holds the metrics a health score is derived from.
// It is recomputed on every request and never persisted.
type HealthBreakdown struct {
	SavingRate     decimal.Decimal `json:"savingRate"`
	InvestmentRate decimal.Decimal `json:"investmentRate"`
	Overspend      decimal.Decimal `json:"overspend"`
	GoalProgress   decimal.Decimal `json:"goalProgress"`
	CreditUtil     decimal.Decimal `json:"creditUtil"`
}

// AvatarState is the presentation hint the client uses to style the avatar
type AvatarState struct {
	Mood   string `json:"mood"`
	Energy string `json:"energy"`
	Color  string `json:"color"`
}

// AvatarStateForScore maps a score onto one of three avatar bands
func AvatarStateForScore(score int) AvatarState {
	switch {
	case score >= HappyAvatarScoreThreshold:
		return AvatarState{Mood: "happy", Energy: "high", Color: "green"}
	case score >= NeutralAvatarScoreFloor:
		return AvatarState{Mood: "neutral", Energy: "medium", Color: "yellow"}
	default:
		return AvatarState{Mood: "sad", Energy: "low", Color: "red"}
	}
}

// HealthReport is the full result of a health computation
type HealthReport struct {
	Score           int             `json:"healthScore"`
	Breakdown       HealthBreakdown `json:"breakdown"`
	Recommendations []string        `json:"recommendations"`
	Avatar          AvatarState     `json:"avatar"`
}
