package domain

import "github.com/shopspring/decimal"

// Summary window constants
const (
	DefaultSummaryRangeDays = 30
	MaxSummaryRangeDays     = 365
	SummaryWeeks            = 4
)

// SpendingSummary is the dashboard view over the ledger and a user's goals
type SpendingSummary struct {
	RangeDays            int               `json:"range"`
	WeeklySpending       []decimal.Decimal `json:"weeklySpending"`
	CategoryDistribution CategoryTotals    `json:"categoryDistribution"`
	GoalStatus           GoalStatus        `json:"goalStatus"`
}
