package domain

import "github.com/shopspring/decimal"

// PurchaseIntentBuyItem is the only intent the affordability estimator understands
const PurchaseIntentBuyItem = "buy_item"

// PurchaseImpact is the projected effect of a purchase on the user's plan
type PurchaseImpact struct {
	HealthScoreChange int `json:"healthScoreChange"`
	GoalDelayDays     int `json:"goalDelayDays"`
}

// PurchaseRecommendation is produced for buy-intent queries only
type PurchaseRecommendation struct {
	Item         string          `json:"item"`
	Price        decimal.Decimal `json:"price"`
	Pros         []string        `json:"pros"`
	Cons         []string        `json:"cons"`
	Overall      string          `json:"overall"`
	AffordableIn int             `json:"affordableIn"`
	Impact       PurchaseImpact  `json:"impact"`
}
