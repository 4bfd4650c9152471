package service

import (
	"fmt"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Affordability figures. These are fixed placeholders until a projection model
// based on the user's savings trajectory exists.
const (
	affordableInMonths      = 4
	healthScoreImpact       = -5
	goalDelayDays           = 21
	resaleHorizonYears      = 4
	affordabilityVerdictFmt = "If you continue to invest and save according to our plan, you will be able to comfortably buy it after %d months."
)

// RecommendationService estimates whether a prospective purchase is affordable
type RecommendationService struct{}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService() *RecommendationService {
	return &RecommendationService{}
}

// Estimate returns the affordability bundle for a buy_item intent.
// Any other intent yields ErrUnknownIntent.
func (s *RecommendationService) Estimate(intent, item string, price decimal.Decimal) (*domain.PurchaseRecommendation, error) {
	if intent != domain.PurchaseIntentBuyItem {
		return nil, domain.ErrUnknownIntent
	}
	if price.IsNegative() {
		return nil, domain.NewValidationError("price", "Price must not be negative")
	}
	if msg := domain.CheckAmount(price); msg != "" {
		return nil, domain.NewValidationError("price", msg)
	}

	return &domain.PurchaseRecommendation{
		Item:  item,
		Price: price,
		Pros: []string{
			fmt.Sprintf("No need to buy again for next %d years", resaleHorizonYears),
			"You will get a premium resale value",
		},
		Cons: []string{
			"Your use is basic, don't need to spend so much",
			fmt.Sprintf("Goal completion will get delayed by %d days", goalDelayDays),
		},
		Overall:      fmt.Sprintf(affordabilityVerdictFmt, affordableInMonths),
		AffordableIn: affordableInMonths,
		Impact: domain.PurchaseImpact{
			HealthScoreChange: healthScoreImpact,
			GoalDelayDays:     goalDelayDays,
		},
	}, nil
}
