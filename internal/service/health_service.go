package service

import (
	"context"
	"math"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// Score weights. Each weighted term is metric * weight * 100.
var (
	weightSavingRate     = decimal.RequireFromString("0.30")
	weightInvestmentRate = decimal.RequireFromString("0.25")
	weightOverspend      = decimal.RequireFromString("-0.20")
	weightGoalProgress   = decimal.RequireFromString("0.15")
	weightCreditUtil     = decimal.RequireFromString("0.10")

	// creditUtilPlaceholder stands in for credit utilization until a credit data source exists
	creditUtilPlaceholder = decimal.RequireFromString("0.2")

	savingRateFloor     = decimal.RequireFromString("0.20")
	investmentRateFloor = decimal.RequireFromString("0.10")
	goalProgressFloor   = decimal.RequireFromString("0.50")

	hundred  = decimal.NewFromInt(100)
	minScore = decimal.NewFromInt(domain.MinHealthScore)
	maxScore = decimal.NewFromInt(domain.MaxHealthScore)
)

// ComputeHealth derives the health score, breakdown and recommendations for a profile.
// It is a pure function of its argument. Callers validate the profile first; a zero
// income or goal target that slips through yields a ComputationError, never a partial report.
func ComputeHealth(profile *domain.UserProfile) (*domain.HealthReport, error) {
	if profile == nil {
		return nil, &domain.ComputationError{Op: "health", Reason: "profile is nil"}
	}

	income := profile.MonthlyIncome
	if income.IsZero() {
		return nil, &domain.ComputationError{Op: "savingRate", Reason: "monthly income is zero"}
	}

	savingRate := profile.MonthlySavings.Div(income)
	investmentRate := profile.MonthlyInvestments.Div(income)

	outflow := profile.TotalExpenses().
		Add(profile.MonthlySavings).
		Add(profile.MonthlyInvestments)
	overspend := decimal.Max(decimal.Zero, outflow.Sub(income).Div(income))

	goalProgress := decimal.Zero
	if len(profile.Goals) > 0 {
		sum := decimal.Zero
		for _, goal := range profile.Goals {
			if goal.Target.IsZero() {
				return nil, &domain.ComputationError{Op: "goalProgress", Reason: "goal " + goal.ID + " has zero target"}
			}
			sum = sum.Add(goal.Progress())
		}
		goalProgress = sum.Div(decimal.NewFromInt(int64(len(profile.Goals))))
	}

	creditUtil := creditUtilPlaceholder

	breakdown := domain.HealthBreakdown{
		SavingRate:     savingRate,
		InvestmentRate: investmentRate,
		Overspend:      overspend,
		GoalProgress:   goalProgress,
		CreditUtil:     creditUtil,
	}
	if err := checkFinite(breakdown); err != nil {
		return nil, err
	}

	// Lower utilization contributes positively
	raw := weighted(savingRate, weightSavingRate).
		Add(weighted(investmentRate, weightInvestmentRate)).
		Add(weighted(overspend, weightOverspend)).
		Add(weighted(goalProgress, weightGoalProgress)).
		Add(weighted(decimal.NewFromInt(1).Sub(creditUtil), weightCreditUtil))

	clamped := decimal.Min(maxScore, decimal.Max(minScore, raw))
	// Round is half away from zero; clamped is non-negative so 14.5 becomes 15
	score := int(clamped.Round(0).IntPart())

	return &domain.HealthReport{
		Score:           score,
		Breakdown:       breakdown,
		Recommendations: recommend(breakdown),
		Avatar:          domain.AvatarStateForScore(score),
	}, nil
}

// checkFinite rejects a breakdown that cannot be represented as JSON numbers
func checkFinite(b domain.HealthBreakdown) error {
	metrics := []struct {
		name  string
		value decimal.Decimal
	}{
		{"savingRate", b.SavingRate},
		{"investmentRate", b.InvestmentRate},
		{"overspend", b.Overspend},
		{"goalProgress", b.GoalProgress},
		{"creditUtil", b.CreditUtil},
	}
	for _, m := range metrics {
		f := m.value.InexactFloat64()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return &domain.ComputationError{Op: m.name, Reason: "result is not finite"}
		}
	}
	return nil
}

func weighted(metric, weight decimal.Decimal) decimal.Decimal {
	return metric.Mul(weight).Mul(hundred)
}

// recommend evaluates the advisory rules in fixed order; every rule is independent
func recommend(b domain.HealthBreakdown) []string {
	recommendations := make([]string, 0, 4)
	if b.SavingRate.LessThan(savingRateFloor) {
		recommendations = append(recommendations, domain.RecommendIncreaseSavings)
	}
	if b.InvestmentRate.LessThan(investmentRateFloor) {
		recommendations = append(recommendations, domain.RecommendStartInvesting)
	}
	if b.Overspend.IsPositive() {
		recommendations = append(recommendations, domain.RecommendReduceExpenses)
	}
	if b.GoalProgress.LessThan(goalProgressFloor) {
		recommendations = append(recommendations, domain.RecommendFocusOnGoals)
	}
	return recommendations
}

// HealthService computes health reports for submitted or stored profiles
type HealthService struct {
	profileRepo    domain.ProfileRepository
	eventPublisher websocket.EventPublisher
}

// NewHealthService creates a new HealthService
func NewHealthService(profileRepo domain.ProfileRepository) *HealthService {
	return &HealthService{profileRepo: profileRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *HealthService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// Calculate validates an ad-hoc profile and computes its health report.
// The profile is not stored.
func (s *HealthService) Calculate(ctx context.Context, profile *domain.UserProfile) (*domain.HealthReport, error) {
	if err := profile.Validate(false); err != nil {
		return nil, err
	}

	report, err := ComputeHealth(profile)
	if err != nil {
		return nil, err
	}

	s.publish(profile.UserID, report)
	return report, nil
}

// CalculateForUser computes the health report of the user's stored profile
func (s *HealthService) CalculateForUser(ctx context.Context, userID string) (*domain.HealthReport, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Stored profiles were validated on submission, but a durable store may predate current rules
	if err := profile.Validate(true); err != nil {
		return nil, err
	}

	report, err := ComputeHealth(profile)
	if err != nil {
		return nil, err
	}

	s.publish(userID, report)
	return report, nil
}

func (s *HealthService) publish(userID string, report *domain.HealthReport) {
	if s.eventPublisher == nil || userID == "" {
		return
	}
	s.eventPublisher.Publish(userID, websocket.HealthComputed(map[string]interface{}{
		"userId":      userID,
		"healthScore": report.Score,
		"avatar":      report.Avatar,
	}))
}
