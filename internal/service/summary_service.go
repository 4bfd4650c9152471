package service

import (
	"context"
	"errors"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// SummaryService builds the spending dashboard from the ledger and a user's goals
type SummaryService struct {
	ledger      domain.TransactionLedger
	profileRepo domain.ProfileRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(ledger domain.TransactionLedger, profileRepo domain.ProfileRepository) *SummaryService {
	return &SummaryService{
		ledger:      ledger,
		profileRepo: profileRepo,
	}
}

// GetSummary returns the summary for the rangeDays ending at asOf.
// userID is optional; without it, or without a stored profile, goal status is all zeros.
func (s *SummaryService) GetSummary(ctx context.Context, userID string, rangeDays int, asOf time.Time) (*domain.SpendingSummary, error) {
	if rangeDays < 1 || rangeDays > domain.MaxSummaryRangeDays {
		return nil, domain.NewValidationError("range", "Range must be between 1 and 365 days")
	}

	all, err := s.ledger.All(ctx)
	if err != nil {
		return nil, err
	}

	var profile *domain.UserProfile
	if userID != "" {
		profile, err = s.profileRepo.Get(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
	}

	return &domain.SpendingSummary{
		RangeDays:            rangeDays,
		WeeklySpending:       WeeklySpending(all, rangeDays, asOf),
		CategoryDistribution: Aggregate(all),
		GoalStatus:           domain.GoalStatusOf(profile),
	}, nil
}

// WeeklySpending splits the rangeDays before asOf into SummaryWeeks equal windows,
// oldest first, and sums ledger amounts dated inside each window.
func WeeklySpending(ledger []*domain.Transaction, rangeDays int, asOf time.Time) []decimal.Decimal {
	buckets := make([]decimal.Decimal, domain.SummaryWeeks)
	for i := range buckets {
		buckets[i] = decimal.Zero
	}

	span := time.Duration(rangeDays) * 24 * time.Hour
	start := asOf.Add(-span)
	width := span / domain.SummaryWeeks

	for _, tx := range ledger {
		if tx == nil || tx.Date.Before(start) || tx.Date.After(asOf) {
			continue
		}
		idx := int(tx.Date.Sub(start) / width)
		if idx >= domain.SummaryWeeks {
			idx = domain.SummaryWeeks - 1
		}
		buckets[idx] = buckets[idx].Add(tx.Amount)
	}

	return buckets
}
