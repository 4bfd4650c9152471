package service

import (
	"context"
	"strings"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/websocket"
)

// ProfileService handles profile-related business logic
type ProfileService struct {
	profileRepo    domain.ProfileRepository
	eventPublisher websocket.EventPublisher
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo domain.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ProfileService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// GetProfile retrieves the latest stored profile of a user
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.NewValidationError("userId", "User ID is required")
	}
	return s.profileRepo.Get(ctx, userID)
}

// SaveProfile validates a profile and replaces whatever was stored for the user
func (s *ProfileService) SaveProfile(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	profile.UserID = strings.TrimSpace(profile.UserID)
	if err := profile.Validate(true); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Put(ctx, profile); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(profile.UserID, websocket.ProfileUpdated(profileEventPayload(profile)))
	}

	return profile, nil
}

// profileEventPayload renders amounts as JSON numbers, matching the REST responses
func profileEventPayload(p *domain.UserProfile) map[string]interface{} {
	goals := make([]map[string]interface{}, len(p.Goals))
	for i, g := range p.Goals {
		goals[i] = map[string]interface{}{
			"id":       g.ID,
			"name":     g.Name,
			"target":   g.Target.InexactFloat64(),
			"saved":    g.Saved.InexactFloat64(),
			"priority": g.Priority,
		}
	}
	expenses := make(map[string]float64, len(p.RecurringExpenses))
	for category, amount := range p.RecurringExpenses {
		expenses[category] = amount.InexactFloat64()
	}

	return map[string]interface{}{
		"userId":             p.UserID,
		"monthlyIncome":      p.MonthlyIncome.InexactFloat64(),
		"monthlySavings":     p.MonthlySavings.InexactFloat64(),
		"monthlyInvestments": p.MonthlyInvestments.InexactFloat64(),
		"goals":              goals,
		"recurringExpenses":  expenses,
	}
}
