package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/middleware"
	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
	healthService  *service.HealthService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService, healthService *service.HealthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		healthService:  healthService,
	}
}

// GoalRequest represents a goal in a profile submission
type GoalRequest struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Target   *decimal.Decimal `json:"target"`
	Saved    *decimal.Decimal `json:"saved"`
	Priority int              `json:"priority"`
}

// ProfileRequest represents a profile submission. Amounts accept JSON numbers or numeric strings.
type ProfileRequest struct {
	UserID             string                     `json:"userId"`
	MonthlyIncome      *decimal.Decimal           `json:"monthlyIncome"`
	MonthlySavings     *decimal.Decimal           `json:"monthlySavings"`
	MonthlyInvestments *decimal.Decimal           `json:"monthlyInvestments"`
	Goals              []GoalRequest              `json:"goals"`
	RecurringExpenses  map[string]decimal.Decimal `json:"recurringExpenses"`
}

// toDomain converts the request, reporting missing required amounts.
// Savings, investments and saved default to zero.
func (r *ProfileRequest) toDomain() (*domain.UserProfile, []ValidationError) {
	var errs []ValidationError
	profile := &domain.UserProfile{
		UserID:             strings.TrimSpace(r.UserID),
		MonthlySavings:     orZero(r.MonthlySavings),
		MonthlyInvestments: orZero(r.MonthlyInvestments),
		Goals:              make([]domain.Goal, 0, len(r.Goals)),
		RecurringExpenses:  r.RecurringExpenses,
	}

	if r.MonthlyIncome == nil {
		errs = append(errs, ValidationError{Field: "monthlyIncome", Message: "Monthly income is required"})
	} else {
		profile.MonthlyIncome = *r.MonthlyIncome
	}

	for i, g := range r.Goals {
		if g.Target == nil {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("goals[%d].target", i), Message: "Target is required"})
			continue
		}
		profile.Goals = append(profile.Goals, domain.Goal{
			ID:       strings.TrimSpace(g.ID),
			Name:     strings.TrimSpace(g.Name),
			Target:   *g.Target,
			Saved:    orZero(g.Saved),
			Priority: g.Priority,
		})
	}

	if profile.RecurringExpenses == nil {
		profile.RecurringExpenses = map[string]decimal.Decimal{}
	}

	return profile, errs
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// GoalResponse represents a goal in API responses
type GoalResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Target   float64 `json:"target"`
	Saved    float64 `json:"saved"`
	Priority int     `json:"priority"`
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	UserID             string             `json:"userId"`
	MonthlyIncome      float64            `json:"monthlyIncome"`
	MonthlySavings     float64            `json:"monthlySavings"`
	MonthlyInvestments float64            `json:"monthlyInvestments"`
	Goals              []GoalResponse     `json:"goals"`
	RecurringExpenses  map[string]float64 `json:"recurringExpenses"`
}

// SaveProfileResponse is returned by POST /api/profile
type SaveProfileResponse struct {
	Success bool            `json:"success"`
	Profile ProfileResponse `json:"profile"`
}

// SaveProfile handles POST /api/profile
// @Summary Submit a financial profile
// @Description Replaces the stored profile of the user. Without userId the authenticated subject is used.
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body ProfileRequest true "Profile"
// @Success 200 {object} SaveProfileResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /profile [post]
func (h *ProfileHandler) SaveProfile(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	profile, errs := req.toDomain()
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	subject := middleware.GetAuth0ID(c)
	if profile.UserID == "" {
		profile.UserID = subject
	}
	if !canAccessUser(c, profile.UserID) {
		return NewForbiddenError(c, "Cannot submit a profile for another user")
	}

	saved, err := h.profileService.SaveProfile(c.Request().Context(), profile)
	if err != nil {
		return writeServiceError(c, err, "Failed to save profile")
	}

	log.Info().Str("user_id", saved.UserID).Int("goals", len(saved.Goals)).Msg("Profile saved")

	return c.JSON(http.StatusOK, SaveProfileResponse{
		Success: true,
		Profile: toProfileResponse(saved),
	})
}

// GetProfile handles GET /api/profile/:userId
// @Summary Get the stored profile
// @Tags profile
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} ProfileResponse
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /profile/{userId} [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := c.Param("userId")
	if !canAccessUser(c, userID) {
		return NewForbiddenError(c, "Cannot read another user's profile")
	}

	profile, err := h.profileService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err, "Failed to get profile")
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// GetProfileHealth handles GET /api/profile/:userId/health
// @Summary Compute the health report of the stored profile
// @Tags health
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} HealthResponse
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /profile/{userId}/health [get]
func (h *ProfileHandler) GetProfileHealth(c echo.Context) error {
	userID := c.Param("userId")
	if !canAccessUser(c, userID) {
		return NewForbiddenError(c, "Cannot read another user's health report")
	}

	report, err := h.healthService.CalculateForUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err, "Failed to calculate health")
	}

	return c.JSON(http.StatusOK, toHealthResponse(report))
}

// canAccessUser allows everything when auth is disabled, else only the subject's own data
func canAccessUser(c echo.Context, userID string) bool {
	subject := middleware.GetAuth0ID(c)
	return subject == "" || subject == userID
}

func toProfileResponse(p *domain.UserProfile) ProfileResponse {
	goals := make([]GoalResponse, len(p.Goals))
	for i, g := range p.Goals {
		goals[i] = GoalResponse{
			ID:       g.ID,
			Name:     g.Name,
			Target:   g.Target.InexactFloat64(),
			Saved:    g.Saved.InexactFloat64(),
			Priority: g.Priority,
		}
	}

	return ProfileResponse{
		UserID:             p.UserID,
		MonthlyIncome:      p.MonthlyIncome.InexactFloat64(),
		MonthlySavings:     p.MonthlySavings.InexactFloat64(),
		MonthlyInvestments: p.MonthlyInvestments.InexactFloat64(),
		Goals:              goals,
		RecurringExpenses:  toFloatMap(p.RecurringExpenses),
	}
}

func toFloatMap(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v.InexactFloat64()
	}
	return out
}
