package handler

import (
	"net/http"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/middleware"
	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// HealthHandler computes health scores for ad-hoc profiles
type HealthHandler struct {
	healthService *service.HealthService
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// BreakdownResponse represents the metrics behind a score
type BreakdownResponse struct {
	SavingRate     float64 `json:"savingRate"`
	InvestmentRate float64 `json:"investmentRate"`
	Overspend      float64 `json:"overspend"`
	GoalProgress   float64 `json:"goalProgress"`
	CreditUtil     float64 `json:"creditUtil"`
}

// HealthResponse represents a computed health report
type HealthResponse struct {
	HealthScore     int                `json:"healthScore"`
	Breakdown       BreakdownResponse  `json:"breakdown"`
	Recommendations []string           `json:"recommendations"`
	Avatar          domain.AvatarState `json:"avatar"`
}

// CalculateHealth handles POST /api/calculateHealth
// @Summary Compute a health score
// @Description Scores the submitted profile without storing it
// @Tags health
// @Accept json
// @Produce json
// @Param profile body ProfileRequest true "Profile"
// @Success 200 {object} HealthResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /calculateHealth [post]
func (h *HealthHandler) CalculateHealth(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	profile, errs := req.toDomain()
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}
	if profile.UserID == "" {
		profile.UserID = middleware.GetAuth0ID(c)
	}
	if !canAccessUser(c, profile.UserID) {
		return NewForbiddenError(c, "Cannot score a profile for another user")
	}

	report, err := h.healthService.Calculate(c.Request().Context(), profile)
	if err != nil {
		return writeServiceError(c, err, "Failed to calculate health")
	}

	return c.JSON(http.StatusOK, toHealthResponse(report))
}

func toHealthResponse(r *domain.HealthReport) HealthResponse {
	return HealthResponse{
		HealthScore: r.Score,
		Breakdown: BreakdownResponse{
			SavingRate:     r.Breakdown.SavingRate.InexactFloat64(),
			InvestmentRate: r.Breakdown.InvestmentRate.InexactFloat64(),
			Overspend:      r.Breakdown.Overspend.InexactFloat64(),
			GoalProgress:   r.Breakdown.GoalProgress.InexactFloat64(),
			CreditUtil:     r.Breakdown.CreditUtil.InexactFloat64(),
		},
		Recommendations: r.Recommendations,
		Avatar:          r.Avatar,
	}
}
