package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/middleware"
	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// SummaryHandler serves the spending dashboard
type SummaryHandler struct {
	summaryService *service.SummaryService
	now            func() time.Time
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		now:            time.Now,
	}
}

// SummaryResponse represents the spending dashboard
type SummaryResponse struct {
	Range                int                `json:"range"`
	WeeklySpending       []float64          `json:"weeklySpending"`
	CategoryDistribution map[string]float64 `json:"categoryDistribution"`
	GoalStatus           domain.GoalStatus  `json:"goalStatus"`
}

// GetSummary handles GET /api/summary
// @Summary Spending summary
// @Description Weekly spending over the last range days, category totals and goal status
// @Tags summary
// @Produce json
// @Param range query int false "Range in days (1-365); non-numeric values use the default" default(30)
// @Param userId query string false "User whose goals are summarized"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ProblemDetails
// @Router /summary [get]
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	// Non-numeric ranges fall back to the default; numeric ones are bounded by the service
	rangeDays := domain.DefaultSummaryRangeDays
	if parsed, err := strconv.Atoi(c.QueryParam("range")); err == nil {
		rangeDays = parsed
	}

	userID := c.QueryParam("userId")
	if userID == "" {
		userID = middleware.GetAuth0ID(c)
	}
	if !canAccessUser(c, userID) {
		return NewForbiddenError(c, "Cannot read another user's goals")
	}

	summary, err := h.summaryService.GetSummary(c.Request().Context(), userID, rangeDays, h.now().UTC())
	if err != nil {
		return writeServiceError(c, err, "Failed to build summary")
	}

	weekly := make([]float64, len(summary.WeeklySpending))
	for i, amount := range summary.WeeklySpending {
		weekly[i] = amount.InexactFloat64()
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		Range:                summary.RangeDays,
		WeeklySpending:       weekly,
		CategoryDistribution: toFloatMap(summary.CategoryDistribution),
		GoalStatus:           summary.GoalStatus,
	})
}
