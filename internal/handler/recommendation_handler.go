package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RecommendationHandler serves purchase affordability estimates
type RecommendationHandler struct {
	recommendationService *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(recommendationService *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// RecommendationResponse represents an affordability estimate
type RecommendationResponse struct {
	Item         string                `json:"item"`
	Price        float64               `json:"price"`
	Pros         []string              `json:"pros"`
	Cons         []string              `json:"cons"`
	Overall      string                `json:"overall"`
	AffordableIn int                   `json:"affordableIn"`
	Impact       domain.PurchaseImpact `json:"impact"`
}

// GetRecommendations handles GET /api/recommendations
// @Summary Purchase affordability estimate
// @Tags recommendations
// @Produce json
// @Param intent query string true "Intent, only buy_item is supported"
// @Param item query string false "Item name"
// @Param price query number false "Item price"
// @Success 200 {object} RecommendationResponse
// @Failure 400 {object} ProblemDetails
// @Router /recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	intent := c.QueryParam("intent")
	if intent != domain.PurchaseIntentBuyItem {
		log.Debug().Str("intent", intent).Msg("Unknown recommendation intent")
		return NewUnknownIntentError(c, intent)
	}

	price := decimal.Zero
	if raw := c.QueryParam("price"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "price", Message: "Must be a valid decimal number"},
			})
		}
		price = parsed
	}

	rec, err := h.recommendationService.Estimate(intent, c.QueryParam("item"), price)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownIntent) {
			return NewUnknownIntentError(c, intent)
		}
		return writeServiceError(c, err, "Failed to estimate purchase")
	}

	return c.JSON(http.StatusOK, RecommendationResponse{
		Item:         rec.Item,
		Price:        rec.Price.InexactFloat64(),
		Pros:         rec.Pros,
		Cons:         rec.Cons,
		Overall:      rec.Overall,
		AffordableIn: rec.AffordableIn,
		Impact:       rec.Impact,
	})
}
