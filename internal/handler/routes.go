package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Profile        *ProfileHandler
	Health         *HealthHandler
	Transaction    *TransactionHandler
	Summary        *SummaryHandler
	Chat           *ChatHandler
	Recommendation *RecommendationHandler
	Report         *ReportHandler
	WebSocket      *WebSocketHandler
}

// HealthCheckResponse is returned by GET /health
type HealthCheckResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthCheck handles GET /health
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthCheckResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// RegisterRoutes sets up all routes. apiMiddleware applies to /api only, in order.
func RegisterRoutes(e *echo.Echo, h Handlers, apiMiddleware ...echo.MiddlewareFunc) {
	e.GET("/health", HealthCheck)

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec)

	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}

	api := e.Group("/api", apiMiddleware...)

	// Profile routes
	api.POST("/profile", h.Profile.SaveProfile)
	api.GET("/profile/:userId", h.Profile.GetProfile)
	api.GET("/profile/:userId/health", h.Profile.GetProfileHealth)

	// Scoring
	api.POST("/calculateHealth", h.Health.CalculateHealth)

	// Ledger
	api.POST("/transactions", h.Transaction.AppendTransactions)
	api.GET("/summary", h.Summary.GetSummary)

	// Assistant
	api.POST("/chat", h.Chat.Chat)
	api.GET("/recommendations", h.Recommendation.GetRecommendations)

	// Reports
	api.POST("/reports/:userId", h.Report.ArchiveReport)
}
