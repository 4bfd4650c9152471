package handler

import (
	"net/http"

	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReportHandler archives health reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ArchiveReport handles POST /api/reports/:userId
// @Summary Archive a health report
// @Description Stores a snapshot of the user's health report and returns a temporary download link
// @Tags reports
// @Produce json
// @Param userId path string true "User ID"
// @Success 201 {object} domain.ArchivedReport
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /reports/{userId} [post]
func (h *ReportHandler) ArchiveReport(c echo.Context) error {
	userID := c.Param("userId")
	if !canAccessUser(c, userID) {
		return NewForbiddenError(c, "Cannot archive another user's report")
	}

	archived, err := h.reportService.ArchiveHealthReport(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err, "Failed to archive report")
	}

	log.Info().Str("user_id", userID).Str("key", archived.Key).Msg("Health report archived")

	return c.JSON(http.StatusCreated, archived)
}
