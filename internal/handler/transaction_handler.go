package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles ledger appends
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents one ledger entry in a request
type TransactionRequest struct {
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Date     string           `json:"date,omitempty"` // RFC 3339 or YYYY-MM-DD
}

// AppendTransactionsRequest represents the POST /api/transactions body
type AppendTransactionsRequest struct {
	Transactions []TransactionRequest `json:"transactions"`
}

// AppendTransactionsResponse carries the aggregate over the whole ledger
type AppendTransactionsResponse struct {
	Success    bool               `json:"success"`
	Aggregated map[string]float64 `json:"aggregated"`
}

// AppendTransactions handles POST /api/transactions
// @Summary Append transactions
// @Description Appends a batch to the ledger and returns category totals over the entire ledger
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body AppendTransactionsRequest true "Transactions"
// @Success 200 {object} AppendTransactionsResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) AppendTransactions(c echo.Context) error {
	var req AppendTransactionsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Transactions == nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "transactions", Message: "Transactions are required"},
		})
	}

	var errs []ValidationError
	inputs := make([]service.AppendTransactionInput, 0, len(req.Transactions))
	for i, tx := range req.Transactions {
		if tx.Amount == nil {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("transactions[%d].amount", i), Message: "Amount is required"})
			continue
		}
		input := service.AppendTransactionInput{Category: tx.Category, Amount: *tx.Amount}
		if tx.Date != "" {
			date, err := parseTransactionDate(tx.Date)
			if err != nil {
				errs = append(errs, ValidationError{Field: fmt.Sprintf("transactions[%d].date", i), Message: "Invalid date format. Use RFC 3339 or YYYY-MM-DD"})
				continue
			}
			input.Date = &date
		}
		inputs = append(inputs, input)
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	totals, err := h.transactionService.AppendTransactions(c.Request().Context(), inputs)
	if err != nil {
		return writeServiceError(c, err, "Failed to append transactions")
	}

	log.Info().Int("count", len(inputs)).Int("categories", len(totals)).Msg("Transactions appended")

	return c.JSON(http.StatusOK, AppendTransactionsResponse{
		Success:    true,
		Aggregated: toFloatMap(totals),
	})
}

func parseTransactionDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
