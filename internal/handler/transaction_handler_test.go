package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/dafibh/fintwin/fintwin-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransactionHandler() (*TransactionHandler, *testutil.MockTransactionLedger) {
	ledger := testutil.NewMockTransactionLedger()
	return NewTransactionHandler(service.NewTransactionService(ledger)), ledger
}

func postTransactions(t *testing.T, h *TransactionHandler, body string) AppendTransactionsResponse {
	t.Helper()
	c, rec := newJSONContext(http.MethodPost, "/api/transactions", body)
	require.NoError(t, h.AppendTransactions(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AppendTransactionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAppendTransactions_AggregatesWholeLedger(t *testing.T) {
	h, ledger := newTransactionHandler()

	first := postTransactions(t, h, `{"transactions": [
		{"category": "food", "amount": 120.5},
		{"category": "rent", "amount": 1000},
		{"category": "food", "amount": 29.5}
	]}`)
	assert.True(t, first.Success)
	assert.Equal(t, map[string]float64{"food": 150, "rent": 1000}, first.Aggregated)

	second := postTransactions(t, h, `{"transactions": [{"category": "food", "amount": "50"}]}`)
	assert.Equal(t, map[string]float64{"food": 200, "rent": 1000}, second.Aggregated)
	assert.Len(t, ledger.Transactions, 4)
}

func TestAppendTransactions_EmptyBatchReturnsCurrentTotals(t *testing.T) {
	h, ledger := newTransactionHandler()
	postTransactions(t, h, `{"transactions": [{"category": "travel", "amount": 300}]}`)

	resp := postTransactions(t, h, `{"transactions": []}`)
	assert.Equal(t, map[string]float64{"travel": 300}, resp.Aggregated)
	assert.Len(t, ledger.Transactions, 1)
}

func TestAppendTransactions_ParsesDates(t *testing.T) {
	h, ledger := newTransactionHandler()
	postTransactions(t, h, `{"transactions": [
		{"category": "food", "amount": 1, "date": "2024-03-05"},
		{"category": "food", "amount": 2, "date": "2024-03-06T10:00:00+02:00"}
	]}`)

	require.Len(t, ledger.Transactions, 2)
	assert.True(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC).Equal(ledger.Transactions[0].Date))
	assert.True(t, time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC).Equal(ledger.Transactions[1].Date))
}

func TestAppendTransactions_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing array", `{}`, "transactions"},
		{"missing amount", `{"transactions": [{"category": "food"}]}`, "transactions[0].amount"},
		{"bad date", `{"transactions": [{"category": "food", "amount": 1, "date": "05/03/2024"}]}`, "transactions[0].date"},
		{"blank category", `{"transactions": [{"category": "food", "amount": 1}, {"category": " ", "amount": 2}]}`, "transactions[1].category"},
		{"amount beyond bound", `{"transactions": [{"category": "food", "amount": 1e2000000}]}`, "transactions[0].amount"},
		{"too many decimals", `{"transactions": [{"category": "food", "amount": 0.000000001}]}`, "transactions[0].amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ledger := newTransactionHandler()
			c, rec := newJSONContext(http.MethodPost, "/api/transactions", tt.body)

			require.NoError(t, h.AppendTransactions(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			problem := decodeProblem(t, rec)
			assert.True(t, hasFieldError(problem, tt.field), "expected error on %s, got %+v", tt.field, problem.Errors)
			assert.Empty(t, ledger.Transactions, "a rejected batch must not be partially appended")
		})
	}
}

func TestAppendTransactions_NonNumericAmount(t *testing.T) {
	h, _ := newTransactionHandler()
	c, rec := newJSONContext(http.MethodPost, "/api/transactions", `{"transactions": [{"category": "food", "amount": "lots"}]}`)

	require.NoError(t, h.AppendTransactions(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppendTransactions_LedgerError(t *testing.T) {
	h, ledger := newTransactionHandler()
	ledger.AppendErr = errors.New("connection reset")
	c, rec := newJSONContext(http.MethodPost, "/api/transactions", `{"transactions": [{"category": "food", "amount": 1}]}`)

	require.NoError(t, h.AppendTransactions(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to append transactions", decodeProblem(t, rec).Error)
}
