package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(category, amount string) *domain.Transaction {
	return &domain.Transaction{Category: category, Amount: d(amount)}
}

func assertTotals(t *testing.T, want map[string]string, got domain.CategoryTotals) {
	t.Helper()
	require.Len(t, got, len(want))
	for category, amount := range want {
		total, ok := got[category]
		require.True(t, ok, "missing category %s", category)
		assert.True(t, d(amount).Equal(total), "category %s: want %s, got %s", category, amount, total)
	}
}

func TestAggregate(t *testing.T) {
	ledger := []*domain.Transaction{
		tx("food", "120.50"),
		tx("rent", "25000"),
		tx("food", "79.50"),
		nil,
		tx("refund", "-40"),
	}

	assertTotals(t, map[string]string{"food": "200", "rent": "25000", "refund": "-40"}, Aggregate(ledger))
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestAggregate_Idempotent(t *testing.T) {
	ledger := []*domain.Transaction{tx("food", "10"), tx("fuel", "20"), tx("food", "5")}
	assert.Equal(t, Aggregate(ledger), Aggregate(ledger))
}

func TestAggregate_Concatenation(t *testing.T) {
	first := []*domain.Transaction{tx("food", "10"), tx("fuel", "20")}
	second := []*domain.Transaction{tx("food", "5.25"), tx("gym", "30")}

	combined := Aggregate(append(append([]*domain.Transaction{}, first...), second...))

	summed := Aggregate(first)
	for category, amount := range Aggregate(second) {
		summed[category] = summed[category].Add(amount)
	}

	require.Len(t, combined, len(summed))
	for category, amount := range summed {
		assert.True(t, amount.Equal(combined[category]), "category %s", category)
	}
}

func TestAppendTransactions_AggregatesWholeLedger(t *testing.T) {
	ledger := testutil.NewMockTransactionLedger()
	svc := NewTransactionService(ledger)
	ctx := context.Background()

	_, err := svc.AppendTransactions(ctx, []AppendTransactionInput{
		{Category: "food", Amount: d("100")},
	})
	require.NoError(t, err)

	totals, err := svc.AppendTransactions(ctx, []AppendTransactionInput{
		{Category: " food ", Amount: d("50")},
		{Category: "fuel", Amount: d("30")},
	})
	require.NoError(t, err)

	assertTotals(t, map[string]string{"food": "150", "fuel": "30"}, totals)
	assert.Len(t, ledger.Transactions, 3)
}

func TestAppendTransactions_AssignsIDsAndDates(t *testing.T) {
	ledger := testutil.NewMockTransactionLedger()
	svc := NewTransactionService(ledger)

	date := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	_, err := svc.AppendTransactions(context.Background(), []AppendTransactionInput{
		{Category: "food", Amount: d("1"), Date: &date},
		{Category: "food", Amount: d("2")},
	})
	require.NoError(t, err)

	require.Len(t, ledger.Transactions, 2)
	assert.NotEqual(t, ledger.Transactions[0].ID, ledger.Transactions[1].ID)
	assert.Equal(t, date, ledger.Transactions[0].Date)
	assert.False(t, ledger.Transactions[1].Date.IsZero())
}

func TestAppendTransactions_RejectsWholeBatch(t *testing.T) {
	ledger := testutil.NewMockTransactionLedger()
	svc := NewTransactionService(ledger)

	totals, err := svc.AppendTransactions(context.Background(), []AppendTransactionInput{
		{Category: "food", Amount: d("1")},
		{Category: "   ", Amount: d("2")},
	})

	assert.Nil(t, totals)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "transactions[1].category", verr.Fields[0].Field)
	assert.Empty(t, ledger.Transactions)
}

func TestAppendTransactions_BatchLimit(t *testing.T) {
	svc := NewTransactionService(testutil.NewMockTransactionLedger())
	inputs := make([]AppendTransactionInput, domain.MaxTransactionsPerBatch+1)

	_, err := svc.AppendTransactions(context.Background(), inputs)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAppendTransactions_EmptyBatchReturnsCurrentTotals(t *testing.T) {
	ledger := testutil.NewMockTransactionLedger()
	ledger.Transactions = []*domain.Transaction{tx("food", "7")}
	publisher := testutil.NewMockEventPublisher()
	svc := NewTransactionService(ledger)
	svc.SetEventPublisher(publisher)

	totals, err := svc.AppendTransactions(context.Background(), nil)
	require.NoError(t, err)

	assertTotals(t, map[string]string{"food": "7"}, totals)
	assert.Empty(t, publisher.Recorded())
}

func TestAppendTransactions_LedgerError(t *testing.T) {
	ledger := testutil.NewMockTransactionLedger()
	ledger.AppendErr = errors.New("db down")
	svc := NewTransactionService(ledger)

	_, err := svc.AppendTransactions(context.Background(), []AppendTransactionInput{{Category: "food", Amount: d("1")}})
	assert.EqualError(t, err, "db down")
}

func TestAppendTransactions_PublishesToEveryone(t *testing.T) {
	publisher := testutil.NewMockEventPublisher()
	svc := NewTransactionService(testutil.NewMockTransactionLedger())
	svc.SetEventPublisher(publisher)

	_, err := svc.AppendTransactions(context.Background(), []AppendTransactionInput{{Category: "food", Amount: d("1")}})
	require.NoError(t, err)

	events := publisher.Recorded()
	require.Len(t, events, 1)
	assert.Empty(t, events[0].UserID)
	assert.Equal(t, "ledger.appended", events[0].Event.Type)

	payload, ok := events[0].Event.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1, payload["appended"])
	assert.Equal(t, 1, payload["ledgerSize"])
	assert.Equal(t, map[string]float64{"food": 1}, payload["aggregated"])
}

func TestAppendTransactions_EventOmitsSizeWhenCountFails(t *testing.T) {
	publisher := testutil.NewMockEventPublisher()
	ledger := testutil.NewMockTransactionLedger()
	ledger.LenErr = errors.New("db down")
	svc := NewTransactionService(ledger)
	svc.SetEventPublisher(publisher)

	_, err := svc.AppendTransactions(context.Background(), []AppendTransactionInput{{Category: "food", Amount: d("2.5")}})
	require.NoError(t, err)

	events := publisher.Recorded()
	require.Len(t, events, 1)
	payload := events[0].Event.Payload.(map[string]interface{})
	assert.NotContains(t, payload, "ledgerSize")
	assert.Equal(t, map[string]float64{"food": 2.5}, payload["aggregated"])
}

func TestAppendTransactions_AmountBeyondBound(t *testing.T) {
	ledger := testutil.NewMockTransactionLedger()
	svc := NewTransactionService(ledger)

	_, err := svc.AppendTransactions(context.Background(), []AppendTransactionInput{
		{Category: "food", Amount: d("10")},
		{Category: "rent", Amount: d("1e2000000")},
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "transactions[1].amount", verr.Fields[0].Field)
	assert.Empty(t, ledger.Transactions)
}
