package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxTransactionsPerBatch bounds a single append request
const MaxTransactionsPerBatch = 1000

// Transaction is an immutable ledger record. The sign convention of Amount is caller-defined.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CategoryTotals maps a category label to its cumulative amount
type CategoryTotals map[string]decimal.Decimal

// TransactionLedger is an append-only ordered sequence of transactions
type TransactionLedger interface {
	Append(ctx context.Context, transactions ...*Transaction) error
	All(ctx context.Context) ([]*Transaction, error)
	Len(ctx context.Context) (int, error)
}
