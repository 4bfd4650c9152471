package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	listLedgerSQL = `
SELECT id, category, amount, occurred_at, created_at
FROM ledger_transactions
ORDER BY seq`

	countLedgerSQL = `SELECT COUNT(*) FROM ledger_transactions`
)

var ledgerColumns = []string{"id", "category", "amount", "occurred_at", "created_at"}

// TransactionLedger implements domain.TransactionLedger using PostgreSQL
type TransactionLedger struct {
	pool *pgxpool.Pool
}

// NewTransactionLedger creates a new TransactionLedger
func NewTransactionLedger(pool *pgxpool.Pool) *TransactionLedger {
	return &TransactionLedger{pool: pool}
}

// Append copies the batch in a single database transaction so it lands contiguously
func (l *TransactionLedger) Append(ctx context.Context, transactions ...*domain.Transaction) error {
	rows := make([][]any, 0, len(transactions))
	for _, tx := range transactions {
		if tx == nil {
			continue
		}
		amount, err := decimalToPgNumeric(tx.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		rows = append(rows, []any{uuidToPgUUID(tx.ID), tx.Category, amount, tx.Date, tx.CreatedAt})
	}
	if len(rows) == 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, l.pool, func(dbTx pgx.Tx) error {
		copied, err := dbTx.CopyFrom(ctx, pgx.Identifier{"ledger_transactions"}, ledgerColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return err
		}
		if copied != int64(len(rows)) {
			return fmt.Errorf("ledger append copied %d of %d rows", copied, len(rows))
		}
		return nil
	})
}

// All returns every entry in append order
func (l *TransactionLedger) All(ctx context.Context) ([]*domain.Transaction, error) {
	rows, err := l.pool.Query(ctx, listLedgerSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.Transaction, 0)
	for rows.Next() {
		var (
			id         pgtype.UUID
			category   string
			amount     pgtype.Numeric
			occurredAt time.Time
			createdAt  time.Time
		)
		if err := rows.Scan(&id, &category, &amount, &occurredAt, &createdAt); err != nil {
			return nil, err
		}
		result = append(result, &domain.Transaction{
			ID:        pgUUIDToUUID(id),
			Category:  category,
			Amount:    pgNumericToDecimal(amount),
			Date:      occurredAt.UTC(),
			CreatedAt: createdAt.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Len returns the number of entries
func (l *TransactionLedger) Len(ctx context.Context) (int, error) {
	var n int64
	if err := l.pool.QueryRow(ctx, countLedgerSQL).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}
