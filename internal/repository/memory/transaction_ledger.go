package memory

import (
	"context"
	"sync"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
)

// TransactionLedger implements domain.TransactionLedger in process memory.
// Entries are never pruned.
type TransactionLedger struct {
	mu      sync.RWMutex
	entries []*domain.Transaction
}

// NewTransactionLedger creates an empty TransactionLedger
func NewTransactionLedger() *TransactionLedger {
	return &TransactionLedger{}
}

// Append adds transactions in order. A batch is appended under a single lock.
func (l *TransactionLedger) Append(ctx context.Context, transactions ...*domain.Transaction) error {
	copies := make([]*domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx == nil {
			continue
		}
		c := *tx
		copies = append(copies, &c)
	}

	l.mu.Lock()
	l.entries = append(l.entries, copies...)
	l.mu.Unlock()

	return nil
}

// All returns a copy of every entry in append order
func (l *TransactionLedger) All(ctx context.Context) ([]*domain.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*domain.Transaction, len(l.entries))
	for i, tx := range l.entries {
		c := *tx
		out[i] = &c
	}
	return out, nil
}

// Len returns the number of entries
func (l *TransactionLedger) Len(ctx context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries), nil
}
