package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MaxCategoryLength bounds a transaction category label
const MaxCategoryLength = 100

// Aggregate sums amounts per category over the whole ledger.
// Categories absent from the ledger are absent from the result.
func Aggregate(ledger []*domain.Transaction) domain.CategoryTotals {
	totals := make(domain.CategoryTotals)
	for _, tx := range ledger {
		if tx == nil {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// TransactionService appends to the ledger and keeps category totals current
type TransactionService struct {
	ledger         domain.TransactionLedger
	eventPublisher websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(ledger domain.TransactionLedger) *TransactionService {
	return &TransactionService{ledger: ledger}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// AppendTransactionInput holds the input for a single ledger entry
type AppendTransactionInput struct {
	Category string
	Amount   decimal.Decimal
	Date     *time.Time
}

// AppendTransactions validates and appends a batch, then re-aggregates the full ledger.
// The batch is all-or-nothing: one invalid entry rejects the whole request.
func (s *TransactionService) AppendTransactions(ctx context.Context, inputs []AppendTransactionInput) (domain.CategoryTotals, error) {
	if len(inputs) > domain.MaxTransactionsPerBatch {
		return nil, domain.NewValidationError("transactions", fmt.Sprintf("At most %d transactions per request", domain.MaxTransactionsPerBatch))
	}

	verr := &domain.ValidationError{}
	now := time.Now().UTC()
	batch := make([]*domain.Transaction, 0, len(inputs))
	for i, input := range inputs {
		category := strings.TrimSpace(input.Category)
		if category == "" {
			verr.Add(fmt.Sprintf("transactions[%d].category", i), "Category is required")
			continue
		}
		if len(category) > MaxCategoryLength {
			verr.Add(fmt.Sprintf("transactions[%d].category", i), "Category must be 100 characters or less")
			continue
		}
		if msg := domain.CheckAmount(input.Amount); msg != "" {
			verr.Add(fmt.Sprintf("transactions[%d].amount", i), msg)
			continue
		}

		date := now
		if input.Date != nil {
			date = input.Date.UTC()
		}

		batch = append(batch, &domain.Transaction{
			ID:        uuid.New(),
			Category:  category,
			Amount:    input.Amount,
			Date:      date,
			CreatedAt: now,
		})
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if len(batch) > 0 {
		if err := s.ledger.Append(ctx, batch...); err != nil {
			return nil, err
		}
	}

	totals, err := s.GetCategoryTotals(ctx)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil && len(batch) > 0 {
		s.publishAppended(ctx, len(batch), totals)
	}

	return totals, nil
}

func (s *TransactionService) publishAppended(ctx context.Context, appended int, totals domain.CategoryTotals) {
	aggregated := make(map[string]float64, len(totals))
	for category, total := range totals {
		aggregated[category] = total.InexactFloat64()
	}
	payload := map[string]interface{}{
		"appended":   appended,
		"aggregated": aggregated,
	}

	size, err := s.ledger.Len(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count ledger for event")
	} else {
		payload["ledgerSize"] = size
	}

	s.eventPublisher.PublishAll(websocket.LedgerAppended(payload))
}

// GetCategoryTotals aggregates the entire ledger
func (s *TransactionService) GetCategoryTotals(ctx context.Context) (domain.CategoryTotals, error) {
	all, err := s.ledger.All(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(all), nil
}
