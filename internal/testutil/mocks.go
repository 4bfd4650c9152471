package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/websocket"
)

// MockProfileRepository is a mock implementation of domain.ProfileRepository
type MockProfileRepository struct {
	mu       sync.Mutex
	Profiles map[string]*domain.UserProfile
	GetErr   error
	PutErr   error
	PutCalls int
}

// NewMockProfileRepository creates a new MockProfileRepository
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		Profiles: make(map[string]*domain.UserProfile),
	}
}

// AddProfile seeds a profile
func (m *MockProfileRepository) AddProfile(profile *domain.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Profiles[profile.UserID] = profile.Clone()
}

// Get retrieves a profile by user ID
func (m *MockProfileRepository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if profile, ok := m.Profiles[userID]; ok {
		return profile.Clone(), nil
	}
	return nil, domain.ErrProfileNotFound
}

// Put stores a profile
func (m *MockProfileRepository) Put(ctx context.Context, profile *domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Profiles[profile.UserID] = profile.Clone()
	return nil
}

// MockTransactionLedger is a mock implementation of domain.TransactionLedger
type MockTransactionLedger struct {
	mu           sync.Mutex
	Transactions []*domain.Transaction
	AppendErr    error
	AllErr       error
	LenErr       error
}

// NewMockTransactionLedger creates a new MockTransactionLedger
func NewMockTransactionLedger() *MockTransactionLedger {
	return &MockTransactionLedger{}
}

// Append adds transactions to the ledger
func (m *MockTransactionLedger) Append(ctx context.Context, transactions ...*domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	for _, tx := range transactions {
		if tx == nil {
			continue
		}
		copied := *tx
		m.Transactions = append(m.Transactions, &copied)
	}
	return nil
}

// All returns every transaction in append order
func (m *MockTransactionLedger) All(ctx context.Context) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AllErr != nil {
		return nil, m.AllErr
	}
	result := make([]*domain.Transaction, len(m.Transactions))
	for i, tx := range m.Transactions {
		copied := *tx
		result[i] = &copied
	}
	return result, nil
}

// Len returns the number of transactions
func (m *MockTransactionLedger) Len(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LenErr != nil {
		return 0, m.LenErr
	}
	return len(m.Transactions), nil
}

// MockReportRepository is a mock implementation of domain.ReportRepository
type MockReportRepository struct {
	mu          sync.Mutex
	Objects     map[string][]byte
	ContentType map[string]string
	PutErr      error
	PresignErr  error
}

// NewMockReportRepository creates a new MockReportRepository
func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{
		Objects:     make(map[string][]byte),
		ContentType: make(map[string]string),
	}
}

// Put stores an object
func (m *MockReportRepository) Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	m.Objects[key] = buf.Bytes()
	m.ContentType[key] = contentType
	return nil
}

// PresignGet returns a fake signed URL for a stored object
func (m *MockReportRepository) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PresignErr != nil {
		return "", m.PresignErr
	}
	if _, ok := m.Objects[key]; !ok {
		return "", fmt.Errorf("object %s not found", key)
	}
	return fmt.Sprintf("https://reports.test/%s?expires=%d", key, int(ttl.Seconds())), nil
}

// PublishedEvent records one call to the publisher
type PublishedEvent struct {
	UserID string // Empty for PublishAll
	Event  websocket.Event
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records an event for a user
func (m *MockEventPublisher) Publish(userID string, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// PublishAll records a broadcast event
func (m *MockEventPublisher) PublishAll(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{Event: event})
}

// Recorded returns a snapshot of recorded events
func (m *MockEventPublisher) Recorded() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.Events))
	copy(out, m.Events)
	return out
}
