package memory

import (
	"context"
	"sync"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
)

// ProfileRepository implements domain.ProfileRepository in process memory
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.UserProfile
}

// NewProfileRepository creates an empty ProfileRepository
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[string]*domain.UserProfile),
	}
}

// Get returns a copy of the stored profile
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile.Clone(), nil
}

// Put swaps in a copy of the profile, replacing any previous one
func (r *ProfileRepository) Put(ctx context.Context, profile *domain.UserProfile) error {
	clone := profile.Clone()

	r.mu.Lock()
	r.profiles[clone.UserID] = clone
	r.mu.Unlock()

	return nil
}
