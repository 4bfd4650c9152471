package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	getProfileSQL = `SELECT data FROM profiles WHERE user_id = $1`

	// A submission replaces the stored document in one statement
	upsertProfileSQL = `
INSERT INTO profiles (user_id, data, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (user_id) DO UPDATE
SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
)

// ProfileRepository implements domain.ProfileRepository using PostgreSQL
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Get retrieves the latest profile of a user
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var data []byte
	if err := r.pool.QueryRow(ctx, getProfileSQL, userID).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", userID, err)
	}
	return &profile, nil
}

// Put stores the profile, replacing any existing one for the same user
func (r *ProfileRepository) Put(ctx context.Context, profile *domain.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if _, err := r.pool.Exec(ctx, upsertProfileSQL, profile.UserID, data); err != nil {
		return err
	}
	return nil
}
