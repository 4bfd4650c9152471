package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/google/uuid"
)

// DefaultReportURLTTL is how long a presigned report link stays valid
const DefaultReportURLTTL = 15 * time.Minute

// ReportService archives health snapshots to object storage
type ReportService struct {
	profileRepo domain.ProfileRepository
	reportRepo  domain.ReportRepository
	urlTTL      time.Duration
}

// NewReportService creates a new ReportService. A nil reportRepo disables archiving.
func NewReportService(profileRepo domain.ProfileRepository, reportRepo domain.ReportRepository, urlTTL time.Duration) *ReportService {
	if urlTTL <= 0 {
		urlTTL = DefaultReportURLTTL
	}
	return &ReportService{
		profileRepo: profileRepo,
		reportRepo:  reportRepo,
		urlTTL:      urlTTL,
	}
}

// Enabled reports whether an object store is configured
func (s *ReportService) Enabled() bool {
	return s.reportRepo != nil
}

// ArchiveHealthReport computes the health report of the user's stored profile,
// uploads the snapshot and returns a presigned download link
func (s *ReportService) ArchiveHealthReport(ctx context.Context, userID string) (*domain.ArchivedReport, error) {
	if !s.Enabled() {
		return nil, domain.ErrReportArchiveDisabled
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(true); err != nil {
		return nil, err
	}

	report, err := ComputeHealth(profile)
	if err != nil {
		return nil, err
	}

	generatedAt := time.Now().UTC()
	body, err := json.Marshal(domain.HealthSnapshot{
		UserID:      userID,
		GeneratedAt: generatedAt,
		Profile:     profile,
		Report:      report,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := ReportObjectKey(userID, generatedAt)
	if err := s.reportRepo.Put(ctx, key, bytes.NewReader(body), "application/json", int64(len(body))); err != nil {
		return nil, err
	}

	presigned, err := s.reportRepo.PresignGet(ctx, key, s.urlTTL)
	if err != nil {
		return nil, err
	}

	return &domain.ArchivedReport{
		Key:       key,
		URL:       presigned,
		ExpiresAt: generatedAt.Add(s.urlTTL),
	}, nil
}

// ReportObjectKey creates a unique object key for a snapshot
func ReportObjectKey(userID string, at time.Time) string {
	filename := fmt.Sprintf("%s_%s.json", at.Format("20060102T150405Z"), uuid.New().String())
	return path.Join("reports", url.PathEscape(userID), filename)
}
