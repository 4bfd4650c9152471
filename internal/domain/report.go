package domain

import (
	"context"
	"io"
	"time"
)

// HealthSnapshot is the archived form of a health report
type HealthSnapshot struct {
	UserID      string        `json:"userId"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Profile     *UserProfile  `json:"profile"`
	Report      *HealthReport `json:"report"`
}

// ArchivedReport locates an archived snapshot
type ArchivedReport struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ReportRepository stores archived report documents
type ReportRepository interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
