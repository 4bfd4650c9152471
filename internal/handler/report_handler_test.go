package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/dafibh/fintwin/fintwin-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportHandler() (*ReportHandler, *testutil.MockProfileRepository, *testutil.MockReportRepository) {
	profiles := testutil.NewMockProfileRepository()
	reports := testutil.NewMockReportRepository()
	return NewReportHandler(service.NewReportService(profiles, reports, 10*time.Minute)), profiles, reports
}

func TestArchiveReport_Created(t *testing.T) {
	h, profiles, reports := newReportHandler()
	profiles.AddProfile(storedProfile("user-1"))

	c, rec := newJSONContext(http.MethodPost, "/api/reports/user-1", "")
	c.SetParamNames("userId")
	c.SetParamValues("user-1")
	setupAuthContext(c, "user-1")

	require.NoError(t, h.ArchiveReport(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var archived domain.ArchivedReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &archived))
	assert.True(t, strings.HasPrefix(archived.Key, "reports/user-1/"))
	assert.Contains(t, archived.URL, "expires=600")
	assert.False(t, archived.ExpiresAt.IsZero())

	body, ok := reports.Objects[archived.Key]
	require.True(t, ok)
	assert.Contains(t, string(body), `"healthScore":20`)
	assert.Equal(t, "application/json", reports.ContentType[archived.Key])
}

func TestArchiveReport_Disabled(t *testing.T) {
	profiles := testutil.NewMockProfileRepository()
	profiles.AddProfile(storedProfile("user-1"))
	h := NewReportHandler(service.NewReportService(profiles, nil, 0))

	c, rec := newJSONContext(http.MethodPost, "/api/reports/user-1", "")
	c.SetParamNames("userId")
	c.SetParamValues("user-1")

	require.NoError(t, h.ArchiveReport(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, ErrorTypeUnavailable, decodeProblem(t, rec).Type)
}

func TestArchiveReport_ProfileNotFound(t *testing.T) {
	h, _, _ := newReportHandler()

	c, rec := newJSONContext(http.MethodPost, "/api/reports/ghost", "")
	c.SetParamNames("userId")
	c.SetParamValues("ghost")

	require.NoError(t, h.ArchiveReport(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArchiveReport_StorageError(t *testing.T) {
	h, profiles, reports := newReportHandler()
	profiles.AddProfile(storedProfile("user-1"))
	reports.PutErr = errors.New("bucket gone")

	c, rec := newJSONContext(http.MethodPost, "/api/reports/user-1", "")
	c.SetParamNames("userId")
	c.SetParamValues("user-1")

	require.NoError(t, h.ArchiveReport(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestArchiveReport_ForbiddenForOtherUser(t *testing.T) {
	h, profiles, reports := newReportHandler()
	profiles.AddProfile(storedProfile("user-1"))

	c, rec := newJSONContext(http.MethodPost, "/api/reports/user-1", "")
	c.SetParamNames("userId")
	c.SetParamValues("user-1")
	setupAuthContext(c, "user-2")

	require.NoError(t, h.ArchiveReport(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, reports.Objects)
}
