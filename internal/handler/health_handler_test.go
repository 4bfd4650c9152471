package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/dafibh/fintwin/fintwin-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthHandler() (*HealthHandler, *testutil.MockProfileRepository) {
	repo := testutil.NewMockProfileRepository()
	return NewHealthHandler(service.NewHealthService(repo)), repo
}

func TestCalculateHealth_ScenarioOne(t *testing.T) {
	h, repo := newHealthHandler()
	c, rec := newJSONContext(http.MethodPost, "/api/calculateHealth", scenarioOneBody)

	require.NoError(t, h.CalculateHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 20, resp.HealthScore)
	assert.InDelta(t, 0.1667, resp.Breakdown.SavingRate, 0.0001)
	assert.InDelta(t, 0.125, resp.Breakdown.InvestmentRate, 1e-9)
	assert.Equal(t, 0.0, resp.Breakdown.Overspend)
	assert.InDelta(t, 0.2857, resp.Breakdown.GoalProgress, 0.0001)
	assert.Equal(t, 0.2, resp.Breakdown.CreditUtil)
	assert.Equal(t, []string{domain.RecommendIncreaseSavings, domain.RecommendFocusOnGoals}, resp.Recommendations)
	assert.Equal(t, domain.AvatarState{Mood: "sad", Energy: "low", Color: "red"}, resp.Avatar)

	assert.Equal(t, 0, repo.PutCalls, "ad-hoc calculation must not store the profile")
}

func TestCalculateHealth_ScenarioThreeRoundsHalfUp(t *testing.T) {
	h, _ := newHealthHandler()
	body := `{
		"monthlyIncome": 50000,
		"monthlySavings": 10000,
		"monthlyInvestments": 5000,
		"recurringExpenses": {"rent": 40000}
	}`
	c, rec := newJSONContext(http.MethodPost, "/api/calculateHealth", body)

	require.NoError(t, h.CalculateHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 15, resp.HealthScore)
	assert.InDelta(t, 0.1, resp.Breakdown.Overspend, 1e-9)
	assert.Equal(t, []string{domain.RecommendReduceExpenses, domain.RecommendFocusOnGoals}, resp.Recommendations)
}

func TestCalculateHealth_Validation(t *testing.T) {
	h, _ := newHealthHandler()
	c, rec := newJSONContext(http.MethodPost, "/api/calculateHealth", `{"monthlyIncome": -5}`)

	require.NoError(t, h.CalculateHealth(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, hasFieldError(decodeProblem(t, rec), "monthlyIncome"))
}

func TestCalculateHealth_ForbiddenForOtherUser(t *testing.T) {
	h, _ := newHealthHandler()
	c, rec := newJSONContext(http.MethodPost, "/api/calculateHealth", scenarioOneBody)
	setupAuthContext(c, "user-2")

	require.NoError(t, h.CalculateHealth(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCalculateHealth_AmountsOutsideBounds(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"huge savings", `{"monthlyIncome": 1000, "monthlySavings": 1e2000000}`, "monthlySavings"},
		{"vanishing income", `{"monthlyIncome": 1e-2000000, "monthlySavings": 100}`, "monthlyIncome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newHealthHandler()
			c, rec := newJSONContext(http.MethodPost, "/api/calculateHealth", tt.body)

			require.NoError(t, h.CalculateHealth(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotEmpty(t, rec.Body.Bytes())
			problem := decodeProblem(t, rec)
			assert.True(t, hasFieldError(problem, tt.field), "expected error on %s, got %+v", tt.field, problem.Errors)
		})
	}
}
