package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/fintwin/fintwin-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// setupAuthContext attaches validated claims for auth0ID, as the auth middleware would
func setupAuthContext(c echo.Context, auth0ID string) {
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: auth0ID},
		CustomClaims:     &middleware.CustomClaims{Email: auth0ID + "@example.com"},
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.Auth0IDKey, auth0ID)
	c.SetRequest(c.Request().WithContext(ctx))
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func hasFieldError(problem ProblemDetails, field string) bool {
	for _, e := range problem.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

const scenarioOneBody = `{
	"userId": "user-1",
	"monthlyIncome": 120000,
	"monthlySavings": 20000,
	"monthlyInvestments": 15000,
	"goals": [{"id": "car", "name": "Car", "target": 70000, "saved": 20000, "priority": 1}],
	"recurringExpenses": {"rent": 25000, "emi": 10000}
}`
