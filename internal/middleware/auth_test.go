package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	claims interface{}
	err    error
	tokens []string
}

func (s *stubValidator) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	s.tokens = append(s.tokens, token)
	return s.claims, s.err
}

func claimsFor(subject string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: subject},
	}
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		validator  *stubValidator
		wantStatus int
		wantID     string
	}{
		{
			name:       "valid token",
			header:     "Bearer good",
			validator:  &stubValidator{claims: claimsFor("auth0|123")},
			wantStatus: http.StatusOK,
			wantID:     "auth0|123",
		},
		{
			name:       "lowercase scheme",
			header:     "bearer good",
			validator:  &stubValidator{claims: claimsFor("auth0|123")},
			wantStatus: http.StatusOK,
			wantID:     "auth0|123",
		},
		{
			name:       "missing header",
			validator:  &stubValidator{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			validator:  &stubValidator{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     "Bearer bad",
			validator:  &stubValidator{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected claims type",
			header:     "Bearer odd",
			validator:  &stubValidator{claims: "not claims"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty subject",
			header:     "Bearer anon",
			validator:  &stubValidator{claims: claimsFor("")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/profile/u1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var gotID string
			m := &AuthMiddleware{validator: tt.validator}
			err := m.Authenticate()(func(c echo.Context) error {
				gotID = GetAuth0ID(c)
				return c.NoContent(http.StatusOK)
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantID, gotID)

			if tt.wantStatus == http.StatusUnauthorized {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "Unauthorized", body["error"])
				assert.Equal(t, errorTypeUnauthorized, body["type"])
			}
		})
	}
}

func TestGetAuth0ID(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		setup    func(c echo.Context)
		expected string
	}{
		{
			name: "returns auth0 id when present",
			setup: func(c echo.Context) {
				ctx := context.WithValue(c.Request().Context(), Auth0IDKey, "auth0|12345")
				c.SetRequest(c.Request().WithContext(ctx))
			},
			expected: "auth0|12345",
		},
		{
			name:     "returns empty string when not present",
			setup:    func(c echo.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			tt.setup(c)

			assert.Equal(t, tt.expected, GetAuth0ID(c))
		})
	}
}

func TestGetClaims(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Nil(t, GetClaims(c))

	ctx := context.WithValue(c.Request().Context(), ClaimsKey, claimsFor("auth0|test"))
	c.SetRequest(c.Request().WithContext(ctx))

	claims := GetClaims(c)
	require.NotNil(t, claims)
	assert.Equal(t, "auth0|test", claims.RegisteredClaims.Subject)
}
