package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_ClassifiesIntent(t *testing.T) {
	tests := []struct {
		message string
		intent  domain.ChatIntent
		actions []string
	}{
		{"Should I BUY a new phone?", domain.ChatIntentBuyItem, []string{domain.ChatActionViewRecommendations}},
		{"I want to save and invest", domain.ChatIntentSave, []string{}},
		{"How do I invest?", domain.ChatIntentInvest, []string{}},
		{"hello there", domain.ChatIntentGeneral, []string{}},
	}

	h := NewChatHandler(service.NewChatService())
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			body, _ := json.Marshal(ChatRequest{Message: tt.message})
			c, rec := newJSONContext(http.MethodPost, "/api/chat", string(body))

			require.NoError(t, h.Chat(c))
			assert.Equal(t, http.StatusOK, rec.Code)

			var resp ChatResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, string(tt.intent), resp.Intent)
			assert.NotEmpty(t, resp.Reply)
			assert.Equal(t, tt.actions, resp.Actions)
			assert.NotNil(t, resp.Suggestions)
		})
	}
}

func TestChat_IgnoresContext(t *testing.T) {
	h := NewChatHandler(service.NewChatService())
	body := `{"message": "purchase a bike", "userProfile": {"monthlyIncome": 1}, "context": {"previous": "invest"}}`
	c, rec := newJSONContext(http.MethodPost, "/api/chat", body)

	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"intent":"buy_item"`)
	assert.Contains(t, rec.Body.String(), "Maybe you switch to a cheaper alternative")
}

func TestChat_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{}`},
		{"blank message", `{"message": "   "}`},
		{"too long", `{"message": "` + strings.Repeat("a", domain.MaxChatMessageLength+1) + `"}`},
	}

	h := NewChatHandler(service.NewChatService())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodPost, "/api/chat", tt.body)

			require.NoError(t, h.Chat(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.True(t, hasFieldError(decodeProblem(t, rec), "message"))
		})
	}
}
