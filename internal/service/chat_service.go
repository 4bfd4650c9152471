package service

import (
	"strings"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
)

// chatRule is one branch of the intent decision list
type chatRule struct {
	intent      domain.ChatIntent
	keywords    []string
	reply       string
	suggestions []string
	actions     []string
}

func (r chatRule) matches(lowered string) bool {
	for _, keyword := range r.keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// chatRules is evaluated in order; the first matching rule wins
var chatRules = []chatRule{
	{
		intent:      domain.ChatIntentBuyItem,
		keywords:    []string{"buy", "purchase"},
		reply:       "Maybe you switch to a cheaper alternative",
		suggestions: []string{"Consider waiting a few months", "Look for deals or discounts"},
		actions:     []string{domain.ChatActionViewRecommendations},
	},
	{
		intent:      domain.ChatIntentSave,
		keywords:    []string{"save", "saving"},
		reply:       "Great! Saving is important for your financial health.",
		suggestions: []string{"Set up automatic transfers", "Track your progress regularly"},
	},
	{
		intent:      domain.ChatIntentInvest,
		keywords:    []string{"invest"},
		reply:       "Investing is a smart way to grow your wealth!",
		suggestions: []string{"Diversify your portfolio", "Consider long-term investments"},
	},
}

var fallbackChatRule = chatRule{
	intent: domain.ChatIntentGeneral,
	reply:  "I'm here to help you with your financial decisions!",
}

// ChatService classifies free-text messages into canned guidance.
// Classification is case-insensitive substring matching, not language understanding.
type ChatService struct {
	rules    []chatRule
	fallback chatRule
}

// NewChatService creates a new ChatService with the default rule list
func NewChatService() *ChatService {
	return &ChatService{
		rules:    chatRules,
		fallback: fallbackChatRule,
	}
}

// Classify maps a message to a reply. Conversation context is accepted by callers
// but does not influence classification.
func (s *ChatService) Classify(message string) domain.ChatReply {
	lowered := strings.ToLower(message)

	rule := s.fallback
	for _, candidate := range s.rules {
		if candidate.matches(lowered) {
			rule = candidate
			break
		}
	}

	return domain.ChatReply{
		Intent:      rule.intent,
		Reply:       rule.reply,
		Suggestions: cloneStrings(rule.suggestions),
		Actions:     cloneStrings(rule.actions),
	}
}

// ValidateChatMessage rejects blank or oversized messages
func ValidateChatMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return domain.NewValidationError("message", "Message is required")
	}
	if len(message) > domain.MaxChatMessageLength {
		return domain.NewValidationError("message", "Message must be 2000 characters or less")
	}
	return nil
}

// cloneStrings copies a slice so callers never share rule storage; nil becomes empty
func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
