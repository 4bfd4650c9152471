package domain

// ChatIntent identifies which canned guidance a chat message resolved to
type ChatIntent string

const (
	ChatIntentBuyItem ChatIntent = "buy_item"
	ChatIntentSave    ChatIntent = "save"
	ChatIntentInvest  ChatIntent = "invest"
	ChatIntentGeneral ChatIntent = "general"
)

// Chat actions the client knows how to render
const (
	ChatActionViewRecommendations = "view_recommendations"
)

// MaxChatMessageLength bounds the classified message
const MaxChatMessageLength = 2000

// ChatReply is the classifier output
type ChatReply struct {
	Intent      ChatIntent `json:"intent"`
	Reply       string     `json:"reply"`
	Suggestions []string   `json:"suggestions"`
	Actions     []string   `json:"actions"`
}
