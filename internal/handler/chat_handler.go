package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dafibh/fintwin/fintwin-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ChatHandler handles chat messages
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents the POST /api/chat body.
// UserProfile and Context are accepted but do not influence the reply.
type ChatRequest struct {
	Message     string          `json:"message"`
	UserProfile json.RawMessage `json:"userProfile,omitempty" swaggertype:"object"`
	Context     json.RawMessage `json:"context,omitempty" swaggertype:"object"`
}

// ChatResponse represents a classified reply
type ChatResponse struct {
	Intent      string   `json:"intent"`
	Reply       string   `json:"reply"`
	Suggestions []string `json:"suggestions"`
	Actions     []string `json:"actions"`
}

// Chat handles POST /api/chat
// @Summary Chat with the assistant
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Message"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} ProblemDetails
// @Router /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := service.ValidateChatMessage(req.Message); err != nil {
		return writeServiceError(c, err, "Failed to process message")
	}

	reply := h.chatService.Classify(req.Message)

	return c.JSON(http.StatusOK, ChatResponse{
		Intent:      string(reply.Intent),
		Reply:       reply.Reply,
		Suggestions: reply.Suggestions,
		Actions:     reply.Actions,
	})
}
