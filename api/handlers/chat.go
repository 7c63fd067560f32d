// ABOUTME: Chat handler for the Huma API
// ABOUTME: Answers dashboard assistant messages via the rule-based responder

package handlers

import (
	"context"
	"net/http"

	"affiliate-tracker-api/core/chat"
	"github.com/danielgtaylor/huma/v2"
)

// ChatHandler handles assistant HTTP requests
type ChatHandler struct {
	responder *chat.Responder
}

// NewChatHandler creates a new chat handler
func NewChatHandler(responder *chat.Responder) *ChatHandler {
	return &ChatHandler{responder: responder}
}

// RegisterRoutes registers the chat routes
func (h *ChatHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "chat",
		Method:      http.MethodPost,
		Path:        "/chat",
		Summary:     "Ask the dashboard assistant",
		Description: "Returns a rule-based reply about affiliates, searches, reports, and subscriptions",
		Tags:        []string{"Chat"},
	}, h.Chat)
}

// ChatInput defines the input for the Chat operation
type ChatInput struct {
	Body struct {
		Message string `json:"message" minLength:"1" doc:"User message"`
	}
}

// ChatOutput defines the output for the Chat operation
type ChatOutput struct {
	Body struct {
		Reply string `json:"reply" doc:"Assistant reply"`
	}
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	resp := &ChatOutput{}
	resp.Body.Reply = h.responder.Respond(input.Body.Message)
	return resp, nil
}
