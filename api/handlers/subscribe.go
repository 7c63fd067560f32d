// ABOUTME: Subscription handler for the Huma API
// ABOUTME: Registers email addresses for monthly report notifications

package handlers

import (
	"context"
	"net/http"

	"affiliate-tracker-api/core/subscribers"
	"github.com/danielgtaylor/huma/v2"
)

// SubscribeHandler handles subscription HTTP requests
type SubscribeHandler struct {
	store *subscribers.Store
}

// NewSubscribeHandler creates a new subscription handler
func NewSubscribeHandler(store *subscribers.Store) *SubscribeHandler {
	return &SubscribeHandler{store: store}
}

// RegisterRoutes registers the subscription routes
func (h *SubscribeHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "subscribe",
		Method:      http.MethodPost,
		Path:        "/subscribe",
		Summary:     "Subscribe to monthly reports",
		Description: "Registers an email address for monthly report notifications; subscribing twice is a no-op",
		Tags:        []string{"Subscriptions"},
	}, h.Subscribe)
}

// SubscribeInput defines the input for the Subscribe operation
type SubscribeInput struct {
	Body struct {
		Email string `json:"email" doc:"Email address to subscribe"`
	}
}

// SubscribeOutput defines the output for the Subscribe operation
type SubscribeOutput struct {
	Body struct {
		Subscribed bool `json:"subscribed" doc:"Whether the address is now subscribed"`
		New        bool `json:"new" doc:"Whether this request added the address"`
	}
}

// Subscribe handles POST /subscribe
func (h *SubscribeHandler) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	added, err := h.store.Add(input.Body.Email)
	if err != nil {
		return nil, toHumaError(err)
	}

	resp := &SubscribeOutput{}
	resp.Body.Subscribed = true
	resp.Body.New = added
	return resp, nil
}
