// ABOUTME: Affiliate roster handler for the Huma API
// ABOUTME: Exposes the tracked affiliate list to the dashboard

package handlers

import (
	"context"
	"net/http"

	"affiliate-tracker-api/core/domain"
	"github.com/danielgtaylor/huma/v2"
)

// AffiliateHandler handles roster HTTP requests
type AffiliateHandler struct {
	roster []domain.Affiliate
}

// NewAffiliateHandler creates a new affiliate handler
func NewAffiliateHandler(roster []domain.Affiliate) *AffiliateHandler {
	return &AffiliateHandler{roster: roster}
}

// RegisterRoutes registers the roster routes
func (h *AffiliateHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listAffiliates",
		Method:      http.MethodGet,
		Path:        "/affiliates",
		Summary:     "List tracked affiliates",
		Description: "Returns the roster of affiliates monitored by search jobs",
		Tags:        []string{"Affiliates"},
	}, h.ListAffiliates)
}

// ListAffiliatesOutput defines the output for the ListAffiliates operation
type ListAffiliatesOutput struct {
	Body struct {
		Affiliates []string `json:"affiliates" doc:"Affiliate names in roster order"`
		Count      int      `json:"count" doc:"Number of tracked affiliates"`
	}
}

// ListAffiliates handles GET /affiliates
func (h *AffiliateHandler) ListAffiliates(ctx context.Context, input *struct{}) (*ListAffiliatesOutput, error) {
	resp := &ListAffiliatesOutput{}
	resp.Body.Affiliates = domain.RosterNames(h.roster)
	resp.Body.Count = len(h.roster)
	return resp, nil
}
