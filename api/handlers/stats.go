// ABOUTME: Dashboard statistics handler for the Huma API
// ABOUTME: Summarizes roster size, search activity, and subscriber counts

package handlers

import (
	"context"
	"net/http"

	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/subscribers"
	"github.com/danielgtaylor/huma/v2"
)

// StatsHandler handles dashboard statistics requests
type StatsHandler struct {
	roster      []domain.Affiliate
	store       JobReader
	subscribers *subscribers.Store
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(roster []domain.Affiliate, store JobReader, subs *subscribers.Store) *StatsHandler {
	return &StatsHandler{
		roster:      roster,
		store:       store,
		subscribers: subs,
	}
}

// RegisterRoutes registers the stats routes
func (h *StatsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/stats",
		Summary:     "Dashboard statistics",
		Description: "Returns roster size, search counts, subscriber count, and the latest completed job's results",
		Tags:        []string{"Stats"},
	}, h.GetStats)
}

// GetStatsOutput defines the output for the GetStats operation
type GetStatsOutput struct {
	Body struct {
		Affiliates        int `json:"affiliates" doc:"Number of tracked affiliates"`
		Searches          int `json:"searches" doc:"Search jobs recorded this process lifetime"`
		CompletedSearches int `json:"completed_searches" doc:"Search jobs that completed"`
		Subscribers       int `json:"subscribers" doc:"Monthly report subscribers"`
		LatestResults     int `json:"latest_results" doc:"Publications found by the most recent completed job"`
	}
}

// GetStats handles GET /stats
func (h *StatsHandler) GetStats(ctx context.Context, input *struct{}) (*GetStatsOutput, error) {
	recorded := h.store.List()

	completed := 0
	latestResults := 0
	seenLatest := false
	for _, job := range recorded {
		if job.Status != domain.JobStatusCompleted {
			continue
		}
		completed++
		// List is newest first, so the first completed job is the latest.
		if !seenLatest {
			latestResults = job.Results
			seenLatest = true
		}
	}

	resp := &GetStatsOutput{}
	resp.Body.Affiliates = len(h.roster)
	resp.Body.Searches = len(recorded)
	resp.Body.CompletedSearches = completed
	resp.Body.Subscribers = h.subscribers.Count()
	resp.Body.LatestResults = latestResults
	return resp, nil
}
