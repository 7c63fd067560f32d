package handlers

import (
	"encoding/json"
	"strings"
	"testing"

	"affiliate-tracker-api/core/chat"
	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/subscribers"
	"github.com/danielgtaylor/huma/v2/humatest"
)

func TestAffiliateHandler_ListAffiliates(t *testing.T) {
	roster := []domain.Affiliate{{Name: "Nadia Ahmad"}, {Name: "Aziza Ahmed"}}
	handler := NewAffiliateHandler(roster)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/affiliates")

	if resp.Code != 200 {
		t.Fatalf("GET /affiliates = %d, want 200", resp.Code)
	}

	var body struct {
		Affiliates []string `json:"affiliates"`
		Count      int      `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Count != 2 || body.Affiliates[0] != "Nadia Ahmad" {
		t.Errorf("body = %+v, want the roster in order", body)
	}
}

func TestSubscribeHandler_NewAndRepeat(t *testing.T) {
	handler := NewSubscribeHandler(subscribers.NewStore())
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	first := api.Post("/subscribe", map[string]interface{}{
		"email": "alice@example.com",
	})
	if first.Code != 200 {
		t.Fatalf("first subscribe = %d, want 200", first.Code)
	}
	if !strings.Contains(first.Body.String(), `"new":true`) {
		t.Errorf("first subscribe body = %s, want new:true", first.Body.String())
	}

	second := api.Post("/subscribe", map[string]interface{}{
		"email": "alice@example.com",
	})
	if second.Code != 200 {
		t.Fatalf("repeat subscribe = %d, want 200", second.Code)
	}
	if !strings.Contains(second.Body.String(), `"new":false`) {
		t.Errorf("repeat subscribe body = %s, want new:false", second.Body.String())
	}
}

func TestSubscribeHandler_InvalidEmailReturns400(t *testing.T) {
	handler := NewSubscribeHandler(subscribers.NewStore())
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Post("/subscribe", map[string]interface{}{
		"email": "not-an-email",
	})

	if resp.Code != 400 {
		t.Errorf("invalid email = %d, want 400", resp.Code)
	}
}

func TestChatHandler_RepliesToMessage(t *testing.T) {
	roster := []domain.Affiliate{{Name: "Nadia Ahmad"}}
	handler := NewChatHandler(chat.NewResponder(roster))
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Post("/chat", map[string]interface{}{
		"message": "hello",
	})

	if resp.Code != 200 {
		t.Fatalf("POST /chat = %d, want 200", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Hello!") {
		t.Errorf("reply = %s, want the greeting", resp.Body.String())
	}
}

func TestStatsHandler_SummarizesActivity(t *testing.T) {
	roster := []domain.Affiliate{{Name: "Nadia Ahmad"}, {Name: "Aziza Ahmed"}}
	subs := subscribers.NewStore()
	subs.Add("alice@example.com")

	store := &mockJobReader{
		listFunc: func() []domain.SearchJob {
			return []domain.SearchJob{
				{ID: 3, Status: domain.JobStatusRunning},
				{ID: 2, Status: domain.JobStatusCompleted, Results: 6},
				{ID: 1, Status: domain.JobStatusCompleted, Results: 2},
			}
		},
	}

	handler := NewStatsHandler(roster, store, subs)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/stats")

	if resp.Code != 200 {
		t.Fatalf("GET /stats = %d, want 200", resp.Code)
	}

	var body struct {
		Affiliates        int `json:"affiliates"`
		Searches          int `json:"searches"`
		CompletedSearches int `json:"completed_searches"`
		Subscribers       int `json:"subscribers"`
		LatestResults     int `json:"latest_results"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Affiliates != 2 || body.Searches != 3 || body.CompletedSearches != 2 {
		t.Errorf("counts = %+v, want 2 affiliates, 3 searches, 2 completed", body)
	}
	if body.Subscribers != 1 {
		t.Errorf("subscribers = %d, want 1", body.Subscribers)
	}
	if body.LatestResults != 6 {
		t.Errorf("latest_results = %d, want results of the newest completed job", body.LatestResults)
	}
}
