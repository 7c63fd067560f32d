package sources

import (
	"context"
	"errors"
	"testing"
	"time"

	"affiliate-tracker-api/core/domain"
	coreerrors "affiliate-tracker-api/core/errors"
)

// stubAdapter lets tests control Search behavior directly
type stubAdapter struct {
	name       string
	searchFunc func(ctx context.Context, affiliate string, window Window) ([]domain.PublicationRecord, error)
}

func (s *stubAdapter) Name() string { return s.name }
func (s *stubAdapter) Kind() string { return s.name }

func (s *stubAdapter) Search(ctx context.Context, affiliate string, window Window) ([]domain.PublicationRecord, error) {
	return s.searchFunc(ctx, affiliate, window)
}

func TestWindow_InclusiveLowerBound(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	window := NewWindow(now, 30)

	// Exactly 30 days old sits on the boundary and is kept.
	boundary := now.AddDate(0, 0, -30)
	if !window.Contains(boundary) {
		t.Error("record exactly at the lookback boundary should be inside the window")
	}

	// 40 days old is strictly outside.
	stale := now.AddDate(0, 0, -40)
	if window.Contains(stale) {
		t.Error("record 40 days old should be outside a 30-day window")
	}

	if window.Contains(now.AddDate(0, 0, 1)) {
		t.Error("future-dated record should be outside the window")
	}
}

func TestSearchWithTimeout_PassesThroughResults(t *testing.T) {
	want := []domain.PublicationRecord{{Affiliate: "A. Smith", Title: "X", Source: "Times"}}
	adapter := &stubAdapter{
		name: "news-search",
		searchFunc: func(ctx context.Context, affiliate string, window Window) ([]domain.PublicationRecord, error) {
			return want, nil
		},
	}

	got, err := SearchWithTimeout(context.Background(), adapter, "A. Smith", Window{}, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "X" {
		t.Errorf("unexpected records: %+v", got)
	}
}

func TestSearchWithTimeout_WrapsAdapterError(t *testing.T) {
	adapter := &stubAdapter{
		name: "news-search",
		searchFunc: func(ctx context.Context, affiliate string, window Window) ([]domain.PublicationRecord, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := SearchWithTimeout(context.Background(), adapter, "A. Smith", Window{}, time.Second)
	if !coreerrors.IsSourceUnavailable(err) {
		t.Errorf("adapter error should surface as SourceUnavailableError, got %v", err)
	}
}

func TestSearchWithTimeout_BlockedAdapterTimesOut(t *testing.T) {
	adapter := &stubAdapter{
		name: "academic-citation",
		searchFunc: func(ctx context.Context, affiliate string, window Window) ([]domain.PublicationRecord, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	start := time.Now()
	_, err := SearchWithTimeout(context.Background(), adapter, "A. Smith", Window{}, 50*time.Millisecond)

	if !coreerrors.IsSourceUnavailable(err) {
		t.Errorf("timeout should surface as SourceUnavailableError, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
}
