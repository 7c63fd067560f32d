package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"affiliate-tracker-api/core/aggregate"
	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/errors"
	"affiliate-tracker-api/core/report"
	"affiliate-tracker-api/core/scoring"
	"affiliate-tracker-api/core/sources"
	"affiliate-tracker-api/pkg/config"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

type stubAdapter struct {
	name       string
	searchFunc func(ctx context.Context, affiliate string, window sources.Window) ([]domain.PublicationRecord, error)
}

func (s *stubAdapter) Name() string { return s.name }
func (s *stubAdapter) Kind() string { return s.name }

func (s *stubAdapter) Search(ctx context.Context, affiliate string, window sources.Window) ([]domain.PublicationRecord, error) {
	return s.searchFunc(ctx, affiliate, window)
}

func newTestOrchestrator(t *testing.T, outputDir string, adapters []sources.Adapter) (*Orchestrator, *Store) {
	t.Helper()

	store := NewStore()
	orch := NewOrchestrator(Config{
		Store:      store,
		Roster:     []domain.Affiliate{{Name: "Nadia Ahmad"}, {Name: "Aziza Ahmed"}},
		Adapters:   adapters,
		Aggregator: aggregate.NewService(nil),
		Scorer: scoring.NewService(config.ScoringConfig{
			TopTierSources:   []string{"The New York Times"},
			MidTierSources:   []string{"Slate"},
			FeatureThreshold: 85,
			IncludeThreshold: 60,
		}),
		Reports:           report.NewService(outputDir, nil),
		LookbackDays:      30,
		AdapterTimeout:    time.Second,
		MaxConcurrentJobs: 2,
	})
	return orch, store
}

// waitForTerminal polls the store until the job leaves its running states.
func waitForTerminal(t *testing.T, store *Store, id int) domain.SearchJob {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("job %d never reached a terminal state", id)
		case <-time.After(10 * time.Millisecond):
		}

		job, err := store.Get(id)
		if err != nil {
			t.Fatalf("Get(%d) error: %v", id, err)
		}
		if job.Status.Terminal() {
			return job
		}
	}
}

func TestOrchestrator_AllAdaptersFailStillCompletes(t *testing.T) {
	dir := t.TempDir()
	failing := &stubAdapter{
		name: "news",
		searchFunc: func(ctx context.Context, affiliate string, window sources.Window) ([]domain.PublicationRecord, error) {
			return nil, fmt.Errorf("upstream unreachable")
		},
	}
	orch, store := newTestOrchestrator(t, dir, []sources.Adapter{failing})

	id := orch.Trigger()
	job := waitForTerminal(t, store, id)

	if job.Status != domain.JobStatusCompleted {
		t.Fatalf("status = %s, want Completed when only adapters fail", job.Status)
	}
	if job.Results != 0 {
		t.Errorf("results = %d, want 0", job.Results)
	}

	// The narrative must take the empty-result branch.
	narrative := readFile(t, job.NarrativePath)
	if !strings.Contains(narrative, "## No Publications Found") {
		t.Error("narrative for an empty run should contain the No Publications Found section")
	}
}

func TestOrchestrator_SuccessfulRunScoresAndReports(t *testing.T) {
	dir := t.TempDir()
	published := time.Now().AddDate(0, 0, -2)
	adapter := &stubAdapter{
		name: "news",
		searchFunc: func(ctx context.Context, affiliate string, window sources.Window) ([]domain.PublicationRecord, error) {
			return []domain.PublicationRecord{{
				Affiliate: affiliate,
				Title:     "On Accountability",
				Source:    "The New York Times",
				Type:      domain.ContentTypeInterview,
				Published: published,
			}}, nil
		},
	}
	orch, store := newTestOrchestrator(t, dir, []sources.Adapter{adapter})

	id := orch.Trigger()
	job := waitForTerminal(t, store, id)

	if job.Status != domain.JobStatusCompleted {
		t.Fatalf("status = %s (error %q), want Completed", job.Status, job.Error)
	}
	if job.Results != 2 {
		t.Errorf("results = %d, want one record per roster affiliate", job.Results)
	}
	if job.TabularPath == "" || job.NarrativePath == "" {
		t.Fatal("completed job must reference both report artifacts")
	}
	if filepath.Dir(job.TabularPath) != dir {
		t.Errorf("tabular artifact written to %s, want %s", job.TabularPath, dir)
	}

	narrative := readFile(t, job.NarrativePath)
	if !strings.Contains(narrative, "## Publications Found") {
		t.Error("narrative should contain the Publications Found section")
	}
	if !strings.Contains(narrative, "Nadia Ahmad") {
		t.Error("narrative should mention the affiliate the record belongs to")
	}
}

func TestOrchestrator_ReportWriteFailureFailsJob(t *testing.T) {
	adapter := &stubAdapter{
		name: "news",
		searchFunc: func(ctx context.Context, affiliate string, window sources.Window) ([]domain.PublicationRecord, error) {
			return nil, nil
		},
	}
	// A file path cannot serve as the output directory.
	blocked := filepath.Join(t.TempDir(), "not-a-dir")
	writeFile(t, blocked, "occupied")

	orch, store := newTestOrchestrator(t, filepath.Join(blocked, "reports"), []sources.Adapter{adapter})

	id := orch.Trigger()
	job := waitForTerminal(t, store, id)

	if job.Status != domain.JobStatusFailed {
		t.Fatalf("status = %s, want Failed when report write fails", job.Status)
	}
	if job.Error == "" {
		t.Error("failed job must carry a non-empty error message")
	}
	if job.TabularPath != "" || job.NarrativePath != "" {
		t.Error("failed job must not reference partial artifacts")
	}
}

func TestOrchestrator_JobTimeoutFailsJob(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	slow := &stubAdapter{
		name: "news",
		searchFunc: func(ctx context.Context, affiliate string, window sources.Window) ([]domain.PublicationRecord, error) {
			select {
			case <-release:
			case <-ctx.Done():
			}
			return nil, ctx.Err()
		},
	}

	store := NewStore()
	orch := NewOrchestrator(Config{
		Store:             store,
		Roster:            []domain.Affiliate{{Name: "Nadia Ahmad"}},
		Adapters:          []sources.Adapter{slow},
		Aggregator:        aggregate.NewService(nil),
		Scorer:            scoring.NewService(config.ScoringConfig{FeatureThreshold: 85, IncludeThreshold: 60}),
		Reports:           report.NewService(t.TempDir(), nil),
		LookbackDays:      30,
		AdapterTimeout:    time.Minute,
		JobTimeout:        50 * time.Millisecond,
		MaxConcurrentJobs: 1,
	})

	id := orch.Trigger()
	job := waitForTerminal(t, store, id)

	if job.Status != domain.JobStatusFailed {
		t.Fatalf("status = %s, want Failed on job timeout", job.Status)
	}
	if !strings.Contains(job.Error, "did not complete") {
		t.Errorf("error = %q, want a timeout message", job.Error)
	}
}

func TestOrchestrator_ConcurrentTriggersAreIndependent(t *testing.T) {
	dir := t.TempDir()
	adapter := &stubAdapter{
		name: "news",
		searchFunc: func(ctx context.Context, affiliate string, window sources.Window) ([]domain.PublicationRecord, error) {
			return []domain.PublicationRecord{{
				Affiliate: affiliate,
				Title:     "Shared Headline",
				Source:    "Slate",
				Type:      domain.ContentTypeOpEd,
				Published: time.Now().AddDate(0, 0, -1),
			}}, nil
		},
	}
	orch, store := newTestOrchestrator(t, dir, []sources.Adapter{adapter})

	var wg sync.WaitGroup
	ids := make([]int, 4)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = orch.Trigger()
		}(i)
	}
	wg.Wait()

	seen := map[int]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate job ID %d from concurrent triggers", id)
		}
		seen[id] = true

		job := waitForTerminal(t, store, id)
		if job.Status != domain.JobStatusCompleted {
			t.Errorf("job %d status = %s (error %q), want Completed", id, job.Status, job.Error)
		}
		if job.Results != 2 {
			t.Errorf("job %d results = %d, want 2", id, job.Results)
		}
	}

	if store.Count() != len(ids) {
		t.Errorf("store count = %d, want %d", store.Count(), len(ids))
	}
}

func TestOrchestrator_UnknownJobLookup(t *testing.T) {
	_, store := newTestOrchestrator(t, t.TempDir(), nil)

	if _, err := store.Get(42); !errors.IsNotFound(err) {
		t.Errorf("expected NotFoundError for unknown job, got %v", err)
	}
}
