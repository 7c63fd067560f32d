// ABOUTME: Orchestrator drives one search job end to end off the request path
// ABOUTME: Fans out adapters per affiliate, then aggregates, scores, and renders reports

package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"affiliate-tracker-api/core/aggregate"
	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/interfaces"
	"affiliate-tracker-api/core/report"
	"affiliate-tracker-api/core/scoring"
	"affiliate-tracker-api/core/sources"
)

// Config wires an orchestrator's collaborators and limits.
type Config struct {
	Store      *Store
	Roster     []domain.Affiliate
	Adapters   []sources.Adapter
	Enricher   *sources.Enricher
	Aggregator *aggregate.Service
	Scorer     *scoring.Service
	Reports    *report.Service
	Logger     interfaces.Logger

	LookbackDays   int
	AdapterTimeout time.Duration

	// JobTimeout bounds a run's wall-clock time; zero disables it
	JobTimeout time.Duration

	// MaxConcurrentJobs bounds how many runs execute at once
	MaxConcurrentJobs int
}

// Orchestrator creates search jobs and runs them on background workers.
// The triggering caller returns immediately with the job identifier and
// polls the store for progress. Each run has exclusive write ownership
// of its job record.
type Orchestrator struct {
	cfg Config
	sem chan struct{}
}

// NewOrchestrator creates an orchestrator from its configuration.
func NewOrchestrator(cfg Config) *Orchestrator {
	if cfg.MaxConcurrentJobs < 1 {
		cfg.MaxConcurrentJobs = 1
	}
	return &Orchestrator{
		cfg: cfg,
		sem: make(chan struct{}, cfg.MaxConcurrentJobs),
	}
}

// Trigger creates a Pending job, hands it to a background worker, and
// returns the job identifier without waiting for completion.
func (o *Orchestrator) Trigger() int {
	job := o.cfg.Store.Append(time.Now())

	if o.cfg.Logger != nil {
		o.cfg.Logger.Info("Search job triggered", map[string]interface{}{
			"job_id": job.ID,
		})
	}

	go o.run(job)
	return job.ID
}

// run executes one job. Adapter failures are absorbed; only a failure
// in the post-aggregation stages forces the job to Failed.
func (o *Orchestrator) run(job domain.SearchJob) {
	o.sem <- struct{}{}
	defer func() { <-o.sem }()

	ctx := context.Background()
	if o.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.JobTimeout)
		defer cancel()
	}

	o.cfg.Store.markRunning(job.ID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		o.execute(ctx, job)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// The pipeline may still be unwinding; terminal-state guards in
		// the store make any late completion a no-op.
		o.cfg.Store.fail(job.ID, fmt.Sprintf("job did not complete within %s", o.cfg.JobTimeout))
	}
}

// execute runs the search pipeline for one job.
func (o *Orchestrator) execute(ctx context.Context, job domain.SearchJob) {
	window := sources.NewWindow(job.CreatedAt, o.cfg.LookbackDays)

	raw := o.collect(ctx, window)

	// A job whose deadline lapsed during collection must not race the
	// timeout path to Completed.
	if ctx.Err() != nil {
		o.cfg.Store.fail(job.ID, fmt.Sprintf("job did not complete within %s", o.cfg.JobTimeout))
		return
	}

	if o.cfg.Enricher != nil {
		raw = o.cfg.Enricher.Enrich(ctx, raw)
	}

	aggregated := o.cfg.Aggregator.Aggregate(raw)
	scored := o.cfg.Scorer.ScoreAll(aggregated.Recent)

	paths, err := o.cfg.Reports.Generate(report.Meta{
		JobID:     job.ID,
		CreatedAt: job.CreatedAt,
		Since:     window.Since,
		Until:     window.Until,
		Roster:    domain.RosterNames(o.cfg.Roster),
	}, scored)
	if err != nil {
		if o.cfg.Logger != nil {
			o.cfg.Logger.Error("Report generation failed", map[string]interface{}{
				"job_id": job.ID,
				"error":  err.Error(),
			})
		}
		o.cfg.Store.fail(job.ID, err.Error())
		return
	}

	o.cfg.Store.complete(job.ID, len(scored), paths.Tabular, paths.Narrative)

	if o.cfg.Logger != nil {
		o.cfg.Logger.Info("Search job completed", map[string]interface{}{
			"job_id":  job.ID,
			"results": len(scored),
			"dropped": aggregated.Dropped,
		})
	}
}

// collect fans out every adapter for every roster affiliate in parallel
// and joins before returning: aggregation never starts until all
// adapter calls have returned or timed out.
func (o *Orchestrator) collect(ctx context.Context, window sources.Window) []domain.PublicationRecord {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		records []domain.PublicationRecord
	)

	for _, affiliate := range o.cfg.Roster {
		for _, adapter := range o.cfg.Adapters {
			wg.Add(1)
			go func(name string, adapter sources.Adapter) {
				defer wg.Done()

				found, err := sources.SearchWithTimeout(ctx, adapter, name, window, o.cfg.AdapterTimeout)
				if err != nil {
					// Source-local failure: record it and move on.
					if o.cfg.Logger != nil {
						o.cfg.Logger.Warn("Source unavailable", map[string]interface{}{
							"source":    adapter.Name(),
							"affiliate": name,
							"error":     err.Error(),
						})
					}
					return
				}

				mu.Lock()
				records = append(records, found...)
				mu.Unlock()
			}(affiliate.Name, adapter)
		}
	}

	wg.Wait()
	return records
}
