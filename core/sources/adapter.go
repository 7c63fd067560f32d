// ABOUTME: Source adapter contract and the shared search window / timeout plumbing
// ABOUTME: Adapters are failure-isolated; a failing source never aborts a job

package sources

import (
	"context"
	"time"

	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/errors"
)

// Adapter fetches publication records for one affiliate from one
// external source kind. Implementations are independent and
// failure-isolated: an error from one adapter is recorded and absorbed,
// never propagated to the job.
type Adapter interface {
	// Name identifies the adapter for logging and error reporting
	Name() string

	// Kind is the source kind (news, scholar, ...) used for shared
	// rate limiting across concurrent jobs
	Kind() string

	// Search returns zero or more publication records for the
	// affiliate within the window, or a source-local error
	Search(ctx context.Context, affiliate string, window Window) ([]domain.PublicationRecord, error)
}

// Window is the trailing time span within which publications are
// considered relevant.
type Window struct {
	Since time.Time
	Until time.Time
}

// NewWindow builds a lookback window ending at now. A record published
// exactly lookbackDays ago is still inside the window (inclusive).
func NewWindow(now time.Time, lookbackDays int) Window {
	return Window{
		Since: now.AddDate(0, 0, -lookbackDays),
		Until: now,
	}
}

// Contains reports whether t falls inside the window. The lower bound
// is inclusive; anything strictly older than Since is out.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Since) && !t.After(w.Until)
}

// DateBucket returns the window's day key for cache lookups.
func (w Window) DateBucket() string {
	return w.Until.Format("20060102")
}

// SearchWithTimeout runs one adapter call under the mandatory per-call
// bound. A timeout or adapter error surfaces as SourceUnavailableError;
// the caller records it and continues with the affiliate's other
// adapters.
func SearchWithTimeout(ctx context.Context, adapter Adapter, affiliate string, window Window, timeout time.Duration) ([]domain.PublicationRecord, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		records []domain.PublicationRecord
		err     error
	}

	done := make(chan result, 1)
	go func() {
		records, err := adapter.Search(callCtx, affiliate, window)
		done <- result{records: records, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, &errors.SourceUnavailableError{
				Source:    adapter.Name(),
				Affiliate: affiliate,
				Err:       r.err,
			}
		}
		return r.records, nil
	case <-callCtx.Done():
		return nil, &errors.SourceUnavailableError{
			Source:    adapter.Name(),
			Affiliate: affiliate,
			Err:       callCtx.Err(),
		}
	}
}
