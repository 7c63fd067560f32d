// ABOUTME: Append-only, identifier-indexed store for search jobs
// ABOUTME: Readers get snapshots; only the owning orchestrator run mutates a job

package jobs

import (
	"strconv"
	"sync"
	"time"

	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/errors"
)

// Store holds the append-only sequence of search jobs for the process
// lifetime. Jobs are never deleted; identifiers are 1-based and
// monotonically increasing. All reads return copies, so callers never
// observe a job mid-mutation.
type Store struct {
	mu   sync.RWMutex
	jobs []*domain.SearchJob
}

// NewStore creates an empty job store
func NewStore() *Store {
	return &Store{}
}

// Append creates a new Pending job and returns a snapshot of it.
func (s *Store) Append(now time.Time) domain.SearchJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := &domain.SearchJob{
		ID:        len(s.jobs) + 1,
		CreatedAt: now,
		Status:    domain.JobStatusPending,
	}
	s.jobs = append(s.jobs, job)
	return *job
}

// Get returns a snapshot of the job with the given identifier.
func (s *Store) Get(id int) (domain.SearchJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 1 || id > len(s.jobs) {
		return domain.SearchJob{}, &errors.NotFoundError{Resource: "search job", ID: strconv.Itoa(id)}
	}
	return *s.jobs[id-1], nil
}

// List returns snapshots of all jobs, newest first.
func (s *Store) List() []domain.SearchJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SearchJob, 0, len(s.jobs))
	for i := len(s.jobs) - 1; i >= 0; i-- {
		out = append(out, *s.jobs[i])
	}
	return out
}

// Count returns the number of jobs ever created.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// markRunning transitions a Pending job to Running. Terminal jobs are
// left untouched.
func (s *Store) markRunning(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job := s.lookup(id); job != nil && !job.Status.Terminal() {
		job.Status = domain.JobStatusRunning
	}
}

// complete transitions a job to Completed with its result count and
// artifact paths. No-op once the job is terminal.
func (s *Store) complete(id, results int, tabularPath, narrativePath string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := s.lookup(id)
	if job == nil || job.Status.Terminal() {
		return
	}
	job.Status = domain.JobStatusCompleted
	job.Results = results
	job.TabularPath = tabularPath
	job.NarrativePath = narrativePath
}

// fail transitions a job to Failed with a human-readable message.
// No-op once the job is terminal.
func (s *Store) fail(id int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := s.lookup(id)
	if job == nil || job.Status.Terminal() {
		return
	}
	job.Status = domain.JobStatusFailed
	job.Error = message
}

// lookup returns the mutable job record; callers must hold the lock.
func (s *Store) lookup(id int) *domain.SearchJob {
	if id < 1 || id > len(s.jobs) {
		return nil
	}
	return s.jobs[id-1]
}
