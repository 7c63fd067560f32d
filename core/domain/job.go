// ABOUTME: SearchJob domain model tracks one orchestration run end to end
// ABOUTME: Defines the Pending/Running/Completed/Failed status machine

package domain

import "time"

// JobStatus is the lifecycle state of a search job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "Pending"
	JobStatusRunning   JobStatus = "Running"
	JobStatusCompleted JobStatus = "Completed"
	JobStatusFailed    JobStatus = "Failed"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// SearchJob represents one orchestration run. Jobs are append-only: a
// job is created when a run is triggered and never deleted for the
// process lifetime. Only the orchestrator run owning the job mutates it.
type SearchJob struct {
	// ID is the sequential 1-based identifier, unique per process
	ID int

	// CreatedAt is when the run was triggered
	CreatedAt time.Time

	// Status is the job's lifecycle state
	Status JobStatus

	// Results is the number of scored records produced by this run's
	// aggregation pass. Meaningful once Status is Completed.
	Results int

	// Error holds the failure message for a Failed job
	Error string

	// TabularPath is the generated tabular artifact, once Completed
	TabularPath string

	// NarrativePath is the generated narrative artifact, once Completed
	NarrativePath string
}
