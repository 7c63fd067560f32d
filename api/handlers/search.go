// ABOUTME: Search job handlers for the Huma API
// ABOUTME: Exposes job triggering, status lookup, and report downloads

package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/errors"
	"affiliate-tracker-api/core/jobs"
	"github.com/danielgtaylor/huma/v2"
)

// JobTrigger starts a search run and returns its identifier.
type JobTrigger interface {
	Trigger() int
}

// JobReader exposes read access to recorded jobs.
type JobReader interface {
	Get(id int) (domain.SearchJob, error)
	List() []domain.SearchJob
}

// SearchHandler handles search job HTTP requests
type SearchHandler struct {
	trigger JobTrigger
	store   JobReader
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(trigger JobTrigger, store JobReader) *SearchHandler {
	return &SearchHandler{
		trigger: trigger,
		store:   store,
	}
}

// RegisterRoutes registers all search job routes
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "triggerSearch",
		Method:        http.MethodPost,
		Path:          "/searches",
		Summary:       "Trigger a search job",
		Description:   "Starts a publication search across all sources for every tracked affiliate and returns immediately",
		Tags:          []string{"Searches"},
		DefaultStatus: http.StatusAccepted,
	}, h.TriggerSearch)

	huma.Register(api, huma.Operation{
		OperationID: "listSearches",
		Method:      http.MethodGet,
		Path:        "/searches",
		Summary:     "List search jobs",
		Description: "Returns all search jobs recorded this process lifetime, newest first",
		Tags:        []string{"Searches"},
	}, h.ListSearches)

	huma.Register(api, huma.Operation{
		OperationID: "getSearch",
		Method:      http.MethodGet,
		Path:        "/searches/{id}",
		Summary:     "Get a search job",
		Description: "Returns the status and results of a single search job",
		Tags:        []string{"Searches"},
	}, h.GetSearch)

	huma.Register(api, huma.Operation{
		OperationID: "downloadReport",
		Method:      http.MethodGet,
		Path:        "/searches/{id}/report/{kind}",
		Summary:     "Download a report artifact",
		Description: "Returns the tabular or narrative report generated by a completed search job",
		Tags:        []string{"Searches"},
	}, h.DownloadReport)
}

// JobResponse is the API representation of a search job
type JobResponse struct {
	ID            int       `json:"id" doc:"Sequential job identifier"`
	CreatedAt     time.Time `json:"created_at" doc:"When the job was triggered"`
	Status        string    `json:"status" doc:"Pending, Running, Completed, or Failed"`
	Results       int       `json:"results" doc:"Number of scored records produced"`
	Error         string    `json:"error,omitempty" doc:"Failure message for a Failed job"`
	TabularPath   string    `json:"tabular_path,omitempty" doc:"Tabular report artifact path"`
	NarrativePath string    `json:"narrative_path,omitempty" doc:"Narrative report artifact path"`
}

func toJobResponse(job domain.SearchJob) JobResponse {
	return JobResponse{
		ID:            job.ID,
		CreatedAt:     job.CreatedAt,
		Status:        string(job.Status),
		Results:       job.Results,
		Error:         job.Error,
		TabularPath:   job.TabularPath,
		NarrativePath: job.NarrativePath,
	}
}

// TriggerSearchOutput defines the output for the TriggerSearch operation
type TriggerSearchOutput struct {
	Body struct {
		ID int `json:"id" doc:"Identifier of the triggered job"`
	}
}

// TriggerSearch handles POST /searches
func (h *SearchHandler) TriggerSearch(ctx context.Context, input *struct{}) (*TriggerSearchOutput, error) {
	resp := &TriggerSearchOutput{}
	resp.Body.ID = h.trigger.Trigger()
	return resp, nil
}

// ListSearchesOutput defines the output for the ListSearches operation
type ListSearchesOutput struct {
	Body struct {
		Jobs []JobResponse `json:"jobs"`
	}
}

// ListSearches handles GET /searches
func (h *SearchHandler) ListSearches(ctx context.Context, input *struct{}) (*ListSearchesOutput, error) {
	recorded := h.store.List()

	resp := &ListSearchesOutput{}
	resp.Body.Jobs = make([]JobResponse, 0, len(recorded))
	for _, job := range recorded {
		resp.Body.Jobs = append(resp.Body.Jobs, toJobResponse(job))
	}
	return resp, nil
}

// GetSearchInput defines the input for the GetSearch operation
type GetSearchInput struct {
	ID int `path:"id" doc:"Job identifier"`
}

// GetSearchOutput defines the output for the GetSearch operation
type GetSearchOutput struct {
	Body JobResponse
}

// GetSearch handles GET /searches/{id}
func (h *SearchHandler) GetSearch(ctx context.Context, input *GetSearchInput) (*GetSearchOutput, error) {
	job, err := h.store.Get(input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetSearchOutput{Body: toJobResponse(job)}, nil
}

// DownloadReportInput defines the input for the DownloadReport operation
type DownloadReportInput struct {
	ID   int    `path:"id" doc:"Job identifier"`
	Kind string `path:"kind" enum:"tabular,narrative" doc:"Report artifact kind"`
}

// DownloadReportOutput defines the output for the DownloadReport operation
type DownloadReportOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// DownloadReport handles GET /searches/{id}/report/{kind}
func (h *SearchHandler) DownloadReport(ctx context.Context, input *DownloadReportInput) (*DownloadReportOutput, error) {
	job, err := h.store.Get(input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	if job.Status != domain.JobStatusCompleted {
		return nil, toHumaError(&errors.ConflictError{
			Resource: "search job report",
			Message:  "job has not completed",
		})
	}

	path, contentType := reportArtifact(job, input.Kind)
	if path == "" {
		return nil, toHumaError(&errors.NotFoundError{Resource: "report kind", ID: input.Kind})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, toHumaError(&errors.ReportWriteError{Path: path, Err: err})
	}

	return &DownloadReportOutput{
		ContentType: contentType,
		Body:        data,
	}, nil
}

// reportArtifact maps a kind to the job's artifact path and MIME type.
func reportArtifact(job domain.SearchJob, kind string) (string, string) {
	switch kind {
	case "tabular":
		return job.TabularPath, "text/csv"
	case "narrative":
		return job.NarrativePath, "text/markdown"
	default:
		return "", ""
	}
}

var _ JobReader = (*jobs.Store)(nil)
var _ JobTrigger = (*jobs.Orchestrator)(nil)
