// ABOUTME: Report generator renders the scored record set into the two fixed-layout artifacts
// ABOUTME: Produces a tabular CSV and a narrative Markdown document per completed job

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/errors"
	"affiliate-tracker-api/core/interfaces"
)

// Meta carries the job metadata the artifacts embed.
type Meta struct {
	JobID     int
	CreatedAt time.Time
	Since     time.Time
	Until     time.Time

	// Roster is the ordered affiliate roster; the narrative's faculty
	// highlights follow roster order
	Roster []string
}

// Paths are the generated artifact locations.
type Paths struct {
	Tabular   string
	Narrative string
}

// Column layout of the tabular artifact. Stable across runs: downstream
// editorial tooling relies on the structure.
var tabularHeader = []string{"Affiliate", "Title", "Source", "Content Type", "Date", "Score"}

// contentTypesMonitored is the fixed list rendered in the narrative.
var contentTypesMonitored = []string{
	"Op-Eds and Opinion Pieces",
	"Print Media Interviews",
	"Television and Radio Interviews",
	"Podcast Appearances",
	"Academic Articles and Commentary",
}

// nextSteps is the fixed five-item recommendation list.
var nextSteps = []string{
	"Review the tabular report for detailed publication information",
	"Select high-impact publications for featuring on the CSRR website",
	"Prioritize publications from major media outlets (Washington Post, NYT, CNN, etc.)",
	"Consider multimedia content (TV/radio interviews) for diverse content types",
	"Update the CSRR in the News section: https://csrr.rutgers.edu/newsroom/csrr-in-the-news/",
}

// Service renders report artifacts into the configured output directory.
type Service struct {
	outputDir string
	logger    interfaces.Logger
}

// NewService creates a report generator writing into outputDir.
func NewService(outputDir string, logger interfaces.Logger) *Service {
	return &Service{outputDir: outputDir, logger: logger}
}

// Generate writes both artifacts for the job and returns their paths.
// Both are produced even when the record set is empty; a write failure
// returns ReportWriteError and the job must fail.
func (s *Service) Generate(meta Meta, records []domain.ScoredRecord) (Paths, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return Paths{}, &errors.ReportWriteError{Path: s.outputDir, Err: err}
	}

	stamp := meta.CreatedAt.Format("20060102")
	paths := Paths{
		Tabular:   filepath.Join(s.outputDir, fmt.Sprintf("Report_%s.csv", stamp)),
		Narrative: filepath.Join(s.outputDir, fmt.Sprintf("Report_%s.md", stamp)),
	}

	if err := s.writeTabular(paths.Tabular, records); err != nil {
		return Paths{}, err
	}
	if err := s.writeNarrative(paths.Narrative, meta, records); err != nil {
		return Paths{}, err
	}

	if s.logger != nil {
		s.logger.Info("Report artifacts generated", map[string]interface{}{
			"job_id":    meta.JobID,
			"records":   len(records),
			"tabular":   paths.Tabular,
			"narrative": paths.Narrative,
		})
	}

	return paths, nil
}

// writeTabular renders one row per scored record plus the content-type
// summary section.
func (s *Service) writeTabular(path string, records []domain.ScoredRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return &errors.ReportWriteError{Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(tabularHeader); err != nil {
		return &errors.ReportWriteError{Path: path, Err: err}
	}

	for _, rec := range records {
		row := []string{
			rec.Affiliate,
			rec.Title,
			rec.Source,
			string(rec.Type),
			rec.Published.Format("2006-01-02"),
			strconv.Itoa(rec.Score),
		}
		if err := w.Write(row); err != nil {
			return &errors.ReportWriteError{Path: path, Err: err}
		}
	}

	// Summary section, separated by a blank record.
	if err := w.Write([]string{""}); err != nil {
		return &errors.ReportWriteError{Path: path, Err: err}
	}
	if err := w.Write([]string{"Summary by Content Type"}); err != nil {
		return &errors.ReportWriteError{Path: path, Err: err}
	}
	if err := w.Write([]string{"Content Type", "Count"}); err != nil {
		return &errors.ReportWriteError{Path: path, Err: err}
	}
	for _, line := range contentTypeCounts(records) {
		if err := w.Write(line); err != nil {
			return &errors.ReportWriteError{Path: path, Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &errors.ReportWriteError{Path: path, Err: err}
	}
	return nil
}

// contentTypeCounts tallies records per content type, sorted by type
// name for stable output.
func contentTypeCounts(records []domain.ScoredRecord) [][]string {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[string(rec.Type)]++
	}

	types := make([]string, 0, len(counts))
	for ct := range counts {
		types = append(types, ct)
	}
	sort.Strings(types)

	lines := make([][]string, 0, len(types))
	for _, ct := range types {
		lines = append(lines, []string{ct, strconv.Itoa(counts[ct])})
	}
	return lines
}

// writeNarrative renders the fixed-section narrative document.
func (s *Service) writeNarrative(path string, meta Meta, records []domain.ScoredRecord) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# CSRR Faculty Affiliates Publications - %s\n\n", meta.CreatedAt.Format("January 2006"))
	b.WriteString("Center for Security, Race and Rights\n")
	b.WriteString("Rutgers Law School\n")
	fmt.Fprintf(&b, "Report Generated: %s\n\n", meta.CreatedAt.Format("January 2, 2006"))

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "Total Publications Found: %d\n", len(records))
	fmt.Fprintf(&b, "Search Period: %s - %s\n",
		meta.Since.Format("January 2"), meta.Until.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Faculty Affiliates Monitored: %d\n\n", len(meta.Roster))

	b.WriteString("## Content Types Monitored\n\n")
	for _, ct := range contentTypesMonitored {
		fmt.Fprintf(&b, "- %s\n", ct)
	}
	b.WriteString("\n")

	if len(records) > 0 {
		b.WriteString("## Publications Found\n\n")
		for _, rec := range records {
			fmt.Fprintf(&b, "- %s: %q (%s, %s) - score %d, %s\n",
				rec.Affiliate, rec.Title, rec.Source, rec.Type, rec.Score, rec.Action)
		}
	} else {
		b.WriteString("## No Publications Found\n\n")
		b.WriteString("No new publications were found during this search period. This could be due to:\n\n")
		b.WriteString("- Limited recent activity by faculty affiliates\n")
		b.WriteString("- Search engine limitations or rate limiting\n")
		b.WriteString("- Changes in publication patterns or timing\n")
	}
	b.WriteString("\n")

	b.WriteString("## Next Steps for CSRR in the News\n\n")
	for i, step := range nextSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\n")

	b.WriteString("## Faculty Highlights\n\n")
	highlights := facultyHighlights(meta.Roster, records)
	if len(highlights) == 0 {
		b.WriteString("No faculty recorded publications this period.\n")
	}
	for _, h := range highlights {
		fmt.Fprintf(&b, "- %s: %d publication(s) found\n", h.name, h.count)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return &errors.ReportWriteError{Path: path, Err: err}
	}
	return nil
}

type highlight struct {
	name  string
	count int
}

// facultyHighlights returns at most the first five roster affiliates
// with nonzero records, in roster order.
func facultyHighlights(roster []string, records []domain.ScoredRecord) []highlight {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Affiliate]++
	}

	highlights := make([]highlight, 0, 5)
	for _, name := range roster {
		if counts[name] == 0 {
			continue
		}
		highlights = append(highlights, highlight{name: name, count: counts[name]})
		if len(highlights) == 5 {
			break
		}
	}
	return highlights
}
