// ABOUTME: Aggregator merges every adapter's output into one canonical record set
// ABOUTME: Deduplicates by identity tuple and builds the recent-publications view

package aggregate

import (
	"sort"

	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/interfaces"
)

// Result is the canonical publication set for one job.
type Result struct {
	// ByAffiliate holds each affiliate's deduplicated records
	ByAffiliate map[string][]domain.PublicationRecord

	// Recent is the global view sorted by published date descending,
	// ties broken by affiliate name ascending
	Recent []domain.PublicationRecord

	// Dropped counts malformed records discarded during normalization
	Dropped int
}

// Total returns the number of records retained after deduplication.
func (r Result) Total() int {
	return len(r.Recent)
}

// Service merges and deduplicates publication records. Aggregation is a
// pure function of its input: the same raw multiset always yields the
// same result.
type Service struct {
	logger interfaces.Logger
}

// NewService creates an aggregator
func NewService(logger interfaces.Logger) *Service {
	return &Service{logger: logger}
}

// Aggregate groups records by affiliate, deduplicates within each group
// by the (affiliate, normalized title, source) identity tuple, and
// builds the sorted recent view. Malformed records are dropped, not
// fatal.
func (s *Service) Aggregate(records []domain.PublicationRecord) Result {
	result := Result{ByAffiliate: make(map[string][]domain.PublicationRecord)}

	kept := make(map[domain.Identity]domain.PublicationRecord)
	order := make([]domain.Identity, 0, len(records))

	for _, rec := range records {
		if !rec.IsValid() {
			result.Dropped++
			if s.logger != nil {
				s.logger.Warn("Dropping malformed record", map[string]interface{}{
					"affiliate": rec.Affiliate,
					"source":    rec.Source,
				})
			}
			continue
		}

		id := rec.Identity()
		existing, seen := kept[id]
		if !seen {
			kept[id] = rec
			order = append(order, id)
			continue
		}
		kept[id] = preferRecord(existing, rec)
	}

	for _, id := range order {
		rec := kept[id]
		result.ByAffiliate[rec.Affiliate] = append(result.ByAffiliate[rec.Affiliate], rec)
		result.Recent = append(result.Recent, rec)
	}

	sort.SliceStable(result.Recent, func(i, j int) bool {
		a, b := result.Recent[i], result.Recent[j]
		if !a.Published.Equal(b.Published) {
			return a.Published.After(b.Published)
		}
		return a.Affiliate < b.Affiliate
	})

	return result
}

// preferRecord resolves two records with equal identity: a specific
// content type beats unknown, then a non-empty URL beats an empty one,
// then the first seen wins.
func preferRecord(existing, candidate domain.PublicationRecord) domain.PublicationRecord {
	existingUnknown := existing.Type == domain.ContentTypeUnknown
	candidateUnknown := candidate.Type == domain.ContentTypeUnknown

	if existingUnknown && !candidateUnknown {
		return candidate
	}
	if !existingUnknown && candidateUnknown {
		return existing
	}

	if existing.URL == "" && candidate.URL != "" {
		return candidate
	}
	return existing
}
