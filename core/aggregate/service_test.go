package aggregate

import (
	"reflect"
	"testing"
	"time"

	"affiliate-tracker-api/core/domain"
)

var today = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

func rec(affiliate, title, source string, ct domain.ContentType) domain.PublicationRecord {
	return domain.PublicationRecord{
		Affiliate: affiliate,
		Title:     title,
		Source:    source,
		Type:      ct,
		Published: today,
	}
}

func TestAggregate_DeduplicatesByIdentity(t *testing.T) {
	svc := NewService(nil)

	result := svc.Aggregate([]domain.PublicationRecord{
		rec("A. Smith", "X", "Times", domain.ContentTypeOpEd),
		rec("A. Smith", "X", "Times", domain.ContentTypeUnknown),
	})

	if result.Total() != 1 {
		t.Fatalf("got %d records, want exactly 1", result.Total())
	}
	if result.Recent[0].Type != domain.ContentTypeOpEd {
		t.Errorf("dedupe kept %s, want the non-unknown op-ed", result.Recent[0].Type)
	}
}

func TestAggregate_SpecificTypeWinsRegardlessOfOrder(t *testing.T) {
	svc := NewService(nil)

	result := svc.Aggregate([]domain.PublicationRecord{
		rec("A. Smith", "X", "Times", domain.ContentTypeUnknown),
		rec("A. Smith", "X", "Times", domain.ContentTypeOpEd),
	})

	if result.Total() != 1 || result.Recent[0].Type != domain.ContentTypeOpEd {
		t.Errorf("non-unknown type should win regardless of arrival order, got %+v", result.Recent)
	}
}

func TestAggregate_URLBreaksTypeTie(t *testing.T) {
	svc := NewService(nil)

	withURL := rec("A. Smith", "X", "Times", domain.ContentTypeOpEd)
	withURL.URL = "https://example.com/x"

	result := svc.Aggregate([]domain.PublicationRecord{
		rec("A. Smith", "X", "Times", domain.ContentTypeOpEd),
		withURL,
	})

	if result.Total() != 1 || result.Recent[0].URL == "" {
		t.Errorf("record with origin URL should win the tie, got %+v", result.Recent[0])
	}
}

func TestAggregate_TitleNormalization(t *testing.T) {
	svc := NewService(nil)

	result := svc.Aggregate([]domain.PublicationRecord{
		rec("A. Smith", "The  Case for Reform", "Times", domain.ContentTypeOpEd),
		rec("A. Smith", "the case for reform.", "Times", domain.ContentTypeOpEd),
	})

	if result.Total() != 1 {
		t.Errorf("case and punctuation variants should deduplicate, got %d", result.Total())
	}
}

func TestAggregate_DistinctSourcesKept(t *testing.T) {
	svc := NewService(nil)

	result := svc.Aggregate([]domain.PublicationRecord{
		rec("A. Smith", "X", "Times", domain.ContentTypeOpEd),
		rec("A. Smith", "X", "Herald", domain.ContentTypeOpEd),
	})

	if result.Total() != 2 {
		t.Errorf("same title from different sources are distinct publications, got %d", result.Total())
	}
}

func TestAggregate_DropsMalformedRecords(t *testing.T) {
	svc := NewService(nil)

	result := svc.Aggregate([]domain.PublicationRecord{
		rec("A. Smith", "X", "Times", domain.ContentTypeOpEd),
		rec("", "orphaned", "Times", domain.ContentTypeOpEd),
		rec("A. Smith", "   ", "Times", domain.ContentTypeOpEd),
	})

	if result.Total() != 1 {
		t.Errorf("malformed records should be dropped, got %d kept", result.Total())
	}
	if result.Dropped != 2 {
		t.Errorf("dropped = %d, want 2", result.Dropped)
	}
}

func TestAggregate_RecentViewOrdering(t *testing.T) {
	svc := NewService(nil)

	older := rec("Zed", "older", "Times", domain.ContentTypeOpEd)
	older.Published = today.AddDate(0, 0, -5)
	tieA := rec("Adams", "tie-a", "Times", domain.ContentTypeOpEd)
	tieB := rec("Baker", "tie-b", "Times", domain.ContentTypeOpEd)

	result := svc.Aggregate([]domain.PublicationRecord{older, tieB, tieA})

	titles := []string{result.Recent[0].Title, result.Recent[1].Title, result.Recent[2].Title}
	want := []string{"tie-a", "tie-b", "older"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("recent view order = %v, want %v", titles, want)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	svc := NewService(nil)

	input := []domain.PublicationRecord{
		rec("A. Smith", "X", "Times", domain.ContentTypeOpEd),
		rec("A. Smith", "X", "Times", domain.ContentTypeUnknown),
		rec("B. Jones", "Y", "Herald", domain.ContentTypeInterview),
		rec("B. Jones", "Z", "NPR", domain.ContentTypeBroadcast),
	}

	first := svc.Aggregate(input)
	second := svc.Aggregate(input)

	if !reflect.DeepEqual(first.Recent, second.Recent) {
		t.Error("aggregating the same multiset twice must yield identical recent views")
	}
	if !reflect.DeepEqual(first.ByAffiliate, second.ByAffiliate) {
		t.Error("aggregating the same multiset twice must yield identical groups")
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	svc := NewService(nil)

	result := svc.Aggregate(nil)

	if result.Total() != 0 {
		t.Errorf("empty input should yield an empty set, got %d", result.Total())
	}
	if result.ByAffiliate == nil {
		t.Error("ByAffiliate should be initialized even for empty input")
	}
}
