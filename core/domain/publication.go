// ABOUTME: PublicationRecord domain model represents one discovered publication
// ABOUTME: Defines content types and the identity tuple used for deduplication

package domain

import (
	"strings"
	"time"
)

// ContentType classifies a discovered publication.
type ContentType string

const (
	ContentTypeOpEd      ContentType = "op-ed"
	ContentTypeInterview ContentType = "interview"
	ContentTypeAcademic  ContentType = "academic-article"
	ContentTypeBroadcast ContentType = "broadcast-appearance"
	ContentTypeComment   ContentType = "commentary"
	ContentTypeUnknown   ContentType = "unknown"
)

// ParseContentType maps free-form source labels onto a ContentType.
// Unrecognized labels map to ContentTypeUnknown.
func ParseContentType(label string) ContentType {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "op-ed", "oped", "opinion", "op-eds and opinion pieces":
		return ContentTypeOpEd
	case "interview", "print media interview":
		return ContentTypeInterview
	case "academic-article", "academic article", "academic paper", "academic publication":
		return ContentTypeAcademic
	case "broadcast-appearance", "tv interview", "radio interview", "podcast", "podcast appearance", "broadcast":
		return ContentTypeBroadcast
	case "commentary", "article", "analysis":
		return ContentTypeComment
	default:
		return ContentTypeUnknown
	}
}

// PublicationRecord represents one discovered item for an affiliate.
// Records are created by source adapters and read-only after aggregation.
type PublicationRecord struct {
	// Affiliate is the display name of the tracked person
	Affiliate string

	// Title is the publication's headline
	Title string

	// Source is the outlet or repository name (e.g. "Washington Post")
	Source string

	// Type classifies the publication
	Type ContentType

	// Published is when the item was published. May be estimated when
	// the source only provides relative recency or a bare year.
	Published time.Time

	// URL is the origin link, if the source provided one
	URL string

	// Citations is the citation count for academic-source records
	Citations *int

	// Summary is a short excerpt or extracted summary, if available
	Summary string
}

// Identity is the deduplication key for publication records. Two records
// with equal identity are the same logical publication regardless of
// which adapter produced them.
type Identity struct {
	Affiliate string
	Title     string
	Source    string
}

// Identity returns the record's deduplication key with the title
// normalized (lowercased, punctuation trimmed, whitespace collapsed).
func (r PublicationRecord) Identity() Identity {
	return Identity{
		Affiliate: r.Affiliate,
		Title:     NormalizeTitle(r.Title),
		Source:    r.Source,
	}
}

// IsValid reports whether the record carries the fields aggregation
// requires. Records failing validation are dropped, not fatal.
func (r PublicationRecord) IsValid() bool {
	return r.Affiliate != "" && strings.TrimSpace(r.Title) != ""
}

// NormalizeTitle produces the canonical form of a title for identity
// comparison.
func NormalizeTitle(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	lowered = strings.Trim(lowered, ".,:;!?'\"“”‘’")
	return strings.Join(strings.Fields(lowered), " ")
}

// ScoredRecord is a PublicationRecord plus the editorial recommendation
// produced by the scorer. Derived, never stored independently.
type ScoredRecord struct {
	PublicationRecord

	// Score is the editorial recommendation score, 0-100
	Score int

	// Rationale names the factors that drove the score
	Rationale string

	// Action is the recommended editorial action label
	Action string
}
