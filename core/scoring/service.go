// ABOUTME: Scorer assigns editorial recommendation scores to publication records
// ABOUTME: Deterministic weighted heuristic over source tier, content type, and citations

package scoring

import (
	"strings"

	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/pkg/config"
)

// Recommended action labels, selected by score threshold.
const (
	ActionFeature  = "feature immediately"
	ActionInclude  = "include in monthly report"
	ActionNoAction = "no action"
)

// Base scores per source tier and the bounded adjustments on top.
const (
	baseTopTier      = 70
	baseMidTier      = 55
	baseUnclassified = 40

	bonusBroadcast = 20
	bonusInterview = 15
	bonusOpEd      = 5

	citationDivisor  = 5
	citationBonusCap = 20
)

// Service scores publication records for editorial recommendation.
// Scoring is a fixed heuristic, not a learned model: the same record
// always produces the same score and rationale.
type Service struct {
	topTier          map[string]bool
	midTier          map[string]bool
	featureThreshold int
	includeThreshold int
}

// NewService creates a scorer from the scoring configuration.
func NewService(cfg config.ScoringConfig) *Service {
	return &Service{
		topTier:          tierSet(cfg.TopTierSources),
		midTier:          tierSet(cfg.MidTierSources),
		featureThreshold: cfg.FeatureThreshold,
		includeThreshold: cfg.IncludeThreshold,
	}
}

func tierSet(sources []string) map[string]bool {
	set := make(map[string]bool, len(sources))
	for _, s := range sources {
		set[strings.ToLower(strings.TrimSpace(s))] = true
	}
	return set
}

// Score produces the scored record for one publication. The rationale
// names every factor that contributed so the report's recommendation
// section is self-explanatory.
func (s *Service) Score(rec domain.PublicationRecord) domain.ScoredRecord {
	score := 0
	var factors []string

	switch {
	case s.topTier[strings.ToLower(rec.Source)]:
		score += baseTopTier
		factors = append(factors, "top-tier outlet")
	case s.midTier[strings.ToLower(rec.Source)]:
		score += baseMidTier
		factors = append(factors, "mid-tier outlet")
	default:
		score += baseUnclassified
	}

	switch rec.Type {
	case domain.ContentTypeBroadcast:
		score += bonusBroadcast
		factors = append(factors, "broadcast reach")
	case domain.ContentTypeInterview:
		score += bonusInterview
		factors = append(factors, "interview content")
	case domain.ContentTypeOpEd:
		score += bonusOpEd
		factors = append(factors, "op-ed placement")
	}

	if rec.Citations != nil && *rec.Citations > 0 {
		bonus := *rec.Citations / citationDivisor
		if bonus > citationBonusCap {
			bonus = citationBonusCap
		}
		score += bonus
		if bonus == citationBonusCap {
			factors = append(factors, "highly cited")
		} else if bonus > 0 {
			factors = append(factors, "cited work")
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	rationale := "unclassified source"
	if len(factors) > 0 {
		rationale = strings.Join(factors, ", ")
	}

	return domain.ScoredRecord{
		PublicationRecord: rec,
		Score:             score,
		Rationale:         rationale,
		Action:            s.action(score),
	}
}

// ScoreAll scores a record set, preserving input order.
func (s *Service) ScoreAll(records []domain.PublicationRecord) []domain.ScoredRecord {
	scored := make([]domain.ScoredRecord, 0, len(records))
	for _, rec := range records {
		scored = append(scored, s.Score(rec))
	}
	return scored
}

// action selects the recommended action label by threshold.
func (s *Service) action(score int) string {
	switch {
	case score >= s.featureThreshold:
		return ActionFeature
	case score >= s.includeThreshold:
		return ActionInclude
	default:
		return ActionNoAction
	}
}
