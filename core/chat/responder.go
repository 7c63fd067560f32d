// ABOUTME: Rule-based chat responder for the dashboard assistant
// ABOUTME: Dispatches on keywords in order; first matching rule wins

package chat

import (
	"fmt"
	"strings"

	"affiliate-tracker-api/core/domain"
)

// rule pairs a match predicate with a response builder. Rules are
// evaluated in order and the first match wins, so more specific rules
// must come before broader ones.
type rule struct {
	matches func(message string) bool
	respond func(message string) string
}

// Responder answers dashboard chat messages from a fixed rule table.
// It knows the roster it serves but keeps no conversation state.
type Responder struct {
	roster []domain.Affiliate
	rules  []rule
}

// NewResponder creates a responder for the given roster.
func NewResponder(roster []domain.Affiliate) *Responder {
	r := &Responder{roster: roster}
	r.rules = []rule{
		{anyKeyword("hello", "hi"), r.greeting},
		{anyKeyword("faculty", "list"), r.facultyList},
		{anyKeyword("search"), r.search},
		{anyKeyword("help"), r.help},
		{anyKeyword("report"), r.reports},
		{anyKeyword("email", "subscribe"), r.subscriptions},
		{r.mentionsAffiliate, r.affiliateInfo},
		{anyKeyword("recommend", "suggest"), r.recommendations},
		{anyKeyword("timeline"), r.timeline},
	}
	return r
}

// Respond returns the reply for one user message.
func (r *Responder) Respond(message string) string {
	lowered := strings.ToLower(message)
	for _, rule := range r.rules {
		if rule.matches(lowered) {
			return rule.respond(lowered)
		}
	}
	return r.fallback(lowered)
}

// anyKeyword matches when the lowercased message contains any keyword.
func anyKeyword(keywords ...string) func(string) bool {
	return func(message string) bool {
		for _, keyword := range keywords {
			if strings.Contains(message, keyword) {
				return true
			}
		}
		return false
	}
}

func (r *Responder) mentionsAffiliate(message string) bool {
	return r.matchAffiliate(message) != ""
}

// matchAffiliate returns the first roster name mentioned in the
// message, or empty when none match.
func (r *Responder) matchAffiliate(message string) string {
	for _, affiliate := range r.roster {
		if strings.Contains(message, strings.ToLower(affiliate.Name)) {
			return affiliate.Name
		}
	}
	return ""
}

func (r *Responder) greeting(string) string {
	return fmt.Sprintf("Hello! I'm the affiliate tracker assistant. I can help you with %d tracked affiliates, run searches, and explain reports. What would you like to do?", len(r.roster))
}

func (r *Responder) facultyList(string) string {
	sample := domain.RosterNames(r.roster)
	if len(sample) > 3 {
		sample = sample[:3]
	}
	return fmt.Sprintf("We track %d affiliates including %s and others. Ask about any of them to learn more about their recent publications and media appearances.", len(r.roster), strings.Join(sample, ", "))
}

func (r *Responder) search(string) string {
	return "I can help you run publication searches. The system monitors op-eds, interviews, broadcast appearances, and academic articles across the last 30 days. Trigger a search from the dashboard to begin."
}

func (r *Responder) help(string) string {
	return "I can help you with affiliate information, running publication searches, understanding results, email subscriptions, and report generation. What would you like to know more about?"
}

func (r *Responder) reports(string) string {
	return "Each search produces a tabular report and a narrative summary automatically. Reports list affiliate publications with scores and recommended actions. Would you like me to explain the report format?"
}

func (r *Responder) subscriptions(string) string {
	return "You can subscribe to monthly reports from the dashboard. Subscribers receive a summary of affiliate publications on the 1st of each month."
}

func (r *Responder) affiliateInfo(message string) string {
	name := r.matchAffiliate(message)
	return fmt.Sprintf("%s is one of our %d tracked affiliates. Would you like me to search for their recent publications?", name, len(r.roster))
}

func (r *Responder) recommendations(string) string {
	return "Publication recommendations are based on outlet reach, content type, and citation counts. Records scoring high enough are flagged to feature immediately; the rest land in the monthly report. Run a search to see scored results."
}

func (r *Responder) timeline(string) string {
	return "Publication history is grouped by affiliate in every search result, newest first. Open any completed search on the dashboard to browse an affiliate's activity over the monitoring window."
}

func (r *Responder) fallback(string) string {
	return "I'm the affiliate tracker assistant. I can help with affiliate information, publication searches, reports, and recommendations. Try asking about the faculty list, running a search, or type help."
}
