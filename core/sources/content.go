// ABOUTME: Content enricher fetches article pages and attaches short summaries
// ABOUTME: Degrades to a truncated paragraph excerpt when readability extraction fails

package sources

import (
	"context"
	"io"
	"net/url"
	"strings"
	"sync"

	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	summaryMaxLen     = 300
	enrichConcurrency = 5
)

// Enricher attaches article summaries to publication records that carry
// an origin URL. Enrichment is strictly best-effort: any failure leaves
// the record untouched, never dropping it.
type Enricher struct {
	deps interfaces.Dependencies
}

// NewEnricher creates a content enricher
func NewEnricher(deps interfaces.Dependencies) *Enricher {
	return &Enricher{deps: deps}
}

// Enrich fills the Summary field of each record that has a URL and no
// summary yet. Records are enriched concurrently with bounded fan-out.
func (e *Enricher) Enrich(ctx context.Context, records []domain.PublicationRecord) []domain.PublicationRecord {
	if e.deps.HTTPClient == nil {
		return records
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, enrichConcurrency)

	for i := range records {
		if records[i].URL == "" || records[i].Summary != "" {
			continue
		}

		wg.Add(1)
		go func(rec *domain.PublicationRecord) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if summary := e.summarize(ctx, rec.URL); summary != "" {
				rec.Summary = summary
			}
		}(&records[i])
	}

	wg.Wait()
	return records
}

// summarize fetches the page and extracts a short summary, preferring
// readability extraction and falling back to a raw paragraph excerpt.
func (e *Enricher) summarize(ctx context.Context, pageURL string) string {
	resp, err := e.deps.HTTPClient.Get(ctx, pageURL)
	if err != nil {
		return ""
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return ""
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return ""
	}

	if summary := extractReadable(body, pageURL); summary != "" {
		return summary
	}

	return paragraphExcerpt(body)
}

// extractReadable runs readability extraction over the page body.
func extractReadable(body []byte, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(string(body)), parsed)
	if err != nil {
		return ""
	}

	if article.Excerpt != "" {
		return truncate(article.Excerpt, summaryMaxLen)
	}
	return truncate(article.TextContent, summaryMaxLen)
}

// paragraphExcerpt builds a crude excerpt from the first paragraphs of
// the raw page. Used when readability cannot make sense of the markup.
func paragraphExcerpt(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return ""
	}

	var parts []string
	doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
		return len(parts) < 5
	})

	return truncate(strings.Join(parts, " "), summaryMaxLen)
}

// truncate trims text to max runes, appending an ellipsis when cut.
func truncate(text string, max int) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	runes := []rune(cleaned)
	if len(runes) <= max {
		return cleaned
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
