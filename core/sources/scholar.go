// ABOUTME: Academic citation adapter scraping a scholar search results page
// ABOUTME: Collects pages with colly and extracts titles, years, and citation counts via goquery

package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"golang.org/x/time/rate"
)

const (
	scholarCacheTTL  = time.Hour
	scholarUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var citedByPattern = regexp.MustCompile(`Cited by (\d+)`)

// ScholarAdapter discovers academic articles by scraping a citation
// search results page for the affiliate's name.
type ScholarAdapter struct {
	deps    interfaces.Dependencies
	limiter *rate.Limiter
	baseURL string
	timeout time.Duration
}

// NewScholarAdapter creates a scholar adapter. The limiter is shared
// across jobs; scholar endpoints rate-limit aggressively.
func NewScholarAdapter(deps interfaces.Dependencies, limiter *rate.Limiter, timeout time.Duration) *ScholarAdapter {
	return &ScholarAdapter{
		deps:    deps,
		limiter: limiter,
		baseURL: "https://scholar.google.com/scholar",
		timeout: timeout,
	}
}

// Name identifies the adapter in logs and errors
func (a *ScholarAdapter) Name() string { return "academic-citation" }

// Kind is the shared rate-limit group for scholar queries
func (a *ScholarAdapter) Kind() string { return "scholar" }

// Search scrapes the citation search page for the affiliate and maps
// result entries onto academic publication records.
func (a *ScholarAdapter) Search(ctx context.Context, affiliate string, window Window) ([]domain.PublicationRecord, error) {
	if affiliate == "" {
		return nil, errors.New("affiliate name cannot be empty")
	}

	cacheKey := fmt.Sprintf("sources:scholar:%s:%s", affiliate, window.DateBucket())
	if a.deps.Cache != nil {
		if data, err := a.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached []domain.PublicationRecord
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	records := make([]domain.PublicationRecord, 0, 10)
	var scrapeErr error

	collector := colly.NewCollector(colly.UserAgent(scholarUserAgent))
	collector.SetRequestTimeout(a.timeout)

	collector.OnHTML("div.gs_ri", func(e *colly.HTMLElement) {
		rec, ok := a.parseResult(e.DOM, affiliate, window)
		if !ok {
			return
		}
		records = append(records, rec)
	})

	collector.OnError(func(_ *colly.Response, err error) {
		scrapeErr = err
	})

	query := url.Values{}
	query.Set("q", fmt.Sprintf("%q", affiliate))
	query.Set("as_ylo", strconv.Itoa(window.Since.Year()))

	if err := collector.Visit(a.baseURL + "?" + query.Encode()); err != nil {
		return nil, err
	}
	collector.Wait()

	if scrapeErr != nil {
		return nil, scrapeErr
	}

	if a.deps.Cache != nil && len(records) > 0 {
		if data, err := json.Marshal(records); err == nil {
			_ = a.deps.Cache.Set(ctx, cacheKey, data, scholarCacheTTL)
		}
	}

	return records, nil
}

// parseResult extracts one record from a result block. Entries without
// a title, or dated outside the window, are skipped.
func (a *ScholarAdapter) parseResult(sel *goquery.Selection, affiliate string, window Window) (domain.PublicationRecord, bool) {
	title := strings.TrimSpace(sel.Find("h3 a").First().Text())
	if title == "" {
		return domain.PublicationRecord{}, false
	}

	link, _ := sel.Find("h3 a").First().Attr("href")
	meta := strings.TrimSpace(sel.Find(".gs_a").First().Text())
	source, year := parseScholarMeta(meta)

	published := estimatePublished(year, window)
	if !window.Contains(published) {
		return domain.PublicationRecord{}, false
	}

	rec := domain.PublicationRecord{
		Affiliate: affiliate,
		Title:     title,
		Source:    source,
		Type:      domain.ContentTypeAcademic,
		Published: published,
		URL:       link,
	}

	if m := citedByPattern.FindStringSubmatch(sel.Find(".gs_fl").Text()); m != nil {
		if count, err := strconv.Atoi(m[1]); err == nil {
			rec.Citations = &count
		}
	}

	return rec, true
}

// parseScholarMeta splits the "authors - venue, year - publisher" meta
// line into a source name and a year.
func parseScholarMeta(meta string) (source string, year int) {
	parts := strings.Split(meta, " - ")
	if len(parts) < 2 {
		return "", 0
	}

	venue := strings.TrimSpace(parts[1])
	if idx := strings.LastIndex(venue, ","); idx >= 0 {
		if y, err := strconv.Atoi(strings.TrimSpace(venue[idx+1:])); err == nil {
			year = y
			venue = strings.TrimSpace(venue[:idx])
		}
	} else if y, err := strconv.Atoi(venue); err == nil {
		// Meta line carried only a year, no venue.
		return "", y
	}

	return venue, year
}

// estimatePublished maps a bare publication year onto a concrete date.
// The source only exposes year granularity, so an article from the
// window's own year is treated as current-window activity.
func estimatePublished(year int, window Window) time.Time {
	if year == 0 {
		return time.Time{}
	}
	if year >= window.Since.Year() {
		if year == window.Until.Year() {
			return window.Until
		}
		return window.Since
	}
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}
