// ABOUTME: News search adapter backed by the Google News RSS search feed
// ABOUTME: Parses feed entries with gofeed and classifies content types from headlines

package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/interfaces"

	htmlutil "affiliate-tracker-api/pkg/utils/html"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"
)

const newsCacheTTL = time.Hour

// NewsAdapter discovers recent media items (op-eds, interviews,
// broadcast appearances) by querying a news search RSS endpoint.
type NewsAdapter struct {
	deps    interfaces.Dependencies
	limiter *rate.Limiter
	baseURL string
}

// NewNewsAdapter creates a news adapter. The limiter is shared across
// all jobs hitting the news source; pass the same instance to every
// orchestrator run.
func NewNewsAdapter(deps interfaces.Dependencies, limiter *rate.Limiter) *NewsAdapter {
	return &NewsAdapter{
		deps:    deps,
		limiter: limiter,
		baseURL: "https://news.google.com/rss/search",
	}
}

// Name identifies the adapter in logs and errors
func (a *NewsAdapter) Name() string { return "news-search" }

// Kind is the shared rate-limit group for news queries
func (a *NewsAdapter) Kind() string { return "news" }

// Search queries the news feed for the affiliate and maps entries
// published inside the window onto publication records.
func (a *NewsAdapter) Search(ctx context.Context, affiliate string, window Window) ([]domain.PublicationRecord, error) {
	if affiliate == "" {
		return nil, errors.New("affiliate name cannot be empty")
	}

	cacheKey := fmt.Sprintf("sources:news:%s:%s", affiliate, window.DateBucket())
	if a.deps.Cache != nil {
		if data, err := a.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached []domain.PublicationRecord
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	if a.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	query := url.Values{}
	query.Set("q", fmt.Sprintf("%q", affiliate))
	query.Set("hl", "en-US")
	query.Set("gl", "US")
	query.Set("ceid", "US:en")

	resp, err := a.deps.HTTPClient.Get(ctx, a.baseURL+"?"+query.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode())
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	records := make([]domain.PublicationRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		published, ok := itemPublished(item)
		if !ok || !window.Contains(published) {
			continue
		}

		title, source := splitHeadline(item.Title)
		if source == "" {
			source = feedSource(item)
		}

		records = append(records, domain.PublicationRecord{
			Affiliate: affiliate,
			Title:     title,
			Source:    source,
			Type:      classifyHeadline(title),
			Published: published,
			URL:       item.Link,
			Summary:   itemSummary(item),
		})
	}

	if a.deps.Cache != nil && len(records) > 0 {
		if data, err := json.Marshal(records); err == nil {
			_ = a.deps.Cache.Set(ctx, cacheKey, data, newsCacheTTL)
		}
	}

	return records, nil
}

// itemPublished resolves an entry's publication time, falling back to
// tolerant string parsing for feeds with nonstandard date formats.
func itemPublished(item *gofeed.Item) (time.Time, bool) {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed, true
	}
	if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// itemSummary turns the entry's HTML description into a plain-text
// summary. Entries without a usable description are left for the
// content enricher to fill in.
func itemSummary(item *gofeed.Item) string {
	if item.Description == "" {
		return ""
	}
	text := strings.TrimSpace(htmlutil.StripHTML(item.Description))
	return truncate(text, summaryMaxLen)
}

// splitHeadline separates "Title - Outlet" style headlines used by
// news aggregator feeds.
func splitHeadline(headline string) (title, source string) {
	idx := strings.LastIndex(headline, " - ")
	if idx < 0 {
		return strings.TrimSpace(headline), ""
	}
	return strings.TrimSpace(headline[:idx]), strings.TrimSpace(headline[idx+3:])
}

// feedSource pulls the outlet name from the entry's custom source
// element when the headline carries none.
func feedSource(item *gofeed.Item) string {
	if src, ok := item.Custom["source"]; ok {
		return strings.TrimSpace(src)
	}
	return ""
}

// classifyHeadline maps headline keywords onto a content type.
func classifyHeadline(title string) domain.ContentType {
	lowered := strings.ToLower(title)
	switch {
	case strings.Contains(lowered, "op-ed"), strings.Contains(lowered, "opinion"):
		return domain.ContentTypeOpEd
	case strings.Contains(lowered, "interview"):
		return domain.ContentTypeInterview
	case strings.Contains(lowered, "podcast"), strings.Contains(lowered, " tv "),
		strings.Contains(lowered, "radio"), strings.Contains(lowered, "appears on"):
		return domain.ContentTypeBroadcast
	case strings.Contains(lowered, "analysis"), strings.Contains(lowered, "commentary"):
		return domain.ContentTypeComment
	default:
		return domain.ContentTypeUnknown
	}
}
