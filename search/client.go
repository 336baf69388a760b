// Package search looks up Reelgood titles by name, so callers can resolve a
// movie or show to the title-page URL the scraper consumes.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/reelscout/reelscout/config"
	"github.com/reelscout/reelscout/models"
)

// Client queries the Reelgood content API, falling back to parsing the
// site's search page when the API is unavailable.
type Client struct {
	cfg config.SearchConfig

	// fetch is swappable in tests.
	fetch func(ctx context.Context, url string) ([]byte, error)
}

// NewClient creates a search client.
func NewClient(cfg config.SearchConfig) *Client {
	c := &Client{cfg: cfg}
	c.fetch = func(ctx context.Context, target string) ([]byte, error) {
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		return fetchChrome(ctx, target, cfg.Proxy)
	}
	return c
}

// Search returns matching titles for a query.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	apiURL := fmt.Sprintf("%s/content/search?terms=%s", c.cfg.APIBase, url.QueryEscape(query))

	body, err := c.fetch(ctx, apiURL)
	if err == nil {
		results, perr := ParseAPIResults(body, c.cfg.SiteBase)
		if perr == nil {
			return results, nil
		}
		slog.Warn("search API response unparseable, falling back to site search", "error", perr)
	} else {
		slog.Warn("search API request failed, falling back to site search", "error", err)
	}

	pageURL := fmt.Sprintf("%s/search?q=%s", c.cfg.SiteBase, url.QueryEscape(query))
	body, err = c.fetch(ctx, pageURL)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeSearch, "search request failed", err)
	}

	results, err := ParseSearchPage(body, c.cfg.SiteBase)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeSearch, "search page unparseable", err)
	}
	return results, nil
}

// apiEnvelope mirrors the content API's search response.
type apiEnvelope struct {
	Results []apiResult `json:"results"`
}

type apiResult struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	ContentType string `json:"content_type"` // "m" movie, "s" show
	ReleasedOn  string `json:"released_on"`
}

// ParseAPIResults decodes the content API search envelope into results with
// absolute title-page URLs.
func ParseAPIResults(body []byte, siteBase string) ([]models.SearchResult, error) {
	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(envelope.Results))
	for _, r := range envelope.Results {
		if r.Title == "" || r.Slug == "" {
			continue
		}
		kind := "show"
		if r.ContentType == "m" {
			kind = "movie"
		}
		results = append(results, models.SearchResult{
			Title: r.Title,
			Year:  releaseYear(r.ReleasedOn),
			Type:  kind,
			URL:   fmt.Sprintf("%s/%s/%s", siteBase, kind, r.Slug),
		})
	}
	return results, nil
}

func releaseYear(releasedOn string) int {
	if len(releasedOn) < 4 {
		return 0
	}
	var year int
	if _, err := fmt.Sscanf(releasedOn[:4], "%d", &year); err != nil {
		return 0
	}
	return year
}

// ParseSearchPage extracts title links from the site's rendered search page.
func ParseSearchPage(body []byte, siteBase string) ([]models.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(siteBase)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var results []models.SearchResult

	doc.Find(`a[href^="/movie/"], a[href^="/show/"]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		title := strings.TrimSpace(s.Text())
		if title == "" {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		abs := resolved.String()
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}

		kind := "show"
		if strings.HasPrefix(href, "/movie/") {
			kind = "movie"
		}

		results = append(results, models.SearchResult{
			Title: title,
			Type:  kind,
			URL:   abs,
		})
	})

	return results, nil
}
