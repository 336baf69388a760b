package scraper

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/reelscout/reelscout/browser"
	"github.com/reelscout/reelscout/models"
)

// landmarkSelector is the element whose presence signals that the title
// page's primary content has rendered.
const landmarkSelector = "h1"

// challengePhrase appears in the document title of Cloudflare interstitials.
const challengePhrase = "just a moment"

const readyPredicateJS = `() => document.readyState === "complete"`

// scrollToWatchJS scrolls the viewport to the availability section. The
// section is matched by heading text containment; its absence is non-fatal.
const scrollToWatchJS = `() => {
	const h2s = document.querySelectorAll("h2");
	for (const h of h2s) {
		if (h.textContent.includes("Where to Watch")) {
			h.scrollIntoView({block: "start"});
			return true;
		}
	}
	return false;
}`

// watchSectionVisibleJS holds once the availability heading sits inside the
// viewport, i.e. the scroll has settled.
const watchSectionVisibleJS = `() => {
	const h2s = document.querySelectorAll("h2");
	for (const h of h2s) {
		if (h.textContent.includes("Where to Watch")) {
			const rect = h.getBoundingClientRect();
			return rect.top >= 0 && rect.top <= window.innerHeight;
		}
	}
	return false;
}`

const headingTitleJS = `() => {
	const h = document.querySelector("h1");
	return h ? h.innerText.trim() : "";
}`

// pageLoad is what the page loader hands to the orchestrator.
type pageLoad struct {
	Title  string
	Status models.LoadStatus
}

// loadPage navigates to url and brings the page into a scrape-ready state:
// landmark present, client-side rendering settled, availability section in
// view. The landmark never appearing means the page structure is
// unrecognized or access was blocked, which is a hard failure.
func (s *Scraper) loadPage(page browser.Page, url string) (pageLoad, error) {
	if err := page.Navigate(url, s.cfg.NavigationTimeout); err != nil {
		return pageLoad{}, categorizeError(err, "navigation to target URL failed")
	}

	if err := page.WaitElement(landmarkSelector, s.cfg.LandmarkTimeout); err != nil {
		return pageLoad{}, categorizeError(err, "title heading never appeared")
	}

	if err := page.WaitFor(readyPredicateJS, s.cfg.PollInterval, s.cfg.ReadyBudget); err != nil {
		slog.Debug("readiness predicate did not hold, proceeding with current DOM", "error", err)
	}

	// Scroll to the availability section and let the scroll settle.
	if res, err := page.Eval(scrollToWatchJS); err == nil && res.Val() == true {
		if err := page.WaitFor(watchSectionVisibleJS, s.cfg.PollInterval, s.cfg.ReadyBudget); err != nil {
			slog.Debug("availability section never settled in view", "error", err)
		}
	}

	load := pageLoad{Title: models.UnknownTitle, Status: models.LoadOK}

	if res, err := page.Eval(headingTitleJS); err == nil {
		if t := strings.TrimSpace(res.Str()); t != "" {
			load.Title = t
		}
	}

	// Best-effort anti-bot detection: an interstitial has an empty or
	// telltale document title. Scraping proceeds regardless, so callers see
	// the same degraded results the original tool produced.
	docTitle, err := page.DocumentTitle()
	if err == nil {
		trimmed := strings.TrimSpace(docTitle)
		if trimmed == "" || strings.Contains(strings.ToLower(trimmed), challengePhrase) {
			load.Status = models.LoadChallengeSuspected
			slog.Warn("anti-bot challenge suspected, results may be unreliable",
				"url", url, "documentTitle", trimmed)
		}
	}

	return load, nil
}

// categorizeError wraps raw browser errors into typed ScrapeErrors so the
// delivery layers can map them to exit codes and HTTP statuses.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "scrape canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
