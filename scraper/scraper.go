// Package scraper drives a headless browser against Reelgood title pages
// and extracts per-region streaming availability from the rendered DOM.
package scraper

import (
	"log/slog"
	"sync/atomic"

	"github.com/reelscout/reelscout/browser"
	"github.com/reelscout/reelscout/config"
)

// Scraper owns the browser session. Each scrape call opens its own page so
// concurrent callers never interleave DOM mutations within one browsing
// context. It is safe for concurrent use.
type Scraper struct {
	session       browser.Session
	cfg           config.ScraperConfig
	activeScrapes atomic.Int32
}

// NewScraper launches the browser via the given engine.
func NewScraper(engine browser.Engine, browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) (*Scraper, error) {
	session, err := engine.Start(browserCfg)
	if err != nil {
		return nil, err
	}
	return &Scraper{session: session, cfg: scraperCfg}, nil
}

// ActiveScrapes reports how many scrape calls are in flight.
func (s *Scraper) ActiveScrapes() int {
	return int(s.activeScrapes.Load())
}

// Close kills the browser process. Call this on shutdown to prevent zombie
// Chrome processes.
func (s *Scraper) Close() {
	slog.Info("scraper shutting down: closing browser")
	if err := s.session.Close(); err != nil {
		slog.Warn("browser close failed", "error", err)
	}
}
