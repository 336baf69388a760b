package scraper

import (
	"context"
	"log/slog"

	"github.com/reelscout/reelscout/models"
)

// ScrapeOne scrapes availability for a single region. regionCode may be
// empty to use whatever region the page defaults to, or any code from the
// region table (including "all" for the combined view).
func (s *Scraper) ScrapeOne(ctx context.Context, url, regionCode string) (*models.ScrapeResult, error) {
	page, err := s.session.NewPage(ctx)
	if err != nil {
		return nil, err
	}
	s.activeScrapes.Add(1)
	defer func() {
		s.activeScrapes.Add(-1)
		if cerr := page.Close(); cerr != nil {
			slog.Warn("page close failed", "url", url, "error", cerr)
		}
	}()

	slog.Info("scrape started", "url", url, "region", regionCode)

	load, err := s.loadPage(page, url)
	if err != nil {
		return nil, err
	}

	if regionCode != "" {
		if name, ok := models.RegionName(regionCode); ok {
			sel := s.SelectRegion(page, name)
			if sel.Outcome != models.SelectionSelected {
				slog.Warn("region selection unchanged",
					"target", name, "showing", sel.Region, "outcome", sel.Outcome.String())
			}
		}
	}

	detected := s.CurrentRegion(page)

	platforms, err := s.extractPlatforms(page)
	if err != nil {
		return nil, err
	}

	slog.Info("scrape finished",
		"url", url, "title", load.Title, "region", detected, "platforms", platforms.Count())

	return &models.ScrapeResult{
		Title:         load.Title,
		Platforms:     platforms,
		Region:        detected,
		URL:           url,
		PlatformCount: platforms.Count(),
	}, nil
}

// ScrapeAllRegions loads the page once and walks the region table in order
// (excluding the "all" pseudo-region), selecting each region and extracting
// its platform set. A failed selection is logged and extraction proceeds
// against whatever region the page is actually showing; the entry keeps the
// table's display name so every code is always present exactly once.
func (s *Scraper) ScrapeAllRegions(ctx context.Context, url string) (*models.AllRegionsResult, error) {
	page, err := s.session.NewPage(ctx)
	if err != nil {
		return nil, err
	}
	s.activeScrapes.Add(1)
	defer func() {
		s.activeScrapes.Add(-1)
		if cerr := page.Close(); cerr != nil {
			slog.Warn("page close failed", "url", url, "error", cerr)
		}
	}()

	slog.Info("all-regions scrape started", "url", url)

	load, err := s.loadPage(page, url)
	if err != nil {
		return nil, err
	}

	regions := make(map[string]models.RegionResult, len(models.Regions)-1)

	for _, region := range models.ScrapeOrder() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, categorizeError(ctxErr, "all-regions scrape interrupted")
		}

		slog.Info("scraping region", "url", url, "region", region.Name)

		sel := s.SelectRegion(page, region.Name)
		if sel.Outcome != models.SelectionSelected {
			slog.Warn("region selection unchanged, extracting current view",
				"target", region.Name, "showing", sel.Region, "outcome", sel.Outcome.String())
		}

		platforms, err := s.extractPlatforms(page)
		if err != nil {
			return nil, err
		}

		regions[region.Code] = models.RegionResult{
			Region:        region.Name,
			Platforms:     platforms,
			PlatformCount: platforms.Count(),
		}
	}

	slog.Info("all-regions scrape finished", "url", url, "title", load.Title)

	return &models.AllRegionsResult{
		Title:   load.Title,
		URL:     url,
		Regions: regions,
	}, nil
}
