package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ysmood/gson"

	"github.com/reelscout/reelscout/browser"
	"github.com/reelscout/reelscout/config"
	"github.com/reelscout/reelscout/models"
)

const titlePageHTML = `<html><body>
	<h1>Inception</h1>
	<div>
		<span>Sub</span>
		<div><img src="https://img.reelgood.com/service-logos/Netflix.svg" alt="Netflix"></div>
	</div>
</body></html>`

func newTestScraper(t *testing.T, page *browser.FakePage) (*Scraper, *browser.FakeSession) {
	t.Helper()
	session := &browser.FakeSession{NextPage: page}
	s, err := NewScraper(&browser.FakeEngine{Session: session}, config.BrowserConfig{}, testScraperCfg())
	require.NoError(t, err)
	return s, session
}

func TestScrapeOne_Success(t *testing.T) {
	page := &browser.FakePage{
		EvalFunc:   scriptedEval("United States", "Inception", ""),
		HTMLValue:  titlePageHTML,
		TitleValue: "Inception - Reelgood",
	}
	s, _ := newTestScraper(t, page)

	res, err := s.ScrapeOne(context.Background(), "https://reelgood.com/movie/inception-2010", "us")
	require.NoError(t, err)

	assert.Equal(t, "Inception", res.Title)
	assert.Equal(t, "United States", res.Region)
	assert.Equal(t, "https://reelgood.com/movie/inception-2010", res.URL)
	assert.Equal(t, []string{"Netflix"}, res.Platforms.Subscription)
	assert.Empty(t, res.Platforms.Free)
	assert.Equal(t, 1, res.PlatformCount)

	assert.Equal(t, "https://reelgood.com/movie/inception-2010", page.NavigatedURL)
	assert.Contains(t, page.Waited, "h1")
	assert.True(t, page.Closed, "page must be closed after a scrape")
	assert.Equal(t, 0, s.ActiveScrapes())
}

func TestScrapeOne_MissingHeadingFallsBackToUnknownTitle(t *testing.T) {
	page := &browser.FakePage{
		EvalFunc:   scriptedEval("United States", "", ""),
		HTMLValue:  "<html><body><h1></h1></body></html>",
		TitleValue: "Reelgood",
	}
	s, _ := newTestScraper(t, page)

	res, err := s.ScrapeOne(context.Background(), "https://reelgood.com/movie/x", "")
	require.NoError(t, err)

	assert.Equal(t, models.UnknownTitle, res.Title)
	assert.Equal(t, 0, res.PlatformCount)
}

func TestScrapeOne_NavigationFailure(t *testing.T) {
	page := &browser.FakePage{NavigateErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	s, _ := newTestScraper(t, page)

	_, err := s.ScrapeOne(context.Background(), "https://reelgood.com/movie/x", "us")
	require.Error(t, err)

	var scrapeErr *models.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, models.ErrCodeNavigation, scrapeErr.Code)
	assert.True(t, page.Closed, "page must be closed even when navigation fails")
}

func TestScrapeOne_LandmarkTimeout(t *testing.T) {
	page := &browser.FakePage{WaitElementErr: context.DeadlineExceeded}
	s, _ := newTestScraper(t, page)

	_, err := s.ScrapeOne(context.Background(), "https://reelgood.com/movie/x", "us")
	require.Error(t, err)

	var scrapeErr *models.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, models.ErrCodeTimeout, scrapeErr.Code)
	assert.True(t, page.Closed)
}

func TestScrapeAllRegions_OneEntryPerRegion(t *testing.T) {
	page := &browser.FakePage{
		EvalFunc:   scriptedEval("United States", "Inception", ""),
		HTMLValue:  titlePageHTML,
		TitleValue: "Inception - Reelgood",
	}
	s, _ := newTestScraper(t, page)

	res, err := s.ScrapeAllRegions(context.Background(), "https://reelgood.com/movie/inception-2010")
	require.NoError(t, err)

	assert.Equal(t, "Inception", res.Title)
	require.Len(t, res.Regions, 5)
	for _, region := range models.ScrapeOrder() {
		rr, ok := res.Regions[region.Code]
		require.True(t, ok, "missing region %s", region.Code)
		assert.Equal(t, region.Name, rr.Region)
		assert.Equal(t, []string{"Netflix"}, rr.Platforms.Subscription)
		assert.Equal(t, 1, rr.PlatformCount)
	}
	assert.True(t, page.Closed)
}

func TestScrapeAllRegions_SelectionFailureExtractsCurrentView(t *testing.T) {
	// The dropdown never opens, so every non-default region stays on the
	// page's default view; extraction must still produce an entry per code.
	page := &browser.FakePage{
		EvalFunc: func(js string) (gson.JSON, error) {
			if js == openRegionDropdownJS {
				return gson.New(false), nil
			}
			return scriptedEval("United States", "Inception", "")(js)
		},
		HTMLValue:  titlePageHTML,
		TitleValue: "Inception - Reelgood",
	}
	s, _ := newTestScraper(t, page)

	res, err := s.ScrapeAllRegions(context.Background(), "https://reelgood.com/movie/inception-2010")
	require.NoError(t, err)

	require.Len(t, res.Regions, 5)
	for _, region := range models.ScrapeOrder() {
		rr := res.Regions[region.Code]
		assert.Equal(t, region.Name, rr.Region, "entry keeps the table display name")
	}
	assert.Empty(t, page.Clicks)
}

func TestScrapeAllRegions_ContextCanceled(t *testing.T) {
	page := &browser.FakePage{
		EvalFunc:   scriptedEval("United States", "Inception", ""),
		HTMLValue:  titlePageHTML,
		TitleValue: "Inception - Reelgood",
	}
	s, _ := newTestScraper(t, page)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ScrapeAllRegions(ctx, "https://reelgood.com/movie/inception-2010")
	require.Error(t, err)

	var scrapeErr *models.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, models.ErrCodeTimeout, scrapeErr.Code)
	assert.True(t, page.Closed)
}

func TestLoadPage_ChallengeSuspected(t *testing.T) {
	page := &browser.FakePage{
		EvalFunc:   scriptedEval("United States", "Inception", ""),
		TitleValue: "Just a moment...",
	}
	s := &Scraper{cfg: testScraperCfg()}

	load, err := s.loadPage(page, "https://reelgood.com/movie/x")
	require.NoError(t, err)

	assert.Equal(t, models.LoadChallengeSuspected, load.Status)
}

func TestLoadPage_EmptyDocumentTitleSuspected(t *testing.T) {
	page := &browser.FakePage{
		EvalFunc:   scriptedEval("United States", "Inception", ""),
		TitleValue: "",
	}
	s := &Scraper{cfg: testScraperCfg()}

	load, err := s.loadPage(page, "https://reelgood.com/movie/x")
	require.NoError(t, err)

	assert.Equal(t, models.LoadChallengeSuspected, load.Status)
	assert.Equal(t, "Inception", load.Title)
}
