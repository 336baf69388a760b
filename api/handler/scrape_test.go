package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelscout/reelscout/models"
)

type stubScraper struct {
	result *models.AllRegionsResult
	err    error
	active int

	lastURL string
}

func (s *stubScraper) ScrapeAllRegions(_ context.Context, url string) (*models.AllRegionsResult, error) {
	s.lastURL = url
	return s.result, s.err
}

func (s *stubScraper) ActiveScrapes() int { return s.active }

func postScrape(t *testing.T, sc AvailabilityScraper, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/scrape", Scrape(sc))

	req := httptest.NewRequest(http.MethodPost, "/scrape", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScrape_MissingURL(t *testing.T) {
	w := postScrape(t, &stubScraper{}, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Please enter a URL"}`, w.Body.String())
}

func TestScrape_MalformedBody(t *testing.T) {
	w := postScrape(t, &stubScraper{}, `not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Please enter a URL"}`, w.Body.String())
}

func TestScrape_NonReelgoodURL(t *testing.T) {
	w := postScrape(t, &stubScraper{}, `{"url": "https://example.com/movie/inception"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Please enter a valid Reelgood URL"}`, w.Body.String())
}

func TestScrape_Success(t *testing.T) {
	sc := &stubScraper{result: &models.AllRegionsResult{
		Title: "Inception",
		URL:   "https://reelgood.com/movie/inception-2010",
		Regions: map[string]models.RegionResult{
			"us": {
				Region:        "United States",
				Platforms:     models.PlatformSet{Subscription: []string{"Netflix"}, Free: []string{}},
				PlatformCount: 1,
			},
			"uk": {
				Region:        "United Kingdom",
				Platforms:     models.PlatformSet{Subscription: []string{}, Free: []string{"Channel 4"}},
				PlatformCount: 1,
			},
		},
	}}

	w := postScrape(t, sc, `{"url": "https://reelgood.com/movie/inception-2010"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://reelgood.com/movie/inception-2010", sc.lastURL)

	var resp models.ScrapeAPIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Inception", resp.Title)
	require.Len(t, resp.Regions, 2)
	assert.Equal(t, "us", resp.Regions[0].Code)
	assert.Equal(t, []string{"Netflix"}, resp.Regions[0].Subscription)
	assert.Equal(t, "uk", resp.Regions[1].Code)
	assert.Equal(t, []string{"Channel 4"}, resp.Regions[1].Free)
}

func TestScrape_ScrapeFailure(t *testing.T) {
	sc := &stubScraper{
		err: models.NewScrapeError(models.ErrCodeTimeout, "title heading never appeared", context.DeadlineExceeded),
	}

	w := postScrape(t, sc, `{"url": "https://reelgood.com/movie/inception-2010"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t,
		`{"error": "Failed to scrape URL: title heading never appeared: context deadline exceeded"}`,
		w.Body.String())
}
