package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reelscout/reelscout/models"
)

// AvailabilityScraper is the orchestrator surface the HTTP layer depends on.
type AvailabilityScraper interface {
	ScrapeAllRegions(ctx context.Context, url string) (*models.AllRegionsResult, error)
	ActiveScrapes() int
}

type scrapeRequest struct {
	URL string `json:"url"`
}

// Scrape returns a handler for POST /scrape. It validates that the URL is a
// Reelgood title page, runs an all-regions scrape, and responds with one
// entry per region in table order.
func Scrape(sc AvailabilityScraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req scrapeRequest
		// A malformed or absent body is indistinguishable from an empty URL
		// for the caller; both get the same validation message.
		_ = c.ShouldBindJSON(&req)

		url := strings.TrimSpace(req.URL)
		if url == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a URL"})
			return
		}
		if !strings.Contains(url, "reelgood.com") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid Reelgood URL"})
			return
		}

		result, err := sc.ScrapeAllRegions(c.Request.Context(), url)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": publicError(err)})
			return
		}

		c.JSON(http.StatusOK, models.NewScrapeAPIResponse(result))
	}
}

// publicError renders a scrape failure the way the API contract expects.
func publicError(err error) string {
	var scrapeErr *models.ScrapeError
	if errors.As(err, &scrapeErr) {
		return scrapeErr.PublicMessage()
	}
	return "Failed to scrape URL: " + err.Error()
}
