package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reelscout/reelscout/models"
)

// TitleSearcher resolves a free-text query to Reelgood titles.
type TitleSearcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

type searchRequest struct {
	Query string `json:"query"`
}

// Search returns a handler for POST /search.
func Search(searcher TitleSearcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req searchRequest
		_ = c.ShouldBindJSON(&req)

		query := strings.TrimSpace(req.Query)
		if len(query) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search query must be at least 2 characters"})
			return
		}

		results, err := searcher.Search(c.Request.Context(), query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
			return
		}
		if results == nil {
			results = []models.SearchResult{}
		}

		c.JSON(http.StatusOK, models.SearchAPIResponse{
			Query:   query,
			Results: results,
		})
	}
}
