package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is the reported service version.
const Version = "0.1.0"

// Health returns a handler for GET /health. It is mounted outside auth so
// monitoring probes always work.
func Health(sc AvailabilityScraper, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"uptime":         time.Since(startTime).Round(time.Second).String(),
			"active_scrapes": sc.ActiveScrapes(),
			"version":        Version,
		})
	}
}
