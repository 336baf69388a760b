package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelscout/reelscout/api/handler"
	"github.com/reelscout/reelscout/api/middleware"
	"github.com/reelscout/reelscout/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:     Recovery → Logger
//	Endpoints:  Auth (if keys configured) → RateLimit
//
// Health is intentionally outside auth so monitoring probes always work.
func NewRouter(sc handler.AvailabilityScraper, searcher handler.TitleSearcher, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/health", handler.Health(sc, startTime))

	protected := r.Group("")
	if len(cfg.Auth.APIKeys) > 0 {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/scrape", handler.Scrape(sc))
	protected.POST("/search", handler.Search(searcher))

	return r
}
