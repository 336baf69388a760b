package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/reelscout/reelscout/api"
	"github.com/reelscout/reelscout/browser"
	"github.com/reelscout/reelscout/config"
	"github.com/reelscout/reelscout/scraper"
	"github.com/reelscout/reelscout/search"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	initLogger(cfg.Log, flagDebug)

	slog.Info("reelscout starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"stealth", cfg.Browser.Stealth,
	)

	sc, err := scraper.NewScraper(browser.NewRodEngine(), cfg.Browser, cfg.Scraper)
	if err != nil {
		return err
	}
	defer sc.Close()

	searcher := search.NewClient(cfg.Search)

	router := api.NewRouter(sc, searcher, cfg, time.Now())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
		slog.Info("shutdown signal received")
	}

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// sc.Close() runs via defer and kills the browser process.
	slog.Info("reelscout stopped")
	return nil
}
