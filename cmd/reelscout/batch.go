package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/reelscout/reelscout/batch"
	"github.com/reelscout/reelscout/browser"
	"github.com/reelscout/reelscout/config"
	"github.com/reelscout/reelscout/models"
	"github.com/reelscout/reelscout/scraper"
)

var (
	flagBatchFile  string
	flagBatchDelay time.Duration
)

var batchCmd = &cobra.Command{
	Use:   "batch [urls...]",
	Short: "Scrape multiple Reelgood URLs serially",
	Long: `Process multiple Reelgood URLs from arguments or a file, one per line.
Lines starting with '#' and blank lines are ignored. A courtesy delay is
applied between successive requests.`,
	Example: `  reelscout batch https://reelgood.com/movie/inception-2010 https://reelgood.com/show/breaking-bad-2008
  reelscout batch --file urls.txt`,
	SilenceUsage: true,
	RunE:         runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&flagBatchFile, "file", "f", "", "text file with one URL per line")
	batchCmd.Flags().DurationVar(&flagBatchDelay, "delay", 2*time.Second, "delay between requests")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	initLogger(cfg.Log, flagDebug)

	urls := args
	if flagBatchFile != "" {
		fileURLs, err := batch.ReadURLFile(flagBatchFile)
		if err != nil {
			return fmt.Errorf("reading URL file: %w", err)
		}
		fmt.Printf("Loaded %d URLs from %s\n", len(fileURLs), flagBatchFile)
		urls = append(fileURLs, urls...)
	}
	if len(urls) == 0 {
		return errors.New("no URLs to process (pass URLs or --file)")
	}

	if !cmd.Flags().Changed("delay") {
		flagBatchDelay = cfg.Batch.Delay
	}

	sc, err := scraper.NewScraper(browser.NewRodEngine(), cfg.Browser, cfg.Scraper)
	if err != nil {
		return err
	}
	defer sc.Close()

	scrape := func(ctx context.Context, url string) (*models.ScrapeResult, error) {
		return sc.ScrapeOne(ctx, url, "")
	}

	fmt.Printf("\nStarting batch processing of %d URL(s)...\n", len(urls))
	runner := batch.NewRunner(scrape, flagBatchDelay, os.Stdout)
	return runner.Run(cmd.Context(), urls)
}
