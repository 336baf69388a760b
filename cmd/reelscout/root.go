package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelscout/reelscout/browser"
	"github.com/reelscout/reelscout/config"
	"github.com/reelscout/reelscout/models"
	"github.com/reelscout/reelscout/scraper"
)

var (
	flagRegion     string
	flagAllRegions bool
	flagAll        bool
	flagJSON       bool
	flagDebug      bool
)

var rootCmd = &cobra.Command{
	Use:   "reelscout <reelgood-url>",
	Short: "Streaming availability lookup for Reelgood titles",
	Long: `reelscout extracts streaming platform availability by region for a movie
or TV show from its Reelgood page, using a headless browser.

Region codes:
  all - All Regions (combined view)
  us  - United States
  uk  - United Kingdom
  ca  - Canada
  au  - Australia
  nz  - New Zealand`,
	Example: `  reelscout https://reelgood.com/movie/inception-2010
  reelscout https://reelgood.com/movie/inception-2010 --region us
  reelscout https://reelgood.com/movie/inception-2010 --all-regions --json`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runScrape,
}

func init() {
	rootCmd.Flags().StringVar(&flagRegion, "region", "", "region code to scrape (all, us, uk, ca, au, nz)")
	rootCmd.Flags().BoolVar(&flagAllRegions, "all-regions", false, "scrape every region")
	rootCmd.Flags().BoolVar(&flagAll, "all", false, "alias for --all-regions")
	_ = rootCmd.Flags().MarkHidden("all")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "output only JSON (no summary)")
	rootCmd.Flags().BoolVarP(&flagDebug, "debug", "d", false, "show raw JSON data after the summary")

	rootCmd.AddCommand(serveCmd, batchCmd, searchCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("missing Reelgood URL (see --help)")
	}
	url := args[0]

	region := strings.ToLower(strings.TrimSpace(flagRegion))
	if region != "" {
		if _, ok := models.RegionName(region); !ok {
			return fmt.Errorf("unknown region %q (valid regions: %s)",
				region, strings.Join(models.ValidRegionCodes(), ", "))
		}
	}

	cfg := config.Load()
	initLogger(cfg.Log, flagDebug)

	if !flagJSON {
		fmt.Printf("Scraping: %s\n\n", url)
	}

	sc, err := scraper.NewScraper(browser.NewRodEngine(), cfg.Browser, cfg.Scraper)
	if err != nil {
		return err
	}
	defer sc.Close()

	ctx := cmd.Context()

	if flagAllRegions || flagAll {
		result, err := sc.ScrapeAllRegions(ctx, url)
		if err != nil {
			printScrapeFailure(err)
			return nil
		}
		if flagJSON {
			printJSON(result)
			return nil
		}
		fmt.Print(models.AllRegionsSummary(result))
		if flagDebug {
			fmt.Println("\nRaw data (debug mode):")
			printJSON(result)
		}
		return nil
	}

	result, err := sc.ScrapeOne(ctx, url, region)
	if err != nil {
		printScrapeFailure(err)
		return nil
	}
	if flagJSON {
		printJSON(result)
		return nil
	}
	fmt.Print(models.Summary(result))
	if flagDebug {
		fmt.Println("\nRaw data (debug mode):")
		printJSON(result)
	}
	return nil
}

// printScrapeFailure reports a failed scrape on stdout, in the output mode
// the caller asked for. A failed scrape is a result, not a usage error, so
// the process still exits zero.
func printScrapeFailure(err error) {
	msg := "Failed to scrape URL: " + err.Error()
	var scrapeErr *models.ScrapeError
	if errors.As(err, &scrapeErr) {
		msg = scrapeErr.PublicMessage()
	}

	if flagJSON {
		printJSON(map[string]string{"error": msg})
		return
	}
	fmt.Print(models.ErrorSummary(msg))
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to encode JSON:", err)
		return
	}
	fmt.Println(string(data))
}

// initLogger configures slog based on the LogConfig. The debug flag forces
// debug level regardless of environment.
func initLogger(cfg config.LogConfig, debug bool) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
