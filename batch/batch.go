// Package batch runs the scraper over a list of URLs serially, with a
// courtesy delay between requests.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/reelscout/reelscout/models"
)

// ScrapeFunc scrapes one URL in the page's default region.
type ScrapeFunc func(ctx context.Context, url string) (*models.ScrapeResult, error)

// Runner processes URLs one at a time. The delay between requests is a
// courtesy rate limit, not a correctness requirement.
type Runner struct {
	scrape ScrapeFunc
	delay  time.Duration
	out    io.Writer
}

// NewRunner creates a batch runner writing progress and summaries to out.
func NewRunner(scrape ScrapeFunc, delay time.Duration, out io.Writer) *Runner {
	return &Runner{scrape: scrape, delay: delay, out: out}
}

const batchRule = "============================================================"

// Run scrapes each URL in order, printing a summary per URL. Scrape
// failures are reported inline and do not stop the batch; only context
// cancellation aborts it.
func (r *Runner) Run(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return errors.New("no URLs to process")
	}

	processed := 0
	for i, url := range urls {
		fmt.Fprintf(r.out, "\n%s\n", batchRule)
		fmt.Fprintf(r.out, "Processing %d/%d: %s\n", i+1, len(urls), url)
		fmt.Fprintln(r.out, batchRule)

		result, err := r.scrape(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(r.out, models.ErrorSummary(publicMessage(err)))
		} else {
			fmt.Fprintln(r.out, models.Summary(result))
		}
		processed++

		if i < len(urls)-1 && r.delay > 0 {
			fmt.Fprintf(r.out, "\nWaiting %s before next request...\n", r.delay)
			select {
			case <-time.After(r.delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	fmt.Fprintf(r.out, "\n%s\n", batchRule)
	fmt.Fprintf(r.out, "Completed! Processed %d URL(s)\n", processed)
	fmt.Fprintln(r.out, batchRule)
	return nil
}

func publicMessage(err error) string {
	var scrapeErr *models.ScrapeError
	if errors.As(err, &scrapeErr) {
		return scrapeErr.PublicMessage()
	}
	return "Failed to scrape URL: " + err.Error()
}

// ReadURLFile loads URLs from a text file, one per line. Blank lines and
// lines starting with '#' are ignored.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseURLList(f)
}

func parseURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
