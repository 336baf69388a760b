package models

import (
	"fmt"
	"strings"
)

const summaryRule = "============================================================"

// Summary renders a single-region scrape result as human-readable text.
func Summary(res *ScrapeResult) string {
	var b strings.Builder
	writeSummaryHeader(&b, res.Title)

	fmt.Fprintf(&b, "Region: %s\n", res.Region)
	fmt.Fprintf(&b, "Platforms Found: %d\n\n", res.PlatformCount)

	if res.Platforms.Count() > 0 {
		b.WriteString("Available on:\n")
		writePlatformSet(&b, res.Platforms, "  ")
	} else {
		b.WriteString("No streaming platforms detected.\n")
	}

	writeSummaryFooter(&b, res.URL)
	return b.String()
}

// AllRegionsSummary renders an all-regions scrape result. Regions appear in
// table order so the output is deterministic.
func AllRegionsSummary(res *AllRegionsResult) string {
	var b strings.Builder
	writeSummaryHeader(&b, res.Title)
	b.WriteString("\n" + summaryRule + "\n")

	for _, region := range ScrapeOrder() {
		rr, ok := res.Regions[region.Code]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d platforms):\n", rr.Region, rr.PlatformCount)
		if rr.Platforms.Count() > 0 {
			writePlatformSet(&b, rr.Platforms, "  ")
		} else {
			b.WriteString("  (No streaming platforms available)\n")
		}
	}

	writeSummaryFooter(&b, res.URL)
	return b.String()
}

// ErrorSummary renders a scrape failure for console output.
func ErrorSummary(message string) string {
	return fmt.Sprintf("Error: %s\n\nNote: Make sure you have internet connectivity and the URL is valid.\n", message)
}

func writeSummaryHeader(b *strings.Builder, title string) {
	b.WriteString("STREAMING AVAILABILITY SUMMARY\n")
	b.WriteString(summaryRule + "\n\n")
	fmt.Fprintf(b, "Title: %s\n", title)
}

func writeSummaryFooter(b *strings.Builder, url string) {
	b.WriteString("\n" + summaryRule + "\n")
	fmt.Fprintf(b, "Source: %s\n", url)
}

func writePlatformSet(b *strings.Builder, p PlatformSet, indent string) {
	if len(p.Subscription) > 0 {
		b.WriteString(indent + "Subscription:\n")
		for _, name := range p.Subscription {
			fmt.Fprintf(b, "%s  - %s\n", indent, name)
		}
	}
	if len(p.Free) > 0 {
		b.WriteString(indent + "Free:\n")
		for _, name := range p.Free {
			fmt.Fprintf(b, "%s  - %s\n", indent, name)
		}
	}
}
