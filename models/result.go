package models

import "sort"

// UnknownTitle is the sentinel used when the page's main heading is absent.
const UnknownTitle = "Unknown Title"

// UnknownRegion is the sentinel used when the current region cannot be read.
const UnknownRegion = "Unknown"

// PlatformSet groups the platforms a title is available on by offer type.
// Rental and purchase offers are out of scope and never appear here.
// Both slices are sorted ascending and contain no duplicates.
type PlatformSet struct {
	Subscription []string `json:"subscription"`
	Free         []string `json:"free"`
}

// Count is the platform_count semantics: subscription plus free.
func (p PlatformSet) Count() int {
	return len(p.Subscription) + len(p.Free)
}

// NewPlatformSet builds a PlatformSet from raw name sets, deduplicating and
// sorting for deterministic output.
func NewPlatformSet(subscription, free map[string]struct{}) PlatformSet {
	return PlatformSet{
		Subscription: sortedNames(subscription),
		Free:         sortedNames(free),
	}
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ScrapeResult is the outcome of a single-region scrape.
type ScrapeResult struct {
	Title         string      `json:"title"`
	Platforms     PlatformSet `json:"platforms"`
	Region        string      `json:"region"`
	URL           string      `json:"url"`
	PlatformCount int         `json:"platform_count"`
}

// RegionResult is one region's entry inside an all-regions scrape.
type RegionResult struct {
	Region        string      `json:"region"`
	Platforms     PlatformSet `json:"platforms"`
	PlatformCount int         `json:"platform_count"`
}

// AllRegionsResult is the outcome of an all-regions scrape, keyed by the
// region table's codes (excluding "all").
type AllRegionsResult struct {
	Title   string                  `json:"title"`
	URL     string                  `json:"url"`
	Regions map[string]RegionResult `json:"regions"`
}

// SelectionOutcome tags the result of a region-selection attempt. Selection
// never fails hard; it either lands on the target or stays where it was.
type SelectionOutcome int

const (
	// SelectionSelected means the target region is (or already was) active.
	SelectionSelected SelectionOutcome = iota
	// SelectionUnchanged means the option could not be matched or clicked
	// and the previously detected region still applies.
	SelectionUnchanged
	// SelectionUnknown means even the current region could not be read.
	SelectionUnknown
)

func (o SelectionOutcome) String() string {
	switch o {
	case SelectionSelected:
		return "selected"
	case SelectionUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Selection is the tagged result of SelectRegion: the outcome plus the
// region display name the page is believed to be showing afterwards.
type Selection struct {
	Outcome SelectionOutcome
	Region  string
}

// LoadStatus tags the outcome of a page load.
type LoadStatus int

const (
	// LoadOK means the landmark appeared and the page looks like content.
	LoadOK LoadStatus = iota
	// LoadChallengeSuspected means the document title is empty or matches a
	// known anti-bot interstitial; scraping proceeds but results are
	// unreliable.
	LoadChallengeSuspected
)

// SearchResult is one entry returned by the title search API.
type SearchResult struct {
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
	Type  string `json:"type"`
	URL   string `json:"url"`
}
