package models

// RegionAvailability is one region's entry in the HTTP scrape response.
// Field names are part of the API contract.
type RegionAvailability struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Subscription  []string `json:"subscription"`
	Free          []string `json:"free"`
	PlatformCount int      `json:"platform_count"`
}

// ScrapeAPIResponse is the success body of POST /scrape.
type ScrapeAPIResponse struct {
	Title   string               `json:"title"`
	URL     string               `json:"url"`
	Regions []RegionAvailability `json:"regions"`
}

// NewScrapeAPIResponse flattens an all-regions result into the HTTP shape,
// in region-table order for deterministic output.
func NewScrapeAPIResponse(res *AllRegionsResult) ScrapeAPIResponse {
	out := ScrapeAPIResponse{
		Title:   res.Title,
		URL:     res.URL,
		Regions: make([]RegionAvailability, 0, len(res.Regions)),
	}
	for _, region := range ScrapeOrder() {
		rr, ok := res.Regions[region.Code]
		if !ok {
			continue
		}
		out.Regions = append(out.Regions, RegionAvailability{
			Code:          region.Code,
			Name:          rr.Region,
			Subscription:  rr.Platforms.Subscription,
			Free:          rr.Platforms.Free,
			PlatformCount: rr.PlatformCount,
		})
	}
	return out
}

// SearchAPIResponse is the success body of POST /search.
type SearchAPIResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}
