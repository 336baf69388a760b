package models

// Region pairs a short code with the display name Reelgood renders in the
// region dropdown. Matching against the page is done by display name.
type Region struct {
	Code string
	Name string
}

// Regions is the fixed region table. Order matches the site's dropdown and
// determines iteration order for all-regions scrapes.
var Regions = []Region{
	{Code: "all", Name: "All Regions"},
	{Code: "us", Name: "United States"},
	{Code: "uk", Name: "United Kingdom"},
	{Code: "ca", Name: "Canada"},
	{Code: "au", Name: "Australia"},
	{Code: "nz", Name: "New Zealand"},
}

// RegionName resolves a region code to its display name.
func RegionName(code string) (string, bool) {
	for _, r := range Regions {
		if r.Code == code {
			return r.Name, true
		}
	}
	return "", false
}

// ValidRegionCodes returns all codes in table order, for usage messages.
func ValidRegionCodes() []string {
	codes := make([]string, len(Regions))
	for i, r := range Regions {
		codes[i] = r.Code
	}
	return codes
}

// ScrapeOrder returns the regions visited by an all-regions scrape: the
// table minus the synthetic "all" pseudo-region, in table order.
func ScrapeOrder() []Region {
	out := make([]Region, 0, len(Regions)-1)
	for _, r := range Regions {
		if r.Code == "all" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// IsRegionDisplayName reports whether s is one of the known display names.
func IsRegionDisplayName(s string) bool {
	for _, r := range Regions {
		if r.Name == s {
			return true
		}
	}
	return false
}
