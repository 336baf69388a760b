package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScrapeAPIResponse_TableOrder(t *testing.T) {
	res := &AllRegionsResult{
		Title: "Inception",
		URL:   "https://reelgood.com/movie/inception-2010",
		Regions: map[string]RegionResult{
			"nz": {Region: "New Zealand", Platforms: NewPlatformSet(nil, nil)},
			"us": {
				Region:        "United States",
				Platforms:     PlatformSet{Subscription: []string{"Netflix"}, Free: []string{}},
				PlatformCount: 1,
			},
			"ca": {
				Region:        "Canada",
				Platforms:     PlatformSet{Subscription: []string{}, Free: []string{"CBC Gem"}},
				PlatformCount: 1,
			},
		},
	}

	resp := NewScrapeAPIResponse(res)

	assert.Equal(t, "Inception", resp.Title)
	require.Len(t, resp.Regions, 3)
	assert.Equal(t, "us", resp.Regions[0].Code)
	assert.Equal(t, "ca", resp.Regions[1].Code)
	assert.Equal(t, "nz", resp.Regions[2].Code)
	assert.Equal(t, "United States", resp.Regions[0].Name)
	assert.Equal(t, []string{"Netflix"}, resp.Regions[0].Subscription)
	assert.Equal(t, []string{"CBC Gem"}, resp.Regions[1].Free)
}

func TestRegionAvailability_JSONFieldNames(t *testing.T) {
	ra := RegionAvailability{
		Code:          "us",
		Name:          "United States",
		Subscription:  []string{"Netflix"},
		Free:          []string{},
		PlatformCount: 1,
	}

	data, err := json.Marshal(ra)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"code": "us",
		"name": "United States",
		"subscription": ["Netflix"],
		"free": [],
		"platform_count": 1
	}`, string(data))
}
