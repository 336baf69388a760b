package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlatformSet_DeduplicatesAndSorts(t *testing.T) {
	ps := NewPlatformSet(
		map[string]struct{}{"Netflix": {}, "Hulu": {}, "Disney+": {}},
		map[string]struct{}{"Tubi": {}},
	)

	assert.Equal(t, []string{"Disney+", "Hulu", "Netflix"}, ps.Subscription)
	assert.Equal(t, []string{"Tubi"}, ps.Free)
	assert.Equal(t, 4, ps.Count())
}

func TestNewPlatformSet_EmptyInputsMarshalAsArrays(t *testing.T) {
	ps := NewPlatformSet(nil, nil)
	assert.Equal(t, 0, ps.Count())

	data, err := json.Marshal(ps)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subscription":[],"free":[]}`, string(data))
}

func TestScrapeResult_JSONFieldNames(t *testing.T) {
	res := ScrapeResult{
		Title: "Inception",
		Platforms: PlatformSet{
			Subscription: []string{"Netflix"},
			Free:         []string{},
		},
		Region:        "United States",
		URL:           "https://reelgood.com/movie/inception-2010",
		PlatformCount: 1,
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"title": "Inception",
		"platforms": {"subscription": ["Netflix"], "free": []},
		"region": "United States",
		"url": "https://reelgood.com/movie/inception-2010",
		"platform_count": 1
	}`, string(data))

	var back ScrapeResult
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, res, back)
}

func TestAllRegionsResult_JSONShape(t *testing.T) {
	res := AllRegionsResult{
		Title: "Inception",
		URL:   "https://reelgood.com/movie/inception-2010",
		Regions: map[string]RegionResult{
			"us": {
				Region:        "United States",
				Platforms:     PlatformSet{Subscription: []string{"Netflix"}, Free: []string{}},
				PlatformCount: 1,
			},
		},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "title")
	assert.Contains(t, decoded, "url")
	assert.Contains(t, decoded, "regions")

	var regions map[string]RegionResult
	require.NoError(t, json.Unmarshal(decoded["regions"], &regions))
	assert.Equal(t, "United States", regions["us"].Region)
	assert.Equal(t, 1, regions["us"].PlatformCount)
}

func TestSelectionOutcome_String(t *testing.T) {
	assert.Equal(t, "selected", SelectionSelected.String())
	assert.Equal(t, "unchanged", SelectionUnchanged.String())
	assert.Equal(t, "unknown", SelectionUnknown.String())
}
