package scraper

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logoImg(name string) string {
	return fmt.Sprintf(`<img src="https://img.reelgood.com/service-logos/%s.svg" alt="%s">`, name, name)
}

func TestExtractPlatforms_SubscriptionSection(t *testing.T) {
	page := `<html><body>
		<div>
			<span>Sub</span>
			<div>` + logoImg("Netflix") + logoImg("Hulu") + `</div>
		</div>
	</body></html>`

	ps, err := ExtractPlatforms(page)
	require.NoError(t, err)

	assert.Equal(t, []string{"Hulu", "Netflix"}, ps.Subscription)
	assert.Empty(t, ps.Free)
	assert.Equal(t, 2, ps.Count())
}

func TestExtractPlatforms_FreeAndSubscriptionSections(t *testing.T) {
	page := `<html><body>
		<div>
			<span>Sub</span>
			<div>` + logoImg("Netflix") + `</div>
		</div>
		<div>
			<span>Free</span>
			<div>` + logoImg("Tubi") + logoImg("Pluto TV") + `</div>
		</div>
	</body></html>`

	ps, err := ExtractPlatforms(page)
	require.NoError(t, err)

	assert.Equal(t, []string{"Netflix"}, ps.Subscription)
	assert.Equal(t, []string{"Pluto TV", "Tubi"}, ps.Free)
	assert.Equal(t, 3, ps.Count())
}

func TestExtractPlatforms_NoLogos(t *testing.T) {
	ps, err := ExtractPlatforms(`<html><body><h1>Some Title</h1></body></html>`)
	require.NoError(t, err)

	assert.Empty(t, ps.Subscription)
	assert.Empty(t, ps.Free)
	assert.Equal(t, 0, ps.Count())
}

func TestExtractPlatforms_RentAndBuyDiscarded(t *testing.T) {
	page := `<html><body>
		<div>
			<span>Rent</span>
			<div>` + logoImg("Apple TV") + `</div>
		</div>
		<div>
			<span>Buy</span>
			<div>` + logoImg("Amazon Video") + `</div>
		</div>
		<div>
			<span>Sub</span>
			<div>` + logoImg("Netflix") + `</div>
		</div>
	</body></html>`

	ps, err := ExtractPlatforms(page)
	require.NoError(t, err)

	assert.Equal(t, []string{"Netflix"}, ps.Subscription)
	assert.Empty(t, ps.Free)
}

func TestExtractPlatforms_ClassNameHint(t *testing.T) {
	page := `<html><body>
		<div class="css-freeRow">` + logoImg("Tubi") + `</div>
		<div class="css-subRow">` + logoImg("Netflix") + `</div>
	</body></html>`

	ps, err := ExtractPlatforms(page)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tubi"}, ps.Free)
	assert.Equal(t, []string{"Netflix"}, ps.Subscription)
}

func TestExtractPlatforms_SiblingLabelFallback(t *testing.T) {
	// No ancestor carries a label header or a class hint; the label sits in
	// a sibling preceding the logo's container.
	page := `<html><body>
		<section>
			<div><h3>Streaming details</h3></div>
			<div>Free</div>
			<div>` + logoImg("Tubi") + `</div>
		</section>
	</body></html>`

	ps, err := ExtractPlatforms(page)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tubi"}, ps.Free)
	assert.Empty(t, ps.Subscription)
}

func TestExtractPlatforms_DeduplicatesAndSorts(t *testing.T) {
	page := `<html><body>
		<div>
			<span>Sub</span>
			<div>` + logoImg("Netflix") + logoImg("Netflix") + logoImg("Disney+") + `</div>
		</div>
	</body></html>`

	ps, err := ExtractPlatforms(page)
	require.NoError(t, err)

	assert.Equal(t, []string{"Disney+", "Netflix"}, ps.Subscription)
}

func TestExtractPlatforms_EmptyAltSkipped(t *testing.T) {
	page := `<html><body>
		<div>
			<span>Sub</span>
			<div><img src="https://img.reelgood.com/service-logos/blank.svg" alt="">` + logoImg("Netflix") + `</div>
		</div>
	</body></html>`

	ps, err := ExtractPlatforms(page)
	require.NoError(t, err)

	assert.Equal(t, []string{"Netflix"}, ps.Subscription)
}

func TestExtractPlatforms_UnlabeledLogoIgnored(t *testing.T) {
	// A logo with no category anywhere near it must not land in either set.
	page := `<html><body>
		<div>` + logoImg("Mystery") + `</div>
	</body></html>`

	ps, err := ExtractPlatforms(page)
	require.NoError(t, err)

	assert.Empty(t, ps.Subscription)
	assert.Empty(t, ps.Free)
}

func TestExtractPlatforms_NeverInBothSets(t *testing.T) {
	page := `<html><body>
		<div>
			<span>Sub</span>
			<div>` + logoImg("Peacock") + `</div>
		</div>
		<div>
			<span>Free</span>
			<div>` + logoImg("Peacock") + `</div>
		</div>
	</body></html>`

	ps, err := ExtractPlatforms(page)
	require.NoError(t, err)

	assert.Equal(t, []string{"Peacock"}, ps.Subscription)
	assert.Empty(t, ps.Free)
}

func TestExtractPlatforms_NonLogoImagesIgnored(t *testing.T) {
	page := `<html><body>
		<div>
			<span>Sub</span>
			<div><img src="https://img.reelgood.com/posters/inception.jpg" alt="Inception poster"></div>
		</div>
	</body></html>`

	ps, err := ExtractPlatforms(page)
	require.NoError(t, err)

	assert.Equal(t, 0, ps.Count())
}
