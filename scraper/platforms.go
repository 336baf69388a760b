package scraper

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/reelscout/reelscout/browser"
	"github.com/reelscout/reelscout/models"
)

// Service logos follow a fixed asset-path naming convention; the image's
// alt text is the platform name as rendered.
const logoSelector = `img[src*="service-logos"]`

// Category labels as they appear in section headers. Only Free and Sub
// survive into the result; rental and purchase offers are out of scope.
const (
	categoryFree = "Free"
	categorySub  = "Sub"
	categoryRent = "Rent"
	categoryBuy  = "Buy"
)

const (
	maxAncestorLevels = 15
	maxSiblingLevels  = 5
)

func isCategoryLabel(s string) bool {
	switch s {
	case categoryFree, categorySub, categoryRent, categoryBuy:
		return true
	}
	return false
}

// extractPlatforms snapshots the rendered page and classifies platforms
// server-side, where the walk is deterministic and testable.
func (s *Scraper) extractPlatforms(page browser.Page) (models.PlatformSet, error) {
	rawHTML, err := page.HTML()
	if err != nil {
		return models.PlatformSet{}, models.NewScrapeError(models.ErrCodeNavigation, "failed to snapshot page", err)
	}
	return ExtractPlatforms(rawHTML)
}

// ExtractPlatforms scans rendered markup for service logos and classifies
// each into subscription or free availability. Zero logos is a valid empty
// result, not an error. Output sets are deduplicated and sorted.
func ExtractPlatforms(rawHTML string) (models.PlatformSet, error) {
	sel, err := cascadia.Parse(logoSelector)
	if err != nil {
		return models.PlatformSet{}, err
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return models.PlatformSet{}, err
	}

	subscription := make(map[string]struct{})
	free := make(map[string]struct{})

	for _, img := range cascadia.QueryAll(doc, sel) {
		name := attrValue(img, "alt")
		if name == "" {
			continue
		}
		switch categorize(img) {
		case categorySub:
			subscription[name] = struct{}{}
		case categoryFree:
			free[name] = struct{}{}
		}
	}

	// A platform never appears in both sets; subscription wins when a logo
	// shows up under both section types.
	for name := range subscription {
		delete(free, name)
	}

	return models.NewPlatformSet(subscription, free), nil
}

// categorize walks up from a logo image looking for the section's category
// label: first a header child, then class-name hints, then the previous
// siblings of the nearest ancestors.
func categorize(img *html.Node) string {
	el := img
	for i := 0; i < maxAncestorLevels; i++ {
		el = parentElement(el)
		if el == nil {
			break
		}

		// Category sections carry their label as the first child element's
		// text, e.g. a "Sub" header above the logo grid.
		if first := firstElementChild(el); first != nil {
			if label := strings.TrimSpace(nodeText(first)); isCategoryLabel(label) {
				return label
			}
		}

		if class := attrValue(el, "class"); class != "" {
			switch {
			case strings.Contains(class, "free"):
				return categoryFree
			case strings.Contains(class, "sub"):
				return categorySub
			case strings.Contains(class, "rent"):
				return categoryRent
			case strings.Contains(class, "buy"):
				return categoryBuy
			}
		}
	}

	// Fallback: a label sibling preceding one of the nearest ancestors.
	sibling := parentElement(img)
	for i := 0; i < maxSiblingLevels && sibling != nil; i++ {
		if prev := prevElementSibling(sibling); prev != nil {
			if label := strings.TrimSpace(nodeText(prev)); isCategoryLabel(label) {
				return label
			}
		}
		sibling = parentElement(sibling)
	}

	return ""
}

// --- node helpers ---

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func parentElement(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func prevElementSibling(n *html.Node) *html.Node {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// nodeText is the equivalent of textContent: all descendant text joined.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
