package scraper

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/reelscout/reelscout/browser"
	"github.com/reelscout/reelscout/models"
)

// The region dropdown lives in a generated-class subtree. These selectors
// are known-fragile; CurrentRegion degrades through them in order.
const regionSpanJS = `() => {
	const span = document.querySelector('div.e3nus5z7 span.e3nus5z6, div[class*="e3nus5z"] > span');
	return span ? span.innerText.trim() : "";
}`

const regionDropdownFirstLineJS = `() => {
	const dropdown = document.querySelector('div.e3nus5z7, div[class*="e3nus5z"]');
	if (!dropdown) return "";
	return dropdown.innerText.trim().split("\n")[0];
}`

const openRegionDropdownJS = `() => {
	const dropdown = document.querySelector('div.e3nus5z7, div[class*="e3nus5z"]');
	if (!dropdown) return false;
	dropdown.click();
	return true;
}`

// regionOptionJS locates the dropdown option whose direct text content
// equals the target display name and whose box is visible within a bounded
// vertical window, to avoid matching off-screen duplicates. It returns the
// option's center coordinates or null. The site's options carry no stable
// selector, so the click is simulated at pixel position.
const regionOptionJS = `() => {
	const target = %s;
	const walker = document.createTreeWalker(document.body, NodeFilter.SHOW_ELEMENT);
	while (walker.nextNode()) {
		const el = walker.currentNode;
		const text = el.textContent.trim();
		const directText = Array.from(el.childNodes)
			.filter(n => n.nodeType === Node.TEXT_NODE)
			.map(n => n.textContent.trim())
			.join('');
		if (directText === target || (text === target && el.children.length === 0)) {
			const rect = el.getBoundingClientRect();
			if (rect.height > 0 && rect.width > 0 && rect.y > 0 && rect.y < 600) {
				return {x: rect.x + rect.width/2, y: rect.y + rect.height/2};
			}
		}
	}
	return null;
}`

const regionShowsJS = `() => {
	const span = document.querySelector('div.e3nus5z7 span.e3nus5z6, div[class*="e3nus5z"] > span');
	return !!span && span.innerText.trim() === %s;
}`

// CurrentRegion reads the region the page is currently displaying, or
// models.UnknownRegion when the dropdown subtree cannot be interpreted.
func (s *Scraper) CurrentRegion(page browser.Page) string {
	if res, err := page.Eval(regionSpanJS); err == nil {
		if text := strings.TrimSpace(res.Str()); models.IsRegionDisplayName(text) {
			return text
		}
	}
	if res, err := page.Eval(regionDropdownFirstLineJS); err == nil {
		if text := strings.TrimSpace(res.Str()); text != "" {
			return text
		}
	}
	return models.UnknownRegion
}

// SelectRegion switches the page to the target region display name.
// Selection never fails hard: whatever goes wrong, the dropdown is closed
// and the result reports the region the page is still believed to show.
func (s *Scraper) SelectRegion(page browser.Page, target string) models.Selection {
	current := s.CurrentRegion(page)
	if current == target {
		return models.Selection{Outcome: models.SelectionSelected, Region: target}
	}

	opened, err := page.Eval(openRegionDropdownJS)
	if err != nil || opened.Val() != true {
		slog.Warn("region dropdown not found", "target", target, "error", err)
		return unchangedSelection(current)
	}

	locator := fmt.Sprintf(regionOptionJS, strconv.Quote(target))

	// The dropdown renders asynchronously; poll with a budget until the
	// option is locatable instead of sleeping a fixed interval.
	if err := page.WaitFor(locator, s.cfg.PollInterval, s.cfg.DropdownBudget); err != nil {
		s.closeDropdown(page)
		slog.Warn("region option never rendered", "target", target)
		return unchangedSelection(current)
	}

	coords, err := page.Eval(locator)
	if err != nil || coords.Val() == nil {
		s.closeDropdown(page)
		return unchangedSelection(current)
	}

	x := coords.Get("x").Num()
	y := coords.Get("y").Num()
	if err := page.ClickAt(x, y); err != nil {
		s.closeDropdown(page)
		slog.Warn("region option click failed", "target", target, "error", err)
		return unchangedSelection(s.CurrentRegion(page))
	}

	// Give the page a bounded window to reflect the change. A timeout here
	// is not a failure: the click landed, so report the target the same way
	// the selection contract always has.
	shows := fmt.Sprintf(regionShowsJS, strconv.Quote(target))
	if err := page.WaitFor(shows, s.cfg.PollInterval, s.cfg.RegionChangeBudget); err != nil {
		slog.Debug("region label did not confirm in time", "target", target)
	}

	return models.Selection{Outcome: models.SelectionSelected, Region: target}
}

// closeDropdown force-closes an open dropdown so a failed selection leaves
// the page usable for the next step.
func (s *Scraper) closeDropdown(page browser.Page) {
	if err := page.PressEscape(); err != nil {
		slog.Debug("escape keypress failed", "error", err)
	}
}

func unchangedSelection(region string) models.Selection {
	if region == models.UnknownRegion {
		return models.Selection{Outcome: models.SelectionUnknown, Region: region}
	}
	return models.Selection{Outcome: models.SelectionUnchanged, Region: region}
}
