// Package browser abstracts the headless browser behind small interfaces so
// the scraping logic can be exercised against a scripted fake in tests.
package browser

import (
	"context"
	"time"

	"github.com/ysmood/gson"

	"github.com/reelscout/reelscout/config"
)

// Engine launches browser sessions.
type Engine interface {
	Start(cfg config.BrowserConfig) (Session, error)
}

// Session is one running browser process. Pages created from it are
// independent browsing contexts; a page is never shared between scrapes.
type Session interface {
	// NewPage opens a fresh page bound to ctx. All operations on the page
	// are cancelled when ctx is done.
	NewPage(ctx context.Context) (Page, error)

	// Close tears down the browser process.
	Close() error
}

// Page is the capability surface the scraper needs from a browsing context.
type Page interface {
	// Navigate loads url and waits for DOM content, bounded by timeout.
	Navigate(url string, timeout time.Duration) error

	// WaitElement blocks until an element matching selector exists,
	// bounded by timeout.
	WaitElement(selector string, timeout time.Duration) error

	// WaitFor polls the JS predicate (a zero-argument function returning a
	// truthy value) every interval until it holds or budget elapses.
	WaitFor(js string, interval, budget time.Duration) error

	// Eval runs a zero-argument JS function and returns its value.
	Eval(js string) (gson.JSON, error)

	// HTML returns the current rendered document markup.
	HTML() (string, error)

	// DocumentTitle returns document.title.
	DocumentTitle() (string, error)

	// ClickAt simulates a human click at viewport coordinates.
	ClickAt(x, y float64) error

	// PressEscape sends an Escape keypress, used to close open dropdowns.
	PressEscape() error

	// Close releases the browsing context.
	Close() error
}

type waitBudgetError struct{}

func (waitBudgetError) Error() string { return "browser: wait budget exceeded" }

// ErrWaitBudget is returned by WaitFor when the predicate never held within
// its budget. Callers generally treat this as "proceed with the current DOM".
var ErrWaitBudget error = waitBudgetError{}
