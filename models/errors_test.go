package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrapeError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("net::ERR_CONNECTION_REFUSED")
	err := NewScrapeError(ErrCodeNavigation, "navigation to target URL failed", cause)

	assert.Equal(t, "NAVIGATION_FAILED: navigation to target URL failed: net::ERR_CONNECTION_REFUSED", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestScrapeError_WithoutCause(t *testing.T) {
	err := NewScrapeError(ErrCodeTimeout, "scrape canceled", nil)

	assert.Equal(t, "SCRAPE_TIMEOUT: scrape canceled", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestScrapeError_PublicMessage(t *testing.T) {
	cause := errors.New("timeout")
	withCause := NewScrapeError(ErrCodeTimeout, "title heading never appeared", cause)
	assert.Equal(t, "Failed to scrape URL: title heading never appeared: timeout", withCause.PublicMessage())

	withoutCause := NewScrapeError(ErrCodeTimeout, "title heading never appeared", nil)
	assert.Equal(t, "Failed to scrape URL: title heading never appeared", withoutCause.PublicMessage())
}
