package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Search    SearchConfig
	Batch     BatchConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the headless browser session.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: true

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is the proxy URL for all browser traffic.
	Proxy string

	// Stealth applies anti-bot evasions per session: launch flags plus a
	// stealth script injected into every page before navigation.
	Stealth bool // default: true

	// UserAgent overrides the browser's user agent string.
	UserAgent string

	// ViewportWidth and ViewportHeight fix the page viewport.
	ViewportWidth  int // default: 1280
	ViewportHeight int // default: 800
}

// ScraperConfig controls scraping behavior. All waits are condition polls
// with an overall budget, not fixed sleeps.
type ScraperConfig struct {
	// NavigationTimeout bounds page navigation to DOM content loaded.
	NavigationTimeout time.Duration // default: 30s

	// LandmarkTimeout bounds the wait for the title heading to appear.
	LandmarkTimeout time.Duration // default: 15s

	// ReadyBudget bounds the post-navigation readiness poll.
	ReadyBudget time.Duration // default: 3s

	// DropdownBudget bounds the poll for the region dropdown to render.
	DropdownBudget time.Duration // default: 2s

	// RegionChangeBudget bounds the poll for the page to reflect a region
	// change after the option is clicked.
	RegionChangeBudget time.Duration // default: 5s

	// PollInterval is how often wait predicates are re-evaluated.
	PollInterval time.Duration // default: 100ms
}

// SearchConfig controls the title search client.
type SearchConfig struct {
	// APIBase is the Reelgood content API root.
	APIBase string // default: "https://api.reelgood.com/v3.0"

	// SiteBase is used to build title page URLs from search hits.
	SiteBase string // default: "https://reelgood.com"

	// Timeout bounds one search request.
	Timeout time.Duration // default: 10s

	// Proxy overrides the proxy for search traffic.
	Proxy string
}

// BatchConfig controls the batch URL runner.
type BatchConfig struct {
	// Delay is the courtesy pause between successive scrapes.
	Delay time.Duration // default: 2s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// APIKeys is the list of valid API keys. Empty means open access,
	// which matches the original tool's behavior.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key or client IP.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size.
	Burst int // default: 3
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("REELSCOUT_HOST", "0.0.0.0"),
			Port: envIntOr("REELSCOUT_PORT", 8080),
			Mode: envOr("REELSCOUT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:       envBoolOr("REELSCOUT_HEADLESS", true),
			NoSandbox:      envBoolOr("REELSCOUT_NO_SANDBOX", true),
			BrowserBin:     os.Getenv("REELSCOUT_BROWSER_BIN"),
			Proxy:          os.Getenv("REELSCOUT_PROXY"),
			Stealth:        envBoolOr("REELSCOUT_STEALTH", true),
			UserAgent:      envOr("REELSCOUT_USER_AGENT", defaultUserAgent),
			ViewportWidth:  envIntOr("REELSCOUT_VIEWPORT_WIDTH", 1280),
			ViewportHeight: envIntOr("REELSCOUT_VIEWPORT_HEIGHT", 800),
		},
		Scraper: ScraperConfig{
			NavigationTimeout:  envDurationOr("REELSCOUT_NAV_TIMEOUT", 30*time.Second),
			LandmarkTimeout:    envDurationOr("REELSCOUT_LANDMARK_TIMEOUT", 15*time.Second),
			ReadyBudget:        envDurationOr("REELSCOUT_READY_BUDGET", 3*time.Second),
			DropdownBudget:     envDurationOr("REELSCOUT_DROPDOWN_BUDGET", 2*time.Second),
			RegionChangeBudget: envDurationOr("REELSCOUT_REGION_BUDGET", 5*time.Second),
			PollInterval:       envDurationOr("REELSCOUT_POLL_INTERVAL", 100*time.Millisecond),
		},
		Search: SearchConfig{
			APIBase:  envOr("REELSCOUT_SEARCH_API", "https://api.reelgood.com/v3.0"),
			SiteBase: envOr("REELSCOUT_SITE_BASE", "https://reelgood.com"),
			Timeout:  envDurationOr("REELSCOUT_SEARCH_TIMEOUT", 10*time.Second),
			Proxy:    os.Getenv("REELSCOUT_SEARCH_PROXY"),
		},
		Batch: BatchConfig{
			Delay: envDurationOr("REELSCOUT_BATCH_DELAY", 2*time.Second),
		},
		Auth: AuthConfig{
			APIKeys: envSliceOr("REELSCOUT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("REELSCOUT_RATE_RPS", 1.0),
			Burst:             envIntOr("REELSCOUT_RATE_BURST", 3),
		},
		Log: LogConfig{
			Level:  envOr("REELSCOUT_LOG_LEVEL", "info"),
			Format: envOr("REELSCOUT_LOG_FORMAT", "text"),
		},
	}
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
