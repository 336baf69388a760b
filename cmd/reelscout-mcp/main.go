// reelscout-mcp is an MCP stdio server that exposes the reelscout HTTP API
// as tools, so assistants can look up streaming availability directly.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// scrapeResponse mirrors the reelscout POST /scrape body.
type scrapeResponse struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Regions []struct {
		Code          string   `json:"code"`
		Name          string   `json:"name"`
		Subscription  []string `json:"subscription"`
		Free          []string `json:"free"`
		PlatformCount int      `json:"platform_count"`
	} `json:"regions"`
	Error string `json:"error"`
}

// searchResponse mirrors the reelscout POST /search body.
type searchResponse struct {
	Query   string `json:"query"`
	Results []struct {
		Title string `json:"title"`
		Year  int    `json:"year"`
		Type  string `json:"type"`
		URL   string `json:"url"`
	} `json:"results"`
	Error string `json:"error"`
}

func main() {
	apiURL := os.Getenv("REELSCOUT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("REELSCOUT_API_KEY")

	s := server.NewMCPServer(
		"reelscout",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	checkAvailabilityTool := mcp.NewTool("check_availability",
		mcp.WithDescription("Check which streaming platforms carry a movie or TV show in each region, given its Reelgood page URL. Returns subscription and free availability per region."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The Reelgood URL of the movie or show, e.g. https://reelgood.com/movie/inception-2010"),
		),
	)
	s.AddTool(checkAvailabilityTool, handleCheckAvailability(apiURL, apiKey))

	searchTitlesTool := mcp.NewTool("search_titles",
		mcp.WithDescription("Search Reelgood for movies and TV shows by name. Returns title-page URLs usable with check_availability."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Title to search for (at least 2 characters)"),
		),
	)
	s.AddTool(searchTitlesTool, handleSearchTitles(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the reelscout API and returns the body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleCheckAvailability(apiURL, apiKey string) server.ToolHandlerFunc {
	// An all-regions scrape visits five regions in one browser session.
	client := &http.Client{Timeout: 300 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		body, err := apiPost(ctx, client, apiURL, apiKey, "/scrape", map[string]string{"url": url})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var resp scrapeResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if resp.Error != "" {
			return mcp.NewToolResultError(resp.Error), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Title: %s\nSource: %s\n", resp.Title, resp.URL)
		for _, region := range resp.Regions {
			fmt.Fprintf(&b, "\n%s (%d platforms):\n", region.Name, region.PlatformCount)
			if len(region.Subscription) > 0 {
				fmt.Fprintf(&b, "  Subscription: %s\n", strings.Join(region.Subscription, ", "))
			}
			if len(region.Free) > 0 {
				fmt.Fprintf(&b, "  Free: %s\n", strings.Join(region.Free, ", "))
			}
			if region.PlatformCount == 0 {
				b.WriteString("  (No streaming platforms available)\n")
			}
		}

		return mcp.NewToolResultText(b.String()), nil
	}
}

func handleSearchTitles(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError("query is required"), nil
		}

		body, err := apiPost(ctx, client, apiURL, apiKey, "/search", map[string]string{"query": query})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if resp.Error != "" {
			return mcp.NewToolResultError(resp.Error), nil
		}
		if len(resp.Results) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No titles found for %q", query)), nil
		}

		var b strings.Builder
		for _, r := range resp.Results {
			if r.Year > 0 {
				fmt.Fprintf(&b, "%s (%d) [%s]\n    %s\n", r.Title, r.Year, r.Type, r.URL)
			} else {
				fmt.Fprintf(&b, "%s [%s]\n    %s\n", r.Title, r.Type, r.URL)
			}
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}
