// Package tavily implements the secondary search-API connector, a
// thin REST client returning normalised title/url/content records.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchProvider = (*Client)(nil)

const (
	// DefaultBaseURL is the search endpoint.
	DefaultBaseURL = "https://api.tavily.com/search"

	// DefaultTimeout is the per-request timeout. The advanced search
	// depth can take a while server-side.
	DefaultTimeout = 60 * time.Second

	// DefaultDepth is the search depth requested from the provider.
	DefaultDepth = "advanced"
)

// socialDomains is the allow-list applied to SocialHandles results.
var socialDomains = []string{
	"twitter.com", "x.com", "instagram.com", "linkedin.com",
	"facebook.com", "threads.net", "tiktok.com", "youtube.com",
}

// Config holds the client configuration.
type Config struct {
	// APIKey authenticates requests (required).
	APIKey string

	// BaseURL overrides the search endpoint. Used by tests.
	BaseURL string

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// Depth overrides the search depth (default: advanced).
	Depth string
}

// Client is a REST client for the search API.
type Client struct {
	config Config
	client *http.Client
}

// New creates a search-API client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Depth == "" {
		cfg.Depth = DefaultDepth
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// searchRequest is the provider's request payload.
type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

// searchResponse is the provider's response payload.
type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// search runs one provider query and normalises the results.
func (c *Client) search(ctx context.Context, query string, maxResults int) ([]domain.Record, error) {
	if c.config.APIKey == "" {
		return nil, domain.ErrCredentialMissing
	}

	body, err := json.Marshal(searchRequest{
		APIKey:      c.config.APIKey,
		Query:       query,
		SearchDepth: c.config.Depth,
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %q: status %d", query, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	records := make([]domain.Record, 0, len(parsed.Results))
	for _, res := range parsed.Results {
		rec := domain.Record{
			SourceType: domain.SourceTavilyResult,
			Title:      res.Title,
			URL:        res.URL,
			Text:       res.Content,
			FetchedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		rec.Enrich()
		records = append(records, rec)
	}
	logger.Debug("tavily: %d results for %q", len(records), query)
	return records, nil
}

// Overview searches for biographical and profile material.
func (c *Client) Overview(ctx context.Context, subject string, maxResults int) ([]domain.Record, error) {
	return c.search(ctx, subject+" biography profile background", maxResults)
}

// BooksAndArticles searches for publications by or about the subject.
func (c *Client) BooksAndArticles(ctx context.Context, subject string, maxResults int) ([]domain.Record, error) {
	return c.search(ctx, subject+" books articles interviews bibliography publications", maxResults)
}

// SocialHandles searches for social-profile links. Results are
// filtered to known social domains; if the filter removes everything
// the unfiltered set is returned instead, since an over-eager filter
// is worse than a noisy one here.
func (c *Client) SocialHandles(ctx context.Context, subject string, maxResults int) ([]domain.Record, error) {
	results, err := c.search(ctx, subject+" official social media links Twitter X Instagram LinkedIn Facebook", maxResults)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Record, 0, len(results))
	for _, rec := range results {
		if isSocialURL(rec.URL) {
			filtered = append(filtered, rec)
		}
	}
	if len(filtered) == 0 {
		return results, nil
	}
	return filtered, nil
}

// isSocialURL reports whether the URL belongs to a known social domain.
func isSocialURL(rawURL string) bool {
	for _, d := range socialDomains {
		if strings.Contains(rawURL, d) {
			return true
		}
	}
	return false
}
