package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// Search resolves a query to an ordered URL list. DuckDuckGo's HTML
// endpoint is the primary provider; when it returns zero results the
// Bing HTML endpoint is tried. Results are deduplicated by exact
// string equality in provider relevance order. Video-platform links
// are excluded here; the video connector covers that ground.
func (c *Connector) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	links, err := c.searchPrimary(ctx, query, maxResults)
	if len(links) > 0 {
		return links, nil
	}
	if err != nil {
		logger.Warn("web: primary search degraded: %v", err)
	}

	links, fbErr := c.searchFallback(ctx, query, maxResults)
	if fbErr != nil {
		logger.Warn("web: fallback search degraded: %v", fbErr)
		if err == nil {
			err = fbErr
		}
	}
	if len(links) > 0 {
		return links, nil
	}
	return nil, err
}

// searchPrimary queries the DuckDuckGo HTML endpoint.
func (c *Connector) searchPrimary(ctx context.Context, query string, maxResults int) ([]string, error) {
	doc, err := c.getHTML(ctx, c.searchBaseURL+"?"+url.Values{"q": {query}}.Encode())
	if err != nil {
		return nil, err
	}

	var links []string
	seen := make(map[string]struct{})
	walk(doc, func(n *html.Node) bool {
		if len(links) >= maxResults {
			return false
		}
		if isElement(n, "a") && hasClass(n, "result__a") {
			href := normalizeRedirectLink(attr(n, "href"))
			if acceptLink(href, seen) {
				links = append(links, href)
			}
			return false
		}
		return true
	})
	return links, nil
}

// searchFallback queries the Bing HTML endpoint. The result anchors
// sit inside h2 elements; the selector is deliberately tolerant.
func (c *Connector) searchFallback(ctx context.Context, query string, maxResults int) ([]string, error) {
	doc, err := c.getHTML(ctx, c.fallbackBaseURL+"?"+url.Values{"q": {query}}.Encode())
	if err != nil {
		return nil, err
	}

	var links []string
	seen := make(map[string]struct{})
	walk(doc, func(n *html.Node) bool {
		if len(links) >= maxResults {
			return false
		}
		if isElement(n, "h2") {
			a := findFirst(n, func(node *html.Node) bool {
				return isElement(node, "a") && strings.HasPrefix(attr(node, "href"), "http")
			})
			if a != nil {
				href := attr(a, "href")
				if acceptLink(href, seen) {
					links = append(links, href)
				}
			}
			return false
		}
		return true
	})
	return links, nil
}

// getHTML fetches a URL and parses the response body as HTML.
func (c *Connector) getHTML(ctx context.Context, rawURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: status %d", rawURL, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	return doc, nil
}

// normalizeRedirectLink unwraps DuckDuckGo outbound redirect links of
// the form //duckduckgo.com/l/?uddg=ENCODED.
func normalizeRedirectLink(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasSuffix(u.Hostname(), "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}

// acceptLink filters out empty, duplicate, and video-platform URLs,
// recording accepted links in seen.
func acceptLink(href string, seen map[string]struct{}) bool {
	if href == "" {
		return false
	}
	if strings.Contains(href, "youtube.com") || strings.Contains(href, "youtu.be") {
		return false
	}
	if _, dup := seen[href]; dup {
		return false
	}
	seen[href] = struct{}{}
	return true
}
