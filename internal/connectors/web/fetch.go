package web

import (
	"context"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// noiseTags are DOM regions dropped wholesale before extraction.
var noiseTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"header":   {},
	"nav":      {},
	"footer":   {},
	"aside":    {},
	"form":     {},
}

// noiseMarkers flag container divs by class or id substring.
var noiseMarkers = []string{"header", "nav", "subscribe", "signup"}

// Fetch retrieves one URL and extracts its readable text. It never
// fails: any network or parse error yields a web_link record with
// empty text and the original URL preserved, so one bad URL cannot
// abort a batch.
func (c *Connector) Fetch(ctx context.Context, rawURL string) domain.Record {
	doc, err := c.getHTML(ctx, rawURL)
	if err != nil {
		logger.Warn("web: fetch degraded for %s: %v", rawURL, err)
		rec := domain.Record{
			SourceType: domain.SourceWebLink,
			URL:        rawURL,
			Title:      rawURL,
			FetchedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		rec.Enrich()
		return rec
	}

	title := extractTitle(doc)
	if title == "" {
		title = rawURL
	}

	rec := domain.Record{
		SourceType: domain.SourceWebArticle,
		URL:        rawURL,
		Title:      title,
		Text:       extractBodyText(doc),
		FetchedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	rec.Enrich()
	return rec
}

// extractTitle returns the trimmed <title> text, or empty string.
func extractTitle(doc *html.Node) string {
	n := findFirst(doc, func(node *html.Node) bool {
		return isElement(node, "title")
	})
	if n == nil {
		return ""
	}
	return collapseWhitespace(textContent(n))
}

// extractBodyText strips boilerplate regions and extracts paragraph
// text from the main content area. All whitespace runs collapse to
// single spaces.
func extractBodyText(doc *html.Node) string {
	stripNoise(doc)

	root := findFirst(doc, func(n *html.Node) bool { return isElement(n, "main") })
	if root == nil {
		root = findFirst(doc, func(n *html.Node) bool { return isElement(n, "article") })
	}
	if root == nil {
		root = doc
	}

	// Prefer paragraph text; fall back to the full subtree when the
	// page has no <p> structure at all.
	var parts []string
	walk(root, func(n *html.Node) bool {
		if isElement(n, "p") {
			if t := textContent(n); t != "" {
				parts = append(parts, t)
			}
			return false
		}
		return true
	})

	body := strings.Join(parts, " ")
	if body == "" {
		body = textContent(root)
	}
	return collapseWhitespace(body)
}

// stripNoise removes navigation, chrome, and promo regions in place.
func stripNoise(doc *html.Node) {
	detachMatching(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		if _, noisy := noiseTags[n.Data]; noisy {
			return true
		}
		if n.Data == "div" {
			marker := strings.ToLower(attr(n, "class") + " " + attr(n, "id"))
			for _, m := range noiseMarkers {
				if strings.Contains(marker, m) {
					return true
				}
			}
		}
		return false
	})
}
