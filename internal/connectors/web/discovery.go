package web

import (
	"context"
	"fmt"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// categoryQuery is one templated discovery search.
type categoryQuery struct {
	query      string
	siteFilter string
	max        int
}

// discoveryPlan maps each category to its templated queries. The
// subject name is substituted for %s at run time.
var discoveryPlan = map[string][]categoryQuery{
	driven.CategoryWikipedia: {
		{query: "%s", siteFilter: "site:en.wikipedia.org", max: 3},
	},
	driven.CategoryBlogs: {
		{query: "%s", siteFilter: "site:medium.com", max: 5},
		{query: "%s", siteFilter: "site:substack.com", max: 5},
		{query: "%s blog", max: 5},
	},
	driven.CategoryBooks: {
		{query: "%s books", siteFilter: "site:books.google.com", max: 5},
		{query: "%s books", siteFilter: "site:goodreads.com", max: 5},
		{query: "%s author", siteFilter: "site:amazon.com", max: 5},
	},
	driven.CategoryPersonal: {
		{query: "%s official site", max: 5},
	},
	driven.CategoryNews: {
		{query: "%s interview", max: 5},
		{query: "%s", siteFilter: "site:nytimes.com", max: 3},
		{query: "%s", siteFilter: "site:theguardian.com", max: 3},
	},
	driven.CategorySocial: {
		{query: "%s LinkedIn", max: 3},
		{query: "%s Twitter", max: 3},
		{query: "%s X.com", max: 3},
		{query: "%s biography", max: 5},
	},
	driven.CategoryPodcasts: {
		{query: "%s podcast", siteFilter: "site:open.spotify.com", max: 5},
		{query: "%s podcast", siteFilter: "site:podcasts.apple.com", max: 5},
		{query: "%s podcast", siteFilter: "site:podchaser.com", max: 5},
	},
}

// Discover issues the templated per-category queries and returns a
// category → deduplicated URL list mapping, without fetching bodies.
// Fetching is a separate explicit step so callers can bound total
// fetch volume. Individual query failures degrade to fewer links.
func (c *Connector) Discover(ctx context.Context, subject string) (map[string][]string, error) {
	out := make(map[string][]string, len(discoveryPlan))
	for _, category := range driven.DiscoveryCategories() {
		var links []string
		seen := make(map[string]struct{})
		for _, cq := range discoveryPlan[category] {
			q := fmt.Sprintf(cq.query, subject)
			if cq.siteFilter != "" {
				q += " " + cq.siteFilter
			}
			found, err := c.Search(ctx, q, cq.max)
			if err != nil {
				logger.Warn("web: discovery query %q degraded: %v", q, err)
			}
			for _, u := range found {
				if _, dup := seen[u]; dup {
					continue
				}
				seen[u] = struct{}{}
				links = append(links, u)
			}
		}
		out[category] = links
		logger.Debug("web: discovery %s: %d links", category, len(links))
	}
	return out, nil
}

// FetchCategories fetches up to perCategory pages per category, in the
// canonical category order. Fetches degrade individually; the returned
// list may mix articles and link-only placeholder records.
func (c *Connector) FetchCategories(ctx context.Context, categories map[string][]string, perCategory int) []domain.Record {
	var records []domain.Record
	for _, category := range driven.DiscoveryCategories() {
		links := categories[category]
		if len(links) == 0 {
			continue
		}
		fetched := 0
		for _, u := range links {
			if fetched >= perCategory {
				break
			}
			records = append(records, c.Fetch(ctx, u))
			fetched++
		}
	}
	return records
}
