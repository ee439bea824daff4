package driven

import (
	"context"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
)

// WebConnector resolves free-text queries to URLs and fetches page
// bodies. Implementations degrade rather than abort: a failed search
// returns an empty list with the error for logging, and a failed fetch
// returns a link-only placeholder record.
type WebConnector interface {
	// Search resolves a query to an ordered, exact-string-deduplicated
	// URL list in provider relevance order. A non-nil error means the
	// result is degraded (typically empty), never that the caller must
	// abort.
	Search(ctx context.Context, query string, maxResults int) ([]string, error)

	// Fetch retrieves one URL and extracts its text. It never fails:
	// on any fetch or parse error it returns a web_link record with
	// empty text and the original URL preserved.
	Fetch(ctx context.Context, url string) domain.Record

	// Discover issues templated queries per topical category and
	// returns category name → deduplicated URL list, without fetching
	// any bodies. Fetching is a separate, explicit step.
	Discover(ctx context.Context, subject string) (map[string][]string, error)

	// FetchCategories fetches up to perCategory pages from each
	// category's link list, in category iteration order.
	FetchCategories(ctx context.Context, categories map[string][]string, perCategory int) []domain.Record
}

// Discovery category names. Keys of the map returned by Discover.
const (
	CategoryWikipedia = "wikipedia"
	CategoryBlogs     = "blogs"
	CategoryBooks     = "books"
	CategoryPersonal  = "personal"
	CategoryNews      = "news"
	CategorySocial    = "social"
	CategoryPodcasts  = "podcasts"
)

// DiscoveryCategories lists the category names in presentation order.
func DiscoveryCategories() []string {
	return []string{
		CategoryWikipedia, CategoryBlogs, CategoryBooks,
		CategoryPersonal, CategoryNews, CategorySocial,
		CategoryPodcasts,
	}
}
