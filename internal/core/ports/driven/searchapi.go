package driven

import (
	"context"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
)

// SearchProvider is the secondary search-API client. All methods
// return normalised tavily_result records and degrade to an empty
// list on provider failure.
type SearchProvider interface {
	// Overview searches for biographical/profile material.
	Overview(ctx context.Context, subject string, maxResults int) ([]domain.Record, error)

	// BooksAndArticles searches for publications by or about the subject.
	BooksAndArticles(ctx context.Context, subject string, maxResults int) ([]domain.Record, error)

	// SocialHandles searches for social-profile links, filtered by a
	// social-domain allow-list. If filtering removes everything, the
	// unfiltered set is returned instead (fail open).
	SocialHandles(ctx context.Context, subject string, maxResults int) ([]domain.Record, error)
}
