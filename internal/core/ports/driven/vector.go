package driven

import "context"

// SemanticIndex provides nearest-neighbour retrieval over the chunk
// store. The index itself is an external collaborator; the selector
// depends only on this query contract and silently skips augmentation
// when no index is available.
type SemanticIndex interface {
	// Query returns the k nearest chunks to the query text.
	Query(ctx context.Context, query string, k int) ([]SemanticHit, error)
}

// SemanticHit is one nearest-neighbour result.
type SemanticHit struct {
	// ChunkID is the matched chunk's stable identifier.
	ChunkID string

	// Text is the chunk content.
	Text string

	// URL is the source locator carried in chunk metadata.
	URL string

	// Distance is the index's distance metric (smaller = closer).
	Distance float64
}
