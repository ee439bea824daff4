package driving

import (
	"context"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
)

// ResearchService gathers the corpus for one subject end to end:
// source adapters, enrichment, chunking, and persistence.
type ResearchService interface {
	// Gather runs a full collection pass for the subject. Individual
	// source failures degrade to partial results; only configuration
	// errors abort the run.
	Gather(ctx context.Context, subject string, opts domain.GatherOptions) (*domain.GatherSummary, error)

	// Discover returns categorized link lists for the subject without
	// fetching page bodies.
	Discover(ctx context.Context, subject string) (map[string][]string, error)
}
