package driving

import (
	"context"
	"encoding/json"
)

// InsightService runs the generation stages over a gathered corpus.
// The generation collaborator is external; these methods assemble the
// bounded snippet context, call it, and persist the artifacts.
type InsightService interface {
	// NorthStar produces the notable-themes artifact for a subject.
	// When augmented is true and a semantic index exists, canned probe
	// results are prepended to the snippet context.
	NorthStar(ctx context.Context, subject string, augmented bool) (json.RawMessage, error)

	// Plan produces the conversation-plan artifact, using the prior
	// north-star artifact when present.
	Plan(ctx context.Context, subject string) (json.RawMessage, error)

	// AnalyzeComments produces the audience-sentiment artifact from
	// the most-liked comments, sampled up to maxComments.
	AnalyzeComments(ctx context.Context, subject string, maxComments int) (json.RawMessage, error)
}
