package domain

// GatherOptions bounds one gather run for a subject.
// All limits are caps, not targets; adapters may return fewer items.
type GatherOptions struct {
	// MaxWebResults caps the primary web search result count.
	MaxWebResults int

	// MaxVideos caps the number of videos retrieved per query.
	MaxVideos int

	// MaxComments caps the total comments collected per video,
	// across however many pages the provider serves.
	MaxComments int

	// IncludeReplies flattens reply threads into their own records.
	IncludeReplies bool

	// CommentOrder is the provider ordering mode: "relevance" or "time".
	CommentOrder string

	// PerCategoryFetch caps page fetches per discovery category when
	// the plain search pass yields no articles.
	PerCategoryFetch int
}

// DefaultGatherOptions returns the standard run bounds.
func DefaultGatherOptions() GatherOptions {
	return GatherOptions{
		MaxWebResults:    10,
		MaxVideos:        5,
		MaxComments:      200,
		IncludeReplies:   false,
		CommentOrder:     "relevance",
		PerCategoryFetch: 3,
	}
}

// GatherSummary reports what one run collected, per source class.
type GatherSummary struct {
	// RunID identifies the run in persisted storage.
	RunID string `json:"run_id"`

	// Subject is the person researched.
	Subject string `json:"subject"`

	// WebArticles counts fetched pages with non-empty text.
	WebArticles int `json:"web_articles"`

	// WebLinks counts degraded link-only records.
	WebLinks int `json:"web_links"`

	// Videos counts video metadata records.
	Videos int `json:"videos"`

	// Transcripts counts transcript records.
	Transcripts int `json:"transcripts"`

	// Comments counts comment-family records.
	Comments int `json:"comments"`

	// SearchAPIResults counts secondary search-API records.
	SearchAPIResults int `json:"search_api_results"`

	// Chunks counts derived chunks.
	Chunks int `json:"chunks"`

	// StartedAt and FinishedAt are ISO-8601 timestamps.
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
}

// AboutSummary is the composed biographical summary for a subject,
// assembled from fetched pages without any generation step.
type AboutSummary struct {
	// Summary is the composed text, bounded at assembly time.
	Summary string `json:"summary"`

	// Sources attributes the pages the summary was drawn from.
	Sources []SourceRef `json:"sources"`
}

// SourceRef is a lightweight provenance pointer.
type SourceRef struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}
