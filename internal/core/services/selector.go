package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// SelectorConfig bounds the snippet context built for one generation
// call. Zero values fall back to the defaults below; the values are
// policy knobs, not correctness requirements.
type SelectorConfig struct {
	// MaxWebSnippets caps web-article snippets.
	MaxWebSnippets int

	// WebTruncate bounds web and transcript snippet text, in bytes.
	WebTruncate int

	// BioTruncate bounds the biographical-summary snippet.
	BioTruncate int

	// MaxCommentSnippets caps comment snippets.
	MaxCommentSnippets int

	// CommentTruncate bounds comment snippet text.
	CommentTruncate int

	// MaxTranscriptSnippets caps transcript snippets.
	MaxTranscriptSnippets int

	// ProbeResults is the per-probe hit count in augmented mode.
	ProbeResults int

	// ProbeTruncate bounds augmented snippet text.
	ProbeTruncate int

	// AugmentedCap is the hard cap on the combined augmented list.
	AugmentedCap int

	// InsightsSnippets is the final model-context cap applied to the
	// notable-themes stage.
	InsightsSnippets int

	// PlanSnippets is the final model-context cap applied to the
	// conversation-plan stage.
	PlanSnippets int
}

// DefaultSelectorConfig returns the standard context bounds.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		MaxWebSnippets:        15,
		WebTruncate:           1200,
		BioTruncate:           1200,
		MaxCommentSnippets:    50,
		CommentTruncate:       500,
		MaxTranscriptSnippets: 10,
		ProbeResults:          3,
		ProbeTruncate:         1000,
		AugmentedCap:          80,
		InsightsSnippets:      60,
		PlanSnippets:          80,
	}
}

func (c SelectorConfig) withDefaults() SelectorConfig {
	def := DefaultSelectorConfig()
	if c.MaxWebSnippets <= 0 {
		c.MaxWebSnippets = def.MaxWebSnippets
	}
	if c.WebTruncate <= 0 {
		c.WebTruncate = def.WebTruncate
	}
	if c.BioTruncate <= 0 {
		c.BioTruncate = def.BioTruncate
	}
	if c.MaxCommentSnippets <= 0 {
		c.MaxCommentSnippets = def.MaxCommentSnippets
	}
	if c.CommentTruncate <= 0 {
		c.CommentTruncate = def.CommentTruncate
	}
	if c.MaxTranscriptSnippets <= 0 {
		c.MaxTranscriptSnippets = def.MaxTranscriptSnippets
	}
	if c.ProbeResults <= 0 {
		c.ProbeResults = def.ProbeResults
	}
	if c.ProbeTruncate <= 0 {
		c.ProbeTruncate = def.ProbeTruncate
	}
	if c.AugmentedCap <= 0 {
		c.AugmentedCap = def.AugmentedCap
	}
	if c.InsightsSnippets <= 0 {
		c.InsightsSnippets = def.InsightsSnippets
	}
	if c.PlanSnippets <= 0 {
		c.PlanSnippets = def.PlanSnippets
	}
	return c
}

// probeTopics are the canned semantic-index queries used in augmented
// mode, each templated with the subject name.
var probeTopics = []string{
	"%s biography",
	"%s controversies",
	"%s achievements",
	"%s timeline",
}

// ContextBuilder assembles the bounded snippet list fed to the
// generation collaborator. It only reads the corpus; it holds no state
// across calls beyond its configuration and the optional index.
type ContextBuilder struct {
	config SelectorConfig
	index  driven.SemanticIndex
}

// NewContextBuilder creates a context builder. The index is optional:
// when nil, augmented mode silently degrades to the default list.
func NewContextBuilder(cfg SelectorConfig, index driven.SemanticIndex) *ContextBuilder {
	return &ContextBuilder{config: cfg.withDefaults(), index: index}
}

// Build selects and truncates snippets from the corpus in fixed
// priority order: web articles, the biographical summary, top-liked
// comments, then transcripts. Categories are never re-sorted against
// each other. With augmented set and an index available, probe results
// are prepended and the combined list is hard-capped.
func (b *ContextBuilder) Build(ctx context.Context, subject string, records []domain.Record, about domain.AboutSummary, augmented bool) []domain.Snippet {
	snippets := make([]domain.Snippet, 0, b.config.MaxWebSnippets+b.config.MaxCommentSnippets+b.config.MaxTranscriptSnippets+1)
	snippets = append(snippets, b.webSnippets(records)...)
	if about.Summary != "" {
		snippets = append(snippets, domain.Snippet{
			Source: "about_guest",
			Title:  "About " + subject,
			Text:   domain.Truncate(about.Summary, b.config.BioTruncate),
		})
	}
	snippets = append(snippets, b.commentSnippets(records)...)
	snippets = append(snippets, b.transcriptSnippets(records)...)

	if augmented {
		probes := b.probeSnippets(ctx, subject)
		if len(probes) > 0 {
			snippets = append(probes, snippets...)
			if len(snippets) > b.config.AugmentedCap {
				snippets = snippets[:b.config.AugmentedCap]
			}
		}
	}
	return snippets
}

// webSnippets fills the web cap with fetched articles first; shorter
// search-API results only take slots the articles leave free.
func (b *ContextBuilder) webSnippets(records []domain.Record) []domain.Snippet {
	var out []domain.Snippet
	for _, want := range []domain.SourceType{domain.SourceWebArticle, domain.SourceTavilyResult} {
		for _, rec := range records {
			if len(out) >= b.config.MaxWebSnippets {
				return out
			}
			if rec.SourceType != want || rec.Text == "" {
				continue
			}
			out = append(out, domain.Snippet{
				Source: rec.URL,
				Title:  rec.Title,
				Text:   domain.Truncate(rec.Text, b.config.WebTruncate),
			})
		}
	}
	return out
}

// commentSnippets ranks top-level comments by like count, descending,
// with ties keeping retrieval order. Each snippet's source is the
// parent video's canonical watch URL so citations stay resolvable.
func (b *ContextBuilder) commentSnippets(records []domain.Record) []domain.Snippet {
	var comments []domain.Record
	for _, rec := range records {
		if rec.SourceType == domain.SourceYouTubeComment && rec.Text != "" {
			comments = append(comments, rec)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].LikeCount > comments[j].LikeCount
	})
	if len(comments) > b.config.MaxCommentSnippets {
		comments = comments[:b.config.MaxCommentSnippets]
	}

	out := make([]domain.Snippet, 0, len(comments))
	for _, rec := range comments {
		out = append(out, domain.Snippet{
			Source: domain.WatchURL(rec.VideoID),
			Title:  fmt.Sprintf("Comment by %s (%d likes)", rec.Author, rec.LikeCount),
			Text:   domain.Truncate(rec.Text, b.config.CommentTruncate),
		})
	}
	return out
}

// transcriptSnippets takes transcripts in retrieval order, skipping
// any without a resolvable video URL.
func (b *ContextBuilder) transcriptSnippets(records []domain.Record) []domain.Snippet {
	var out []domain.Snippet
	for _, rec := range records {
		if len(out) >= b.config.MaxTranscriptSnippets {
			break
		}
		if rec.SourceType != domain.SourceYouTubeTranscript || rec.Text == "" {
			continue
		}
		source := rec.URL
		if source == "" {
			source = domain.WatchURL(rec.VideoID)
		}
		if source == "" {
			continue
		}
		out = append(out, domain.Snippet{
			Source: source,
			Title:  "Transcript: " + rec.Title,
			Text:   domain.Truncate(rec.Text, b.config.WebTruncate),
		})
	}
	return out
}

// probeSnippets runs the canned probe queries against the semantic
// index. A nil index or a failing probe is skipped silently; the
// default-mode list still stands on its own.
func (b *ContextBuilder) probeSnippets(ctx context.Context, subject string) []domain.Snippet {
	if b.index == nil {
		logger.Debug("selector: no semantic index, skipping augmentation")
		return nil
	}
	var out []domain.Snippet
	for _, topic := range probeTopics {
		query := fmt.Sprintf(topic, subject)
		hits, err := b.index.Query(ctx, query, b.config.ProbeResults)
		if err != nil {
			logger.Debug("selector: probe %q failed: %v", query, err)
			continue
		}
		for _, hit := range hits {
			if hit.Text == "" {
				continue
			}
			out = append(out, domain.Snippet{
				Source: hit.URL,
				Title:  "Retrieved: " + query,
				Text:   domain.Truncate(hit.Text, b.config.ProbeTruncate),
			})
		}
	}
	return out
}
