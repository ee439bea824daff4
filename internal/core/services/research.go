package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driving"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// Ensure Research implements the interface.
var _ driving.ResearchService = (*Research)(nil)

// videoQueryVariants are retried, in order, when the plain subject
// query comes back thin. Deduplicated by video id against prior hits.
var videoQueryVariants = []string{
	"%s interview",
	"%s podcast",
	"%s talk",
}

// Research runs the gather pipeline for one subject: source adapters,
// enrichment, about-summary assembly, chunking, and persistence.
// Execution is sequential; individual source failures degrade to
// partial results and only configuration errors abort the run.
type Research struct {
	web        driven.WebConnector
	videos     driven.VideoConnector
	searchAPI  driven.SearchProvider
	normaliser driven.Normaliser
	datasets   driven.DatasetStore
	records    driven.RecordStore
}

// NewResearch creates the research service. The video connector,
// search provider, and record store are optional (can be nil); the run
// proceeds without the sources or sinks that are absent.
func NewResearch(
	web driven.WebConnector,
	videos driven.VideoConnector,
	searchAPI driven.SearchProvider,
	normaliser driven.Normaliser,
	datasets driven.DatasetStore,
	records driven.RecordStore,
) *Research {
	return &Research{
		web:        web,
		videos:     videos,
		searchAPI:  searchAPI,
		normaliser: normaliser,
		datasets:   datasets,
		records:    records,
	}
}

// Discover returns categorized link lists without fetching bodies.
func (r *Research) Discover(ctx context.Context, subject string) (map[string][]string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", domain.ErrInvalidInput)
	}
	return r.web.Discover(ctx, subject)
}

// Gather runs a full collection pass for the subject.
func (r *Research) Gather(ctx context.Context, subject string, opts domain.GatherOptions) (*domain.GatherSummary, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", domain.ErrInvalidInput)
	}

	def := domain.DefaultGatherOptions()
	if opts.MaxWebResults <= 0 {
		opts.MaxWebResults = def.MaxWebResults
	}
	if opts.MaxVideos <= 0 {
		opts.MaxVideos = def.MaxVideos
	}
	if opts.MaxComments <= 0 {
		opts.MaxComments = def.MaxComments
	}
	if opts.CommentOrder == "" {
		opts.CommentOrder = def.CommentOrder
	}
	if opts.PerCategoryFetch <= 0 {
		opts.PerCategoryFetch = def.PerCategoryFetch
	}

	summary := &domain.GatherSummary{
		RunID:     uuid.NewString(),
		Subject:   subject,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}
	logger.Section("Gather: " + subject)
	logger.Info("Run %s", summary.RunID)

	webRecords, links := r.gatherWeb(ctx, subject, opts)
	webRecords = append(webRecords, r.gatherSearchAPI(ctx, subject)...)
	ytRecords := r.gatherVideos(ctx, subject, opts)

	for i := range webRecords {
		webRecords[i].Enrich()
	}
	for i := range ytRecords {
		ytRecords[i].Enrich()
	}
	all := make([]domain.Record, 0, len(webRecords)+len(ytRecords))
	all = append(all, webRecords...)
	all = append(all, ytRecords...)

	about := assembleAbout(all, 0)
	chunks, err := r.normaliser.Normalise(ctx, all, subject)
	if err != nil {
		return nil, fmt.Errorf("normalise records: %w", err)
	}

	r.count(summary, all)
	summary.Chunks = len(chunks)
	summary.FinishedAt = time.Now().UTC().Format(time.RFC3339)

	if err := r.persist(subject, webRecords, ytRecords, chunks, links, about, summary); err != nil {
		return nil, err
	}

	logger.Info("Gathered %d web articles, %d links, %d videos, %d transcripts, %d comments, %d search results, %d chunks",
		summary.WebArticles, summary.WebLinks, summary.Videos,
		summary.Transcripts, summary.Comments, summary.SearchAPIResults, summary.Chunks)
	return summary, nil
}

// gatherWeb runs the search-and-fetch pass, then falls back to
// fetching discovery categories when no article text came back.
func (r *Research) gatherWeb(ctx context.Context, subject string, opts domain.GatherOptions) ([]domain.Record, map[string][]string) {
	urls, err := r.web.Search(ctx, subject, opts.MaxWebResults)
	if err != nil {
		logger.Warn("web search degraded: %v", err)
	}

	var records []domain.Record
	for _, u := range urls {
		records = append(records, r.web.Fetch(ctx, u))
	}

	links, err := r.web.Discover(ctx, subject)
	if err != nil {
		logger.Warn("link discovery degraded: %v", err)
		links = map[string][]string{}
	}

	if countArticles(records) == 0 && len(links) > 0 {
		logger.Info("No articles from plain search, fetching discovery categories")
		records = append(records, r.web.FetchCategories(ctx, links, opts.PerCategoryFetch)...)
	}
	return records, links
}

// gatherSearchAPI runs the secondary provider's three query intents.
// Provider failures degrade to an empty contribution.
func (r *Research) gatherSearchAPI(ctx context.Context, subject string) []domain.Record {
	if r.searchAPI == nil {
		return nil
	}
	var out []domain.Record
	intents := []struct {
		name string
		call func(context.Context, string, int) ([]domain.Record, error)
		max  int
	}{
		{"overview", r.searchAPI.Overview, 5},
		{"books and articles", r.searchAPI.BooksAndArticles, 5},
		{"social handles", r.searchAPI.SocialHandles, 5},
	}
	for _, intent := range intents {
		records, err := intent.call(ctx, subject, intent.max)
		if err != nil {
			logger.Warn("search API %s degraded: %v", intent.name, err)
			continue
		}
		out = append(out, records...)
	}
	return out
}

// gatherVideos searches for videos, widening with query variants when
// the plain query comes back thin, then fetches transcripts and
// comments per video.
func (r *Research) gatherVideos(ctx context.Context, subject string, opts domain.GatherOptions) []domain.Record {
	if r.videos == nil {
		return nil
	}

	videos, err := r.videos.SearchVideos(ctx, subject, opts.MaxVideos)
	if err != nil {
		logger.Warn("video search degraded: %v", err)
	}

	if len(videos) < opts.MaxVideos/2+1 {
		seen := make(map[string]bool, len(videos))
		for _, v := range videos {
			seen[v.VideoID] = true
		}
		for _, variant := range videoQueryVariants {
			if len(videos) >= opts.MaxVideos {
				break
			}
			more, err := r.videos.SearchVideos(ctx, fmt.Sprintf(variant, subject), opts.MaxVideos)
			if err != nil {
				logger.Debug("video variant search degraded: %v", err)
				continue
			}
			for _, v := range more {
				if len(videos) >= opts.MaxVideos {
					break
				}
				if seen[v.VideoID] {
					continue
				}
				seen[v.VideoID] = true
				videos = append(videos, v)
			}
		}
	}

	out := make([]domain.Record, 0, len(videos))
	out = append(out, videos...)
	for _, v := range videos {
		transcript, err := r.videos.FetchTranscript(ctx, v.VideoID)
		if err != nil {
			logger.Debug("transcript for %s degraded: %v", v.VideoID, err)
		}
		if transcript != nil {
			transcript.Title = v.Title
			out = append(out, *transcript)
		}

		if !r.videos.CommentsEnabled() {
			continue
		}
		comments, err := r.videos.FetchComments(ctx, v.VideoID, driven.CommentOptions{
			MaxComments:    opts.MaxComments,
			IncludeReplies: opts.IncludeReplies,
			Order:          opts.CommentOrder,
		})
		if err != nil {
			logger.Warn("comments for %s partial: %v", v.VideoID, err)
		}
		out = append(out, comments...)
	}
	return out
}

// persist writes the JSONL output tree and, when a record store is
// configured, mirrors everything into it.
func (r *Research) persist(
	subject string,
	webRecords, ytRecords []domain.Record,
	chunks []domain.Chunk,
	links map[string][]string,
	about domain.AboutSummary,
	summary *domain.GatherSummary,
) error {
	if err := r.datasets.WriteRecords(subject, driven.DatasetWeb, webRecords); err != nil {
		return fmt.Errorf("write web records: %w", err)
	}
	if err := r.datasets.WriteRecords(subject, driven.DatasetYouTube, ytRecords); err != nil {
		return fmt.Errorf("write youtube records: %w", err)
	}
	if err := r.datasets.WriteChunks(subject, chunks); err != nil {
		return fmt.Errorf("write chunks: %w", err)
	}
	if err := r.datasets.WriteLinks(subject, links); err != nil {
		return fmt.Errorf("write links: %w", err)
	}
	if err := r.datasets.WriteAbout(subject, about); err != nil {
		return fmt.Errorf("write about summary: %w", err)
	}

	if r.records == nil {
		return nil
	}
	all := append(append([]domain.Record{}, webRecords...), ytRecords...)
	inserted, err := r.records.UpsertRecords(subject, all)
	if err != nil {
		return fmt.Errorf("upsert records: %w", err)
	}
	logger.Debug("Upserted %d new records", inserted)
	for category, urls := range links {
		if _, err := r.records.UpsertLinks(subject, category, urls); err != nil {
			return fmt.Errorf("upsert %s links: %w", category, err)
		}
	}
	if _, err := r.records.ReplaceChunks(subject, chunks); err != nil {
		return fmt.Errorf("replace chunks: %w", err)
	}
	if err := r.records.SaveAbout(subject, about); err != nil {
		return fmt.Errorf("save about summary: %w", err)
	}
	if err := r.records.SaveRun(*summary); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// count fills the per-class totals on the summary.
func (r *Research) count(summary *domain.GatherSummary, records []domain.Record) {
	for _, rec := range records {
		switch rec.SourceType {
		case domain.SourceWebArticle:
			summary.WebArticles++
		case domain.SourceWebLink:
			summary.WebLinks++
		case domain.SourceYouTubeVideo:
			summary.Videos++
		case domain.SourceYouTubeTranscript:
			summary.Transcripts++
		case domain.SourceTavilyResult:
			summary.SearchAPIResults++
		default:
			if rec.SourceType.CommentFamily() {
				summary.Comments++
			}
		}
	}
}

// countArticles reports how many records carry article text.
func countArticles(records []domain.Record) int {
	n := 0
	for _, rec := range records {
		if rec.SourceType == domain.SourceWebArticle && rec.Text != "" {
			n++
		}
	}
	return n
}
