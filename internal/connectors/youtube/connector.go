package youtube

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
	"github.com/castlight-labs/guestscope-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.VideoConnector = (*Connector)(nil)

// Connector fetches video metadata, transcripts, and comments.
type Connector struct {
	config     Config
	service    *youtube.Service
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a YouTube connector. Without a credential the connector
// still fetches transcripts (the caption endpoint is unauthenticated)
// but video search and comment reads report the missing credential.
// Extra client options are accepted for tests to redirect the API
// endpoint.
func New(ctx context.Context, cfg Config, extra ...option.ClientOption) (*Connector, error) {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.QPS <= 0 {
		cfg.QPS = DefaultQPS
	}
	if cfg.TranscriptBaseURL == "" {
		cfg.TranscriptBaseURL = "https://www.youtube.com/api/timedtext"
	}

	c := &Connector{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.QPS), 1),
	}

	if !cfg.enabled() && len(extra) == 0 {
		return c, nil
	}

	opts := make([]option.ClientOption, 0, len(extra)+1)
	switch {
	case cfg.AccessToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
		opts = append(opts, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	opts = append(opts, extra...)

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	c.service = service
	return c, nil
}

// CommentsEnabled reports whether the connector can read comments.
func (c *Connector) CommentsEnabled() bool {
	return c.service != nil
}

// SearchVideos resolves a query to video metadata records.
func (c *Connector) SearchVideos(ctx context.Context, query string, maxResults int) ([]domain.Record, error) {
	if c.service == nil {
		return nil, domain.ErrCredentialMissing
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", classifyAPIError(err))
	}

	records := make([]domain.Record, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		rec := domain.Record{
			SourceType:  domain.SourceYouTubeVideo,
			VideoID:     item.Id.VideoId,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			PublishedAt: item.Snippet.PublishedAt,
			URL:         domain.WatchURL(item.Id.VideoId),
		}
		rec.Enrich()
		records = append(records, rec)
	}
	logger.Debug("youtube: %d videos for %q", len(records), query)
	return records, nil
}

// FetchComments paginates comment threads for one video, honouring the
// ordering mode and stopping exactly at opts.MaxComments. Permanent
// per-video conditions and transient failures both end pagination;
// anything already collected is returned alongside the error.
func (c *Connector) FetchComments(ctx context.Context, videoID string, opts driven.CommentOptions) ([]domain.Record, error) {
	if c.service == nil {
		return nil, domain.ErrCredentialMissing
	}
	if opts.MaxComments <= 0 {
		return nil, nil
	}
	order := opts.Order
	if order == "" {
		order = driven.CommentOrderRelevance
	}
	parts := []string{"snippet"}
	if opts.IncludeReplies {
		parts = append(parts, "replies")
	}

	var comments []domain.Record
	pageToken := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return comments, err
		}

		call := c.service.CommentThreads.List(parts).
			VideoId(videoID).
			MaxResults(c.config.PageSize).
			Order(order).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			classified := classifyAPIError(err)
			if IsPermanent(classified) {
				logger.Warn("youtube: comments ended for %s: %v", videoID, classified)
			} else {
				logger.Warn("youtube: comment fetch degraded for %s: %v", videoID, classified)
			}
			return comments, classified
		}

		for _, thread := range resp.Items {
			comments = append(comments, threadRecords(videoID, thread, opts.IncludeReplies)...)
			if len(comments) >= opts.MaxComments {
				return comments[:opts.MaxComments], nil
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return comments, nil
		}
	}
}

// threadRecords flattens one comment thread into records: the
// top-level comment, then its replies when requested.
func threadRecords(videoID string, thread *youtube.CommentThread, includeReplies bool) []domain.Record {
	if thread == nil || thread.Snippet == nil || thread.Snippet.TopLevelComment == nil ||
		thread.Snippet.TopLevelComment.Snippet == nil {
		return nil
	}

	top := thread.Snippet.TopLevelComment.Snippet
	rec := domain.Record{
		SourceType:  domain.SourceYouTubeComment,
		VideoID:     videoID,
		CommentID:   thread.Id,
		Text:        top.TextDisplay,
		Author:      top.AuthorDisplayName,
		LikeCount:   domain.ClampCount(top.LikeCount),
		ReplyCount:  domain.ClampCount(thread.Snippet.TotalReplyCount),
		PublishedAt: top.PublishedAt,
		URL:         domain.WatchURL(videoID) + "&lc=" + thread.Id,
	}
	rec.Enrich()
	records := []domain.Record{rec}

	if !includeReplies || thread.Replies == nil {
		return records
	}
	for _, reply := range thread.Replies.Comments {
		if reply == nil || reply.Snippet == nil {
			continue
		}
		rr := domain.Record{
			SourceType:  domain.SourceYouTubeCommentReply,
			VideoID:     videoID,
			CommentID:   reply.Id,
			Text:        reply.Snippet.TextDisplay,
			Author:      reply.Snippet.AuthorDisplayName,
			LikeCount:   domain.ClampCount(reply.Snippet.LikeCount),
			PublishedAt: reply.Snippet.PublishedAt,
			URL:         domain.WatchURL(videoID) + "&lc=" + reply.Id,
		}
		rr.Enrich()
		records = append(records, rr)
	}
	return records
}
